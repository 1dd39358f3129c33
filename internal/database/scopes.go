package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/life-record-api/internal/utils"
)

// Paginate applies skip/limit pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Skip).Limit(params.Limit)
	}
}

// OwnedBy restricts a query to rows of the given user
func OwnedBy(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// NotDeleted excludes soft-deleted rows
func NotDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("is_delete = ?", 0)
}
