package repository

import (
	"github.com/yukikurage/life-record-api/internal/database"
	"gorm.io/gorm"
)

// updateOwned applies updates to one owned row, reporting gorm.ErrRecordNotFound when
// no row matched. An empty update still checks that the row exists.
func updateOwned(tx *gorm.DB, model interface{}, userID, id uint64, updates map[string]interface{}, scopes ...func(*gorm.DB) *gorm.DB) error {
	query := tx.Model(model).Scopes(database.OwnedBy(userID)).Scopes(scopes...).Where("id = ?", id)

	if len(updates) == 0 {
		var count int64
		if err := query.Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}

	result := query.Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// MySQL reports 0 affected rows when the values did not change.
		var count int64
		if err := tx.Model(model).Scopes(database.OwnedBy(userID)).Scopes(scopes...).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

func likePattern(s string) string {
	return "%" + s + "%"
}
