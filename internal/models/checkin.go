package models

import "time"

type CheckinItem struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	UserID       uint64    `gorm:"index;not null" json:"user_id"`
	CategoryPath *string   `gorm:"type:varchar(100)" json:"category_path"`
	ItemName     string    `gorm:"type:varchar(50);not null" json:"item_name"`
	Icon         *string   `gorm:"type:varchar(255)" json:"icon"`
	Status       int8      `gorm:"type:smallint;not null" json:"status"`
	CreatedAt    time.Time `gorm:"column:create_time" json:"create_time"`
	UpdatedAt    time.Time `gorm:"column:update_time" json:"update_time"`

	// Relations
	Records []CheckinRecord `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"-"`
}

func (CheckinItem) TableName() string {
	return "checkin_item"
}

// CheckinRecord is unique per (user_id, item_id, check_date).
type CheckinRecord struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	UserID      uint64    `gorm:"not null;index;uniqueIndex:uk_user_item_date,priority:1" json:"user_id"`
	ItemID      uint64    `gorm:"not null;index;uniqueIndex:uk_user_item_date,priority:2" json:"item_id"`
	CheckDate   time.Time `gorm:"type:date;not null;uniqueIndex:uk_user_item_date,priority:3" json:"check_date"`
	CheckStatus int8      `gorm:"type:smallint;not null" json:"check_status"`
	ItemRemark  *string   `gorm:"type:varchar(200)" json:"item_remark"`
	CreatedAt   time.Time `gorm:"column:create_time" json:"create_time"`
	UpdatedAt   time.Time `gorm:"column:update_time" json:"update_time"`
}

func (CheckinRecord) TableName() string {
	return "checkin_record"
}
