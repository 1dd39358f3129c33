package models

import "time"

type Recipe struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	UserID      uint64    `gorm:"index;not null" json:"user_id"`
	Name        string    `gorm:"type:varchar(50);not null" json:"name"`
	Category    string    `gorm:"type:varchar(50);not null" json:"category"`
	Ingredients string    `gorm:"type:text;not null" json:"ingredients"`
	Steps       string    `gorm:"type:text;not null" json:"steps"`
	ImageURL    *string   `gorm:"column:image_url;type:varchar(255)" json:"image_url"`
	Duration    *int      `json:"duration"`
	Difficulty  *string   `gorm:"type:varchar(20)" json:"difficulty"`
	Remark      *string   `gorm:"type:varchar(200)" json:"remark"`
	IsStarred   int8      `gorm:"type:smallint;not null" json:"is_starred"`
	IsDelete    int8      `gorm:"type:smallint;not null;index" json:"is_delete"`
	CreatedAt   time.Time `gorm:"column:create_time" json:"create_time"`
	UpdatedAt   time.Time `gorm:"column:update_time" json:"update_time"`
}

func (Recipe) TableName() string {
	return "recipe"
}
