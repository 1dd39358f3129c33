package models

import "time"

// ContentType values
const (
	ContentTypeRichText int8 = 0
	ContentTypeMarkdown int8 = 1
)

type Note struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	UserID       uint64    `gorm:"index;not null" json:"user_id"`
	CategoryPath *string   `gorm:"type:varchar(100);index" json:"category_path"`
	Title        string    `gorm:"type:varchar(100);not null" json:"title"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	ContentType  int8      `gorm:"type:smallint;not null" json:"content_type"`
	IsDelete     int8      `gorm:"type:smallint;not null;index" json:"is_delete"`
	CreatedAt    time.Time `gorm:"column:create_time" json:"create_time"`
	UpdatedAt    time.Time `gorm:"column:update_time" json:"update_time"`
}

func (Note) TableName() string {
	return "note"
}
