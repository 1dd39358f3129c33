package models

import "time"

type Todo struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	UserID       uint64     `gorm:"index;not null" json:"user_id"`
	CategoryPath *string    `gorm:"type:varchar(100);index" json:"category_path"`
	Title        string     `gorm:"type:varchar(100);not null" json:"title"`
	Remark       *string    `gorm:"type:text" json:"remark"`
	Deadline     *time.Time `json:"deadline"`
	Priority     int8       `gorm:"type:smallint;not null" json:"priority"`
	Status       int8       `gorm:"type:smallint;not null" json:"status"`
	IsStarred    int8       `gorm:"type:smallint;not null" json:"is_starred"`
	CreatedAt    time.Time  `gorm:"column:create_time" json:"create_time"`
	UpdatedAt    time.Time  `gorm:"column:update_time" json:"update_time"`
}

func (Todo) TableName() string {
	return "todo"
}
