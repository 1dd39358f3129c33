package models

import "time"

type User struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Username  string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"type:varchar(100);not null" json:"-"`
	Nickname  *string   `gorm:"type:varchar(50)" json:"nickname"`
	Avatar    *string   `gorm:"type:varchar(255)" json:"avatar"`
	CreatedAt time.Time `gorm:"column:create_time" json:"create_time"`
	UpdatedAt time.Time `gorm:"column:update_time" json:"update_time"`
}

func (User) TableName() string {
	return "user"
}
