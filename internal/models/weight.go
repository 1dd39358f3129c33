package models

import "time"

// WeightRecord is unique per (user_id, record_date). WeekNum is derived from
// RecordDate when the row is written and never recomputed.
type WeightRecord struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	UserID     uint64    `gorm:"not null;index;uniqueIndex:uk_user_date,priority:1" json:"user_id"`
	Weight     float64   `gorm:"type:decimal(5,1);not null" json:"weight"`
	RecordDate time.Time `gorm:"type:date;not null;uniqueIndex:uk_user_date,priority:2" json:"record_date"`
	WeekNum    string    `gorm:"type:varchar(10);not null;index" json:"week_num"`
	Remark     *string   `gorm:"type:varchar(200)" json:"remark"`
	CreatedAt  time.Time `gorm:"column:create_time" json:"create_time"`
	UpdatedAt  time.Time `gorm:"column:update_time" json:"update_time"`
}

func (WeightRecord) TableName() string {
	return "weight_record"
}

// WeightTarget rows are never deleted; at most one per user has IsActive set.
type WeightTarget struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	UserID       uint64     `gorm:"not null;index" json:"user_id"`
	TargetWeight float64    `gorm:"type:decimal(5,1);not null" json:"target_weight"`
	StartWeight  *float64   `gorm:"type:decimal(5,1)" json:"start_weight"`
	StartDate    *time.Time `gorm:"type:date" json:"start_date"`
	Deadline     *time.Time `gorm:"type:date" json:"deadline"`
	IsActive     int8       `gorm:"type:smallint;not null;index" json:"is_active"`
	CreatedAt    time.Time  `gorm:"column:create_time" json:"create_time"`
	UpdatedAt    time.Time  `gorm:"column:update_time" json:"update_time"`
}

func (WeightTarget) TableName() string {
	return "weight_target"
}
