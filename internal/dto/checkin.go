package dto

import (
	"time"

	"github.com/yukikurage/life-record-api/internal/models"
)

type CreateCheckinItemRequest struct {
	CategoryPath *string `json:"category_path" binding:"omitempty,max=100"`
	ItemName     string  `json:"item_name" binding:"required,max=50"`
	Icon         *string `json:"icon" binding:"omitempty,max=255"`
	Status       *int8   `json:"status" binding:"omitempty,oneof=0 1"`
}

type UpdateCheckinItemRequest struct {
	CategoryPath Optional[string] `json:"category_path" binding:"omitempty,max=100"`
	ItemName     Optional[string] `json:"item_name" binding:"omitempty,min=1,max=50"`
	Icon         Optional[string] `json:"icon" binding:"omitempty,max=255"`
	Status       Optional[int8]   `json:"status" binding:"omitempty,oneof=0 1"`
}

func (r *UpdateCheckinItemRequest) Validate() error {
	return rejectNull(map[string]nullable{
		"item_name": r.ItemName,
		"status":    r.Status,
	})
}

type CheckinItemQuery struct {
	Status *int8 `form:"status" binding:"omitempty,oneof=0 1"`
}

// CheckinItemDTO is an item annotated with its lifetime completed count
type CheckinItemDTO struct {
	ID             uint64    `json:"id"`
	UserID         uint64    `json:"user_id"`
	CategoryPath   *string   `json:"category_path"`
	ItemName       string    `json:"item_name"`
	Icon           *string   `json:"icon"`
	Status         int8      `json:"status"`
	CompletedCount int64     `json:"completed_count"`
	CreateTime     time.Time `json:"create_time"`
	UpdateTime     time.Time `json:"update_time"`
}

type SaveCheckinRecordRequest struct {
	ItemID      uint64  `json:"item_id" binding:"required"`
	CheckDate   *Date   `json:"check_date"`
	CheckStatus *int8   `json:"check_status" binding:"required,oneof=0 1"`
	ItemRemark  *string `json:"item_remark" binding:"omitempty,max=200"`
}

type CheckinHistoryQuery struct {
	ItemID    *uint64 `form:"item_id"`
	StartDate string  `form:"start_date" binding:"omitempty,isodate"`
	EndDate   string  `form:"end_date" binding:"omitempty,isodate"`
}

type CheckinRecordDTO struct {
	ID          uint64    `json:"id"`
	UserID      uint64    `json:"user_id"`
	ItemID      uint64    `json:"item_id"`
	CheckDate   Date      `json:"check_date"`
	CheckStatus int8      `json:"check_status"`
	ItemRemark  *string   `json:"item_remark"`
	CreateTime  time.Time `json:"create_time"`
	UpdateTime  time.Time `json:"update_time"`
}

type CheckinHistoryResponse struct {
	Records []CheckinRecordDTO `json:"records"`
	Total   int64              `json:"total"`
}

// DailyItemDTO is one enabled item with its record for the day, if any
type DailyItemDTO struct {
	ItemID       uint64  `json:"item_id"`
	ItemName     string  `json:"item_name"`
	CategoryPath *string `json:"category_path"`
	Icon         *string `json:"icon"`
	RecordID     *uint64 `json:"record_id"`
	CheckStatus  int8    `json:"check_status"`
	ItemRemark   *string `json:"item_remark"`
}

type DailyStatDTO struct {
	TotalItems     int     `json:"total_items"`
	CompletedCount int     `json:"completed_count"`
	CompletionRate float64 `json:"completion_rate"`
}

type DailyCheckinResponse struct {
	Date  Date           `json:"date"`
	Items []DailyItemDTO `json:"items"`
	Stat  DailyStatDTO   `json:"stat"`
}

func ToCheckinRecordDTO(r models.CheckinRecord) CheckinRecordDTO {
	return CheckinRecordDTO{
		ID:          r.ID,
		UserID:      r.UserID,
		ItemID:      r.ItemID,
		CheckDate:   NewDate(r.CheckDate),
		CheckStatus: r.CheckStatus,
		ItemRemark:  r.ItemRemark,
		CreateTime:  r.CreatedAt,
		UpdateTime:  r.UpdatedAt,
	}
}

func ToCheckinRecordDTOs(records []models.CheckinRecord) []CheckinRecordDTO {
	out := make([]CheckinRecordDTO, 0, len(records))
	for _, r := range records {
		out = append(out, ToCheckinRecordDTO(r))
	}
	return out
}
