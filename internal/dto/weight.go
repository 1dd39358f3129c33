package dto

import (
	"time"

	"github.com/yukikurage/life-record-api/internal/models"
)

type AddWeightRecordRequest struct {
	RecordDate *Date    `json:"record_date"`
	Weight     *float64 `json:"weight" binding:"required,gt=0,lte=500"`
	Remark     *string  `json:"remark" binding:"omitempty,max=200"`
}

type UpdateWeightRecordRequest struct {
	Weight Optional[float64] `json:"weight" binding:"omitempty,gt=0,lte=500"`
	Remark Optional[string]  `json:"remark" binding:"omitempty,max=200"`
}

func (r *UpdateWeightRecordRequest) Validate() error {
	return rejectNull(map[string]nullable{"weight": r.Weight})
}

type BatchDeleteRequest struct {
	IDs []uint64 `json:"ids" binding:"required,min=1,max=1000,dive,gt=0"`
}

type BatchDeleteResponse struct {
	Count int `json:"count"`
}

type WeightHistoryQuery struct {
	StartDate string `form:"start_date" binding:"omitempty,isodate"`
	EndDate   string `form:"end_date" binding:"omitempty,isodate"`
}

type WeekQuery struct {
	WeekNum string `form:"week_num" binding:"omitempty,weeknum"`
}

type MonthQuery struct {
	Year  int `form:"year" binding:"omitempty,min=1,max=9999"`
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
}

type SetWeightTargetRequest struct {
	TargetWeight *float64 `json:"target_weight" binding:"required,gt=0,lte=500"`
	StartWeight  *float64 `json:"start_weight" binding:"omitempty,gt=0,lte=500"`
	StartDate    *Date    `json:"start_date"`
	Deadline     *Date    `json:"deadline"`
}

type WeightRecordDTO struct {
	ID         uint64    `json:"id"`
	UserID     uint64    `json:"user_id"`
	Weight     float64   `json:"weight"`
	RecordDate Date      `json:"record_date"`
	WeekNum    string    `json:"week_num"`
	Remark     *string   `json:"remark"`
	CreateTime time.Time `json:"create_time"`
	UpdateTime time.Time `json:"update_time"`
}

type WeightHistoryResponse struct {
	Records []WeightRecordDTO `json:"records"`
	Total   int64             `json:"total"`
}

type WeeklyStatResponse struct {
	WeekNum      string            `json:"week_num"`
	Records      []WeightRecordDTO `json:"records"`
	AvgWeight    float64           `json:"avg_weight"`
	MaxWeight    float64           `json:"max_weight"`
	MinWeight    float64           `json:"min_weight"`
	DiffLastWeek float64           `json:"diff_last_week"`
}

type MonthlyStatResponse struct {
	Year          int               `json:"year"`
	Month         int               `json:"month"`
	Records       []WeightRecordDTO `json:"records"`
	AvgWeight     float64           `json:"avg_weight"`
	MaxWeight     float64           `json:"max_weight"`
	MinWeight     float64           `json:"min_weight"`
	DiffLastMonth float64           `json:"diff_last_month"`
}

type TodayStatResponse struct {
	TodayWeight   *float64 `json:"today_weight"`
	DiffYesterday float64  `json:"diff_yesterday"`
	TargetWeight  *float64 `json:"target_weight"`
	TargetDiff    float64  `json:"target_diff"`
}

type WeightTargetDTO struct {
	ID           uint64    `json:"id"`
	UserID       uint64    `json:"user_id"`
	TargetWeight float64   `json:"target_weight"`
	StartWeight  *float64  `json:"start_weight"`
	StartDate    *Date     `json:"start_date"`
	Deadline     *Date     `json:"deadline"`
	IsActive     int8      `json:"is_active"`
	CreateTime   time.Time `json:"create_time"`
}

func ToWeightRecordDTO(r models.WeightRecord) WeightRecordDTO {
	return WeightRecordDTO{
		ID:         r.ID,
		UserID:     r.UserID,
		Weight:     r.Weight,
		RecordDate: NewDate(r.RecordDate),
		WeekNum:    r.WeekNum,
		Remark:     r.Remark,
		CreateTime: r.CreatedAt,
		UpdateTime: r.UpdatedAt,
	}
}

func ToWeightRecordDTOs(records []models.WeightRecord) []WeightRecordDTO {
	out := make([]WeightRecordDTO, 0, len(records))
	for _, r := range records {
		out = append(out, ToWeightRecordDTO(r))
	}
	return out
}

func ToWeightTargetDTO(t models.WeightTarget) WeightTargetDTO {
	return WeightTargetDTO{
		ID:           t.ID,
		UserID:       t.UserID,
		TargetWeight: t.TargetWeight,
		StartWeight:  t.StartWeight,
		StartDate:    DatePtr(t.StartDate),
		Deadline:     DatePtr(t.Deadline),
		IsActive:     t.IsActive,
		CreateTime:   t.CreatedAt,
	}
}
