package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/yukikurage/life-record-api/internal/constants"
	"github.com/yukikurage/life-record-api/internal/dto"
	"github.com/yukikurage/life-record-api/internal/logging"
	"github.com/yukikurage/life-record-api/internal/metrics"
	"github.com/yukikurage/life-record-api/internal/models"
	"github.com/yukikurage/life-record-api/internal/repository"
	"github.com/yukikurage/life-record-api/internal/utils"
	"gorm.io/gorm"
)

var ErrCheckinItemNotFound = errors.New("checkin item not found")

// CheckinService manages check-in items, daily records and their statistics.
type CheckinService struct {
	checkinRepo repository.CheckinRepository
	today       func() time.Time
}

// NewCheckinService creates a new CheckinService
func NewCheckinService(checkinRepo repository.CheckinRepository) *CheckinService {
	return &CheckinService{
		checkinRepo: checkinRepo,
		today:       utils.Today,
	}
}

// ListItems returns the caller's items with their lifetime completed count.
func (s *CheckinService) ListItems(ctx context.Context, userID uint64, status *int8) ([]dto.CheckinItemDTO, error) {
	items, err := s.checkinRepo.ListItemsWithCount(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkin items: %w", err)
	}

	out := make([]dto.CheckinItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toCheckinItemDTO(item.CheckinItem, item.CompletedCount))
	}
	return out, nil
}

func (s *CheckinService) CreateItem(ctx context.Context, userID uint64, req dto.CreateCheckinItemRequest) (*dto.CheckinItemDTO, error) {
	status := constants.FlagOn
	if req.Status != nil {
		status = *req.Status
	}

	item := &models.CheckinItem{
		UserID:       userID,
		CategoryPath: req.CategoryPath,
		ItemName:     req.ItemName,
		Icon:         req.Icon,
		Status:       status,
	}
	if err := s.checkinRepo.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create checkin item: %w", err)
	}

	out := toCheckinItemDTO(*item, 0)
	return &out, nil
}

func (s *CheckinService) UpdateItem(ctx context.Context, userID, id uint64, req dto.UpdateCheckinItemRequest) (*models.CheckinItem, error) {
	updates := updateSet{}
	setNullable(updates, "category_path", req.CategoryPath)
	setRequired(updates, "item_name", req.ItemName)
	setNullable(updates, "icon", req.Icon)
	setRequired(updates, "status", req.Status)

	if err := s.checkinRepo.UpdateItem(ctx, userID, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCheckinItemNotFound
		}
		return nil, fmt.Errorf("failed to update checkin item: %w", err)
	}
	return s.findItem(ctx, userID, id)
}

// DeleteItem removes the item together with all of its records.
func (s *CheckinService) DeleteItem(ctx context.Context, userID, id uint64) error {
	if err := s.checkinRepo.DeleteItem(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCheckinItemNotFound
		}
		return fmt.Errorf("failed to delete checkin item: %w", err)
	}
	logging.Info().Uint64("user_id", userID).Uint64("item_id", id).Msg("Checkin item deleted")
	return nil
}

// Daily returns every enabled item with its record for date (today when zero) and
// the day's completion statistics.
func (s *CheckinService) Daily(ctx context.Context, userID uint64, date time.Time) (*dto.DailyCheckinResponse, error) {
	if date.IsZero() {
		date = s.today()
	}

	items, err := s.checkinRepo.ListEnabledItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkin items: %w", err)
	}

	records, err := s.checkinRepo.ListRecordsByDate(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkin records: %w", err)
	}

	byItem := make(map[uint64]models.CheckinRecord, len(records))
	for _, r := range records {
		byItem[r.ItemID] = r
	}

	resp := &dto.DailyCheckinResponse{
		Date:  dto.NewDate(date),
		Items: make([]dto.DailyItemDTO, 0, len(items)),
	}

	completed := 0
	for _, item := range items {
		entry := dto.DailyItemDTO{
			ItemID:       item.ID,
			ItemName:     item.ItemName,
			CategoryPath: item.CategoryPath,
			Icon:         item.Icon,
			CheckStatus:  constants.FlagOff,
		}
		if record, ok := byItem[item.ID]; ok {
			id := record.ID
			entry.RecordID = &id
			entry.CheckStatus = record.CheckStatus
			entry.ItemRemark = record.ItemRemark
			if record.CheckStatus == constants.FlagOn {
				completed++
			}
		}
		resp.Items = append(resp.Items, entry)
	}

	resp.Stat = dto.DailyStatDTO{
		TotalItems:     len(items),
		CompletedCount: completed,
		CompletionRate: completionRate(completed, len(items)),
	}
	return resp, nil
}

// SaveRecord inserts or updates the caller's record for (item, date) atomically.
func (s *CheckinService) SaveRecord(ctx context.Context, userID uint64, req dto.SaveCheckinRecordRequest) (*dto.CheckinRecordDTO, error) {
	if _, err := s.findItem(ctx, userID, req.ItemID); err != nil {
		return nil, err
	}

	date := s.today()
	if req.CheckDate != nil && !req.CheckDate.IsZero() {
		date = req.CheckDate.Time
	}

	record, err := s.checkinRepo.UpsertRecord(ctx, &models.CheckinRecord{
		UserID:      userID,
		ItemID:      req.ItemID,
		CheckDate:   date,
		CheckStatus: *req.CheckStatus,
		ItemRemark:  req.ItemRemark,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save checkin record: %w", err)
	}

	metrics.CheckinSaves.WithLabelValues(strconv.Itoa(int(record.CheckStatus))).Inc()
	out := dto.ToCheckinRecordDTO(*record)
	return &out, nil
}

// CheckinHistoryInput filters the record history.
type CheckinHistoryInput struct {
	ItemID    *uint64
	StartDate *time.Time
	EndDate   *time.Time
	Page      utils.PaginationParams
}

func (s *CheckinService) History(ctx context.Context, userID uint64, input CheckinHistoryInput) (*dto.CheckinHistoryResponse, error) {
	records, total, err := s.checkinRepo.ListRecords(ctx, userID, repository.CheckinRecordFilter{
		ItemID:    input.ItemID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Page:      input.Page,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list checkin history: %w", err)
	}

	return &dto.CheckinHistoryResponse{
		Records: dto.ToCheckinRecordDTOs(records),
		Total:   total,
	}, nil
}

func (s *CheckinService) findItem(ctx context.Context, userID, id uint64) (*models.CheckinItem, error) {
	item, err := s.checkinRepo.FindItem(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCheckinItemNotFound
		}
		return nil, fmt.Errorf("failed to find checkin item: %w", err)
	}
	return item, nil
}

// completionRate is a percentage rounded to two decimals, 0 when there are no items.
func completionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return utils.Round(float64(completed)/float64(total)*100, 2)
}

func toCheckinItemDTO(item models.CheckinItem, completed int64) dto.CheckinItemDTO {
	return dto.CheckinItemDTO{
		ID:             item.ID,
		UserID:         item.UserID,
		CategoryPath:   item.CategoryPath,
		ItemName:       item.ItemName,
		Icon:           item.Icon,
		Status:         item.Status,
		CompletedCount: completed,
		CreateTime:     item.CreatedAt,
		UpdateTime:     item.UpdatedAt,
	}
}
