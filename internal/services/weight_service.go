package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/life-record-api/internal/dto"
	"github.com/yukikurage/life-record-api/internal/logging"
	"github.com/yukikurage/life-record-api/internal/metrics"
	"github.com/yukikurage/life-record-api/internal/models"
	"github.com/yukikurage/life-record-api/internal/repository"
	"github.com/yukikurage/life-record-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrWeightRecordNotFound = errors.New("weight record not found")
	ErrWeightRecordExists   = errors.New("a weight record already exists for this date, edit it instead")
	ErrFailedToSetTarget    = errors.New("failed to set weight target")
)

// WeightService manages weight records, targets and their statistics.
type WeightService struct {
	weightRepo repository.WeightRepository
	now        func() time.Time
}

// NewWeightService creates a new WeightService
func NewWeightService(weightRepo repository.WeightRepository) *WeightService {
	return &WeightService{
		weightRepo: weightRepo,
		now:        time.Now,
	}
}

func (s *WeightService) today() time.Time {
	return utils.Truncate(s.now())
}

// AddRecord stores one record per calendar day. week_num is fixed at write time.
func (s *WeightService) AddRecord(ctx context.Context, userID uint64, req dto.AddWeightRecordRequest) (*dto.WeightRecordDTO, error) {
	date := s.today()
	if req.RecordDate != nil && !req.RecordDate.IsZero() {
		date = req.RecordDate.Time
	}

	if _, err := s.weightRepo.FindByDate(ctx, userID, date); err == nil {
		return nil, ErrWeightRecordExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check weight record: %w", err)
	}

	record := &models.WeightRecord{
		UserID:     userID,
		Weight:     utils.Round(*req.Weight, 1),
		RecordDate: date,
		WeekNum:    utils.WeekNum(date),
		Remark:     req.Remark,
	}
	if err := s.weightRepo.Create(ctx, record); err != nil {
		// A concurrent add for the same day lost the race on uk_user_date.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrWeightRecordExists
		}
		return nil, fmt.Errorf("failed to create weight record: %w", err)
	}

	metrics.WeightRecordsCreated.Inc()
	out := dto.ToWeightRecordDTO(*record)
	return &out, nil
}

// UpdateRecord changes weight and remark only; the date and week never move.
func (s *WeightService) UpdateRecord(ctx context.Context, userID, id uint64, req dto.UpdateWeightRecordRequest) (*dto.WeightRecordDTO, error) {
	updates := updateSet{}
	if req.Weight.Valid {
		updates["weight"] = utils.Round(req.Weight.Value, 1)
	}
	setNullable(updates, "remark", req.Remark)

	if err := s.weightRepo.Update(ctx, userID, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWeightRecordNotFound
		}
		return nil, fmt.Errorf("failed to update weight record: %w", err)
	}

	record, err := s.weightRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload weight record: %w", err)
	}
	out := dto.ToWeightRecordDTO(*record)
	return &out, nil
}

func (s *WeightService) DeleteRecord(ctx context.Context, userID, id uint64) error {
	if err := s.weightRepo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWeightRecordNotFound
		}
		return fmt.Errorf("failed to delete weight record: %w", err)
	}
	return nil
}

// BatchDelete removes the caller's records among ids. The returned count is the
// number of ids requested, which callers already rely on; ids owned by other users
// or already gone are silently skipped.
func (s *WeightService) BatchDelete(ctx context.Context, userID uint64, ids []uint64) (int, error) {
	deleted, err := s.weightRepo.BatchDelete(ctx, userID, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to batch delete weight records: %w", err)
	}

	logging.Info().
		Uint64("user_id", userID).
		Int("requested", len(ids)).
		Int64("deleted", deleted).
		Msg("Weight records batch deleted")
	return len(ids), nil
}

// Today returns today's record or nil.
func (s *WeightService) Today(ctx context.Context, userID uint64) (*dto.WeightRecordDTO, error) {
	record, err := s.findByDate(ctx, userID, s.today())
	if err != nil || record == nil {
		return nil, err
	}
	out := dto.ToWeightRecordDTO(*record)
	return &out, nil
}

// WeightHistoryInput filters the record history.
type WeightHistoryInput struct {
	StartDate *time.Time
	EndDate   *time.Time
	Page      utils.PaginationParams
}

func (s *WeightService) History(ctx context.Context, userID uint64, input WeightHistoryInput) (*dto.WeightHistoryResponse, error) {
	records, total, err := s.weightRepo.List(ctx, userID, repository.WeightRecordFilter{
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Page:      input.Page,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list weight history: %w", err)
	}

	return &dto.WeightHistoryResponse{
		Records: dto.ToWeightRecordDTOs(records),
		Total:   total,
	}, nil
}

// Weekly aggregates one ISO week (the current one when weekNum is empty) and compares
// its average with the week before.
func (s *WeightService) Weekly(ctx context.Context, userID uint64, weekNum string) (*dto.WeeklyStatResponse, error) {
	if weekNum == "" {
		weekNum = utils.WeekNum(s.today())
	}

	start, err := utils.WeekStart(weekNum, time.Local)
	if err != nil {
		return nil, err
	}
	previous := utils.WeekNum(start.AddDate(0, 0, -7))

	records, err := s.weightRepo.ListByWeek(ctx, userID, weekNum)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly records: %w", err)
	}
	prevRecords, err := s.weightRepo.ListByWeek(ctx, userID, previous)
	if err != nil {
		return nil, fmt.Errorf("failed to list previous week records: %w", err)
	}

	current := summarize(records)
	return &dto.WeeklyStatResponse{
		WeekNum:      weekNum,
		Records:      dto.ToWeightRecordDTOs(records),
		AvgWeight:    current.Avg,
		MaxWeight:    current.Max,
		MinWeight:    current.Min,
		DiffLastWeek: diffAverage(current, summarize(prevRecords)),
	}, nil
}

// Monthly aggregates one calendar month and compares its average with the month
// before. A zero year or month is taken from today; the other part is kept.
func (s *WeightService) Monthly(ctx context.Context, userID uint64, year int, month time.Month) (*dto.MonthlyStatResponse, error) {
	today := s.today()
	if year == 0 {
		year = today.Year()
	}
	if month == 0 {
		month = today.Month()
	}

	start, end := utils.MonthRange(year, month, time.Local)
	prevYear, prevMonth := utils.PreviousMonth(year, month)
	prevStart, prevEnd := utils.MonthRange(prevYear, prevMonth, time.Local)

	records, err := s.weightRepo.ListBetween(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly records: %w", err)
	}
	prevRecords, err := s.weightRepo.ListBetween(ctx, userID, prevStart, prevEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list previous month records: %w", err)
	}

	current := summarize(records)
	return &dto.MonthlyStatResponse{
		Year:          year,
		Month:         int(month),
		Records:       dto.ToWeightRecordDTOs(records),
		AvgWeight:     current.Avg,
		MaxWeight:     current.Max,
		MinWeight:     current.Min,
		DiffLastMonth: diffAverage(current, summarize(prevRecords)),
	}, nil
}

// ActiveTarget returns the active target or nil.
func (s *WeightService) ActiveTarget(ctx context.Context, userID uint64) (*dto.WeightTargetDTO, error) {
	target, err := s.activeTarget(ctx, userID)
	if err != nil || target == nil {
		return nil, err
	}
	out := dto.ToWeightTargetDTO(*target)
	return &out, nil
}

// SetTarget replaces the active target. On failure nothing changes.
func (s *WeightService) SetTarget(ctx context.Context, userID uint64, req dto.SetWeightTargetRequest) (*dto.WeightTargetDTO, error) {
	target := &models.WeightTarget{
		UserID:       userID,
		TargetWeight: utils.Round(*req.TargetWeight, 1),
	}
	if req.StartWeight != nil {
		w := utils.Round(*req.StartWeight, 1)
		target.StartWeight = &w
	}
	if req.StartDate != nil && !req.StartDate.IsZero() {
		d := req.StartDate.Time
		target.StartDate = &d
	}
	if req.Deadline != nil && !req.Deadline.IsZero() {
		d := req.Deadline.Time
		target.Deadline = &d
	}

	if err := s.weightRepo.ReplaceActiveTarget(ctx, target); err != nil {
		metrics.WeightTargetSets.WithLabelValues("error").Inc()
		logging.Error().Err(err).Uint64("user_id", userID).Msg("Weight target set rolled back")
		return nil, ErrFailedToSetTarget
	}

	metrics.WeightTargetSets.WithLabelValues("success").Inc()
	logging.Info().Uint64("user_id", userID).Float64("target_weight", target.TargetWeight).Msg("Weight target set")
	out := dto.ToWeightTargetDTO(*target)
	return &out, nil
}

// TodayStat compares today's weight with yesterday's and with the active target.
func (s *WeightService) TodayStat(ctx context.Context, userID uint64) (*dto.TodayStatResponse, error) {
	today := s.today()

	todayRecord, err := s.findByDate(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	yesterdayRecord, err := s.findByDate(ctx, userID, today.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	target, err := s.activeTarget(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.TodayStatResponse{}
	var yesterdayWeight *float64
	if todayRecord != nil {
		w := todayRecord.Weight
		resp.TodayWeight = &w
	}
	if yesterdayRecord != nil {
		w := yesterdayRecord.Weight
		yesterdayWeight = &w
	}
	if target != nil {
		w := target.TargetWeight
		resp.TargetWeight = &w
	}

	resp.DiffYesterday = diffWeights(resp.TodayWeight, yesterdayWeight)
	resp.TargetDiff = diffWeights(resp.TodayWeight, resp.TargetWeight)
	return resp, nil
}

func (s *WeightService) findByDate(ctx context.Context, userID uint64, date time.Time) (*models.WeightRecord, error) {
	record, err := s.weightRepo.FindByDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find weight record: %w", err)
	}
	return record, nil
}

func (s *WeightService) activeTarget(ctx context.Context, userID uint64) (*models.WeightTarget, error) {
	target, err := s.weightRepo.ActiveTarget(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find weight target: %w", err)
	}
	return target, nil
}
