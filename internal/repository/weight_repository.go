package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/yukikurage/life-record-api/internal/constants"
	"github.com/yukikurage/life-record-api/internal/database"
	"github.com/yukikurage/life-record-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWeightRepository is a GORM implementation of WeightRepository
type GormWeightRepository struct {
	db *gorm.DB
}

// NewWeightRepository creates a new WeightRepository
func NewWeightRepository(db *gorm.DB) WeightRepository {
	return &GormWeightRepository{db: db}
}

func (r *GormWeightRepository) Create(ctx context.Context, record *models.WeightRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *GormWeightRepository) FindByID(ctx context.Context, userID, id uint64) (*models.WeightRecord, error) {
	var record models.WeightRecord
	if err := r.db.WithContext(ctx).Scopes(database.OwnedBy(userID)).First(&record, id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *GormWeightRepository) FindByDate(ctx context.Context, userID uint64, date time.Time) (*models.WeightRecord, error) {
	var record models.WeightRecord
	err := r.db.WithContext(ctx).
		Scopes(database.OwnedBy(userID)).
		Where("record_date = ?", date).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *GormWeightRepository) Update(ctx context.Context, userID, id uint64, updates map[string]interface{}) error {
	return updateOwned(r.db.WithContext(ctx), &models.WeightRecord{}, userID, id, updates)
}

func (r *GormWeightRepository) Delete(ctx context.Context, userID, id uint64) error {
	result := r.db.WithContext(ctx).Scopes(database.OwnedBy(userID)).Delete(&models.WeightRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormWeightRepository) BatchDelete(ctx context.Context, userID uint64, ids []uint64) (int64, error) {
	result := r.db.WithContext(ctx).
		Scopes(database.OwnedBy(userID)).
		Where("id IN ?", ids).
		Delete(&models.WeightRecord{})
	return result.RowsAffected, result.Error
}

func (r *GormWeightRepository) ListByWeek(ctx context.Context, userID uint64, weekNum string) ([]models.WeightRecord, error) {
	records := []models.WeightRecord{}
	err := r.db.WithContext(ctx).
		Scopes(database.OwnedBy(userID)).
		Where("week_num = ?", weekNum).
		Order("record_date ASC").
		Find(&records).Error
	return records, err
}

func (r *GormWeightRepository) ListBetween(ctx context.Context, userID uint64, start, end time.Time) ([]models.WeightRecord, error) {
	records := []models.WeightRecord{}
	err := r.db.WithContext(ctx).
		Scopes(database.OwnedBy(userID)).
		Where("record_date >= ? AND record_date < ?", start, end).
		Order("record_date ASC").
		Find(&records).Error
	return records, err
}

func (r *GormWeightRepository) List(ctx context.Context, userID uint64, filter WeightRecordFilter) ([]models.WeightRecord, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.WeightRecord{}).Scopes(database.OwnedBy(userID))

	if filter.StartDate != nil {
		query = query.Where("record_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("record_date <= ?", *filter.EndDate)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	records := []models.WeightRecord{}
	err := query.
		Order("record_date DESC").
		Scopes(database.Paginate(filter.Page)).
		Find(&records).Error
	return records, total, err
}

func (r *GormWeightRepository) ListAll(ctx context.Context, userID uint64) ([]models.WeightRecord, error) {
	records := []models.WeightRecord{}
	err := r.db.WithContext(ctx).
		Scopes(database.OwnedBy(userID)).
		Order("record_date DESC").
		Find(&records).Error
	return records, err
}

func (r *GormWeightRepository) ActiveTarget(ctx context.Context, userID uint64) (*models.WeightTarget, error) {
	var target models.WeightTarget
	err := r.db.WithContext(ctx).
		Scopes(database.OwnedBy(userID)).
		Where("is_active = ?", constants.FlagOn).
		Order("id DESC").
		First(&target).Error
	if err != nil {
		return nil, err
	}
	return &target, nil
}

func (r *GormWeightRepository) ReplaceActiveTarget(ctx context.Context, target *models.WeightTarget) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serializes concurrent target sets of one user. SQLite has no row locks and
		// relies on its single writer instead.
		var owner models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&owner, target.UserID).Error; err != nil {
			return fmt.Errorf("lock user row: %w", err)
		}

		if err := tx.Model(&models.WeightTarget{}).
			Scopes(database.OwnedBy(target.UserID)).
			Where("is_active = ?", constants.FlagOn).
			Update("is_active", constants.FlagOff).Error; err != nil {
			return fmt.Errorf("deactivate weight targets: %w", err)
		}

		target.IsActive = constants.FlagOn
		if err := tx.Create(target).Error; err != nil {
			return fmt.Errorf("create weight target: %w", err)
		}
		return nil
	})
}
