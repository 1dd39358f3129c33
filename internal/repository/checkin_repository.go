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

// GormCheckinRepository is a GORM implementation of CheckinRepository
type GormCheckinRepository struct {
	db *gorm.DB
}

// NewCheckinRepository creates a new CheckinRepository
func NewCheckinRepository(db *gorm.DB) CheckinRepository {
	return &GormCheckinRepository{db: db}
}

func (r *GormCheckinRepository) CreateItem(ctx context.Context, item *models.CheckinItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *GormCheckinRepository) FindItem(ctx context.Context, userID, id uint64) (*models.CheckinItem, error) {
	var item models.CheckinItem
	if err := r.db.WithContext(ctx).Scopes(database.OwnedBy(userID)).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormCheckinRepository) ListItemsWithCount(ctx context.Context, userID uint64, status *int8) ([]CheckinItemWithCount, error) {
	query := r.db.WithContext(ctx).
		Model(&models.CheckinItem{}).
		Select("checkin_item.*, COALESCE(SUM(CASE WHEN checkin_record.check_status = ? THEN 1 ELSE 0 END), 0) AS completed_count", constants.FlagOn).
		Joins("LEFT JOIN checkin_record ON checkin_record.item_id = checkin_item.id").
		Where("checkin_item.user_id = ?", userID)

	if status != nil {
		query = query.Where("checkin_item.status = ?", *status)
	}

	items := []CheckinItemWithCount{}
	err := query.
		Group("checkin_item.id").
		Order("checkin_item.id ASC").
		Scan(&items).Error
	return items, err
}

func (r *GormCheckinRepository) ListEnabledItems(ctx context.Context, userID uint64) ([]models.CheckinItem, error) {
	items := []models.CheckinItem{}
	err := r.db.WithContext(ctx).
		Scopes(database.OwnedBy(userID)).
		Where("status = ?", constants.FlagOn).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *GormCheckinRepository) UpdateItem(ctx context.Context, userID, id uint64, updates map[string]interface{}) error {
	return updateOwned(r.db.WithContext(ctx), &models.CheckinItem{}, userID, id, updates)
}

func (r *GormCheckinRepository) DeleteItem(ctx context.Context, userID, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.CheckinItem
		if err := tx.Scopes(database.OwnedBy(userID)).First(&item, id).Error; err != nil {
			return err
		}

		if err := tx.Where("item_id = ?", item.ID).Delete(&models.CheckinRecord{}).Error; err != nil {
			return fmt.Errorf("delete checkin records: %w", err)
		}

		if err := tx.Delete(&item).Error; err != nil {
			return fmt.Errorf("delete checkin item: %w", err)
		}
		return nil
	})
}

func (r *GormCheckinRepository) UpsertRecord(ctx context.Context, record *models.CheckinRecord) (*models.CheckinRecord, error) {
	db := r.db.WithContext(ctx)

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "item_id"}, {Name: "check_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"check_status", "item_remark", "update_time"}),
	}).Create(record).Error
	if err != nil {
		return nil, fmt.Errorf("upsert checkin record: %w", err)
	}

	var stored models.CheckinRecord
	err = db.Where("user_id = ? AND item_id = ? AND check_date = ?", record.UserID, record.ItemID, record.CheckDate).
		First(&stored).Error
	if err != nil {
		return nil, fmt.Errorf("reload checkin record: %w", err)
	}
	return &stored, nil
}

func (r *GormCheckinRepository) ListRecordsByDate(ctx context.Context, userID uint64, date time.Time) ([]models.CheckinRecord, error) {
	records := []models.CheckinRecord{}
	err := r.db.WithContext(ctx).
		Scopes(database.OwnedBy(userID)).
		Where("check_date = ?", date).
		Find(&records).Error
	return records, err
}

// ListRecords returns records newest first with the unpaginated total
func (r *GormCheckinRepository) ListRecords(ctx context.Context, userID uint64, filter CheckinRecordFilter) ([]models.CheckinRecord, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CheckinRecord{}).Scopes(database.OwnedBy(userID))

	if filter.ItemID != nil {
		query = query.Where("item_id = ?", *filter.ItemID)
	}
	if filter.StartDate != nil {
		query = query.Where("check_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("check_date <= ?", *filter.EndDate)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	records := []models.CheckinRecord{}
	err := query.
		Order("check_date DESC").
		Order("id DESC").
		Scopes(database.Paginate(filter.Page)).
		Find(&records).Error
	return records, total, err
}
