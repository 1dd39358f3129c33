package repository

import (
	"context"

	"github.com/yukikurage/life-record-api/internal/constants"
	"github.com/yukikurage/life-record-api/internal/database"
	"github.com/yukikurage/life-record-api/internal/models"
	"gorm.io/gorm"
)

// GormNoteRepository is a GORM implementation of NoteRepository
type GormNoteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &GormNoteRepository{db: db}
}

func (r *GormNoteRepository) Create(ctx context.Context, note *models.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *GormNoteRepository) FindByID(ctx context.Context, userID, id uint64) (*models.Note, error) {
	var note models.Note
	err := r.db.WithContext(ctx).
		Scopes(database.OwnedBy(userID), database.NotDeleted).
		First(&note, id).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// List returns notes newest-updated first
func (r *GormNoteRepository) List(ctx context.Context, userID uint64, filter NoteFilter) ([]models.Note, error) {
	query := r.db.WithContext(ctx).Scopes(database.OwnedBy(userID), database.NotDeleted)

	if filter.CategoryPath != "" {
		query = query.Where("category_path = ?", filter.CategoryPath)
	}
	if filter.Keyword != "" {
		kw := likePattern(filter.Keyword)
		query = query.Where("(title LIKE ? OR content LIKE ?)", kw, kw)
	}

	notes := []models.Note{}
	err := query.Order("update_time DESC").Order("id DESC").
		Scopes(database.Paginate(filter.Page)).
		Find(&notes).Error
	return notes, err
}

func (r *GormNoteRepository) Update(ctx context.Context, userID, id uint64, updates map[string]interface{}) error {
	return updateOwned(r.db.WithContext(ctx), &models.Note{}, userID, id, updates, database.NotDeleted)
}

func (r *GormNoteRepository) SoftDelete(ctx context.Context, userID, id uint64) error {
	return updateOwned(r.db.WithContext(ctx), &models.Note{}, userID, id,
		map[string]interface{}{"is_delete": constants.FlagOn}, database.NotDeleted)
}
