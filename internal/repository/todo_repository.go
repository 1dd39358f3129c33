package repository

import (
	"context"

	"github.com/yukikurage/life-record-api/internal/database"
	"github.com/yukikurage/life-record-api/internal/models"
	"gorm.io/gorm"
)

// GormTodoRepository is a GORM implementation of TodoRepository
type GormTodoRepository struct {
	db *gorm.DB
}

// NewTodoRepository creates a new TodoRepository
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &GormTodoRepository{db: db}
}

func (r *GormTodoRepository) Create(ctx context.Context, todo *models.Todo) error {
	return r.db.WithContext(ctx).Create(todo).Error
}

func (r *GormTodoRepository) FindByID(ctx context.Context, userID, id uint64) (*models.Todo, error) {
	var todo models.Todo
	if err := r.db.WithContext(ctx).Scopes(database.OwnedBy(userID)).First(&todo, id).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

// List returns every matching todo: open before done, then by priority and deadline.
func (r *GormTodoRepository) List(ctx context.Context, userID uint64, filter TodoFilter) ([]models.Todo, error) {
	query := r.db.WithContext(ctx).Scopes(database.OwnedBy(userID))

	if filter.CategoryPath != "" {
		query = query.Where("category_path = ?", filter.CategoryPath)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.IsStarred != nil {
		query = query.Where("is_starred = ?", *filter.IsStarred)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.Query != "" {
		q := likePattern(filter.Query)
		query = query.Where("(title LIKE ? OR remark LIKE ?)", q, q)
	}

	todos := []models.Todo{}
	err := query.
		Order("status ASC").
		Order("priority ASC").
		Order("deadline ASC").
		Order("id ASC").
		Find(&todos).Error
	return todos, err
}

func (r *GormTodoRepository) Update(ctx context.Context, userID, id uint64, updates map[string]interface{}) error {
	return updateOwned(r.db.WithContext(ctx), &models.Todo{}, userID, id, updates)
}

func (r *GormTodoRepository) Delete(ctx context.Context, userID, id uint64) error {
	result := r.db.WithContext(ctx).Scopes(database.OwnedBy(userID)).Delete(&models.Todo{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
