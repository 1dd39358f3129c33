package repository

import (
	"context"

	"github.com/yukikurage/life-record-api/internal/constants"
	"github.com/yukikurage/life-record-api/internal/database"
	"github.com/yukikurage/life-record-api/internal/models"
	"gorm.io/gorm"
)

// GormRecipeRepository is a GORM implementation of RecipeRepository
type GormRecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new RecipeRepository
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &GormRecipeRepository{db: db}
}

func (r *GormRecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *GormRecipeRepository) FindByID(ctx context.Context, userID, id uint64) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.WithContext(ctx).
		Scopes(database.OwnedBy(userID), database.NotDeleted).
		First(&recipe, id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// List returns starred recipes first, then newest-updated
func (r *GormRecipeRepository) List(ctx context.Context, userID uint64, filter RecipeFilter) ([]models.Recipe, error) {
	query := r.db.WithContext(ctx).Scopes(database.OwnedBy(userID), database.NotDeleted)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.IsStarred != nil {
		query = query.Where("is_starred = ?", *filter.IsStarred)
	}
	if filter.Keyword != "" {
		kw := likePattern(filter.Keyword)
		query = query.Where("(name LIKE ? OR ingredients LIKE ? OR remark LIKE ?)", kw, kw, kw)
	}

	recipes := []models.Recipe{}
	err := query.
		Order("is_starred DESC").
		Order("update_time DESC").
		Order("id DESC").
		Scopes(database.Paginate(filter.Page)).
		Find(&recipes).Error
	return recipes, err
}

func (r *GormRecipeRepository) Update(ctx context.Context, userID, id uint64, updates map[string]interface{}) error {
	return updateOwned(r.db.WithContext(ctx), &models.Recipe{}, userID, id, updates, database.NotDeleted)
}

func (r *GormRecipeRepository) SoftDelete(ctx context.Context, userID, id uint64) error {
	return updateOwned(r.db.WithContext(ctx), &models.Recipe{}, userID, id,
		map[string]interface{}{"is_delete": constants.FlagOn}, database.NotDeleted)
}
