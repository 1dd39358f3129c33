package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/life-record-api/internal/constants"
	"github.com/yukikurage/life-record-api/internal/dto"
	"github.com/yukikurage/life-record-api/internal/models"
	"github.com/yukikurage/life-record-api/internal/repository"
	"github.com/yukikurage/life-record-api/internal/utils"
	"gorm.io/gorm"
)

var ErrRecipeNotFound = errors.New("recipe not found")

// RecipeService handles recipe business logic
type RecipeService struct {
	recipeRepo repository.RecipeRepository
}

// NewRecipeService creates a new RecipeService
func NewRecipeService(recipeRepo repository.RecipeRepository) *RecipeService {
	return &RecipeService{recipeRepo: recipeRepo}
}

func (s *RecipeService) List(ctx context.Context, userID uint64, query dto.RecipeQuery, page utils.PaginationParams) ([]models.Recipe, error) {
	recipes, err := s.recipeRepo.List(ctx, userID, repository.RecipeFilter{
		Category:  query.Category,
		Keyword:   query.Keyword,
		IsStarred: query.IsStarred,
		Page:      page,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

func (s *RecipeService) Get(ctx context.Context, userID, id uint64) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to find recipe: %w", err)
	}
	return recipe, nil
}

func (s *RecipeService) Create(ctx context.Context, userID uint64, req dto.CreateRecipeRequest) (*models.Recipe, error) {
	difficulty := constants.DefaultRecipeDifficulty
	if req.Difficulty != nil && *req.Difficulty != "" {
		difficulty = *req.Difficulty
	}

	recipe := &models.Recipe{
		UserID:      userID,
		Name:        req.Name,
		Category:    req.Category,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
		ImageURL:    req.ImageURL,
		Duration:    req.Duration,
		Difficulty:  &difficulty,
		Remark:      req.Remark,
		IsStarred:   req.IsStarred,
		IsDelete:    constants.FlagOff,
	}
	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	return recipe, nil
}

func (s *RecipeService) Update(ctx context.Context, userID, id uint64, req dto.UpdateRecipeRequest) (*models.Recipe, error) {
	updates := updateSet{}
	setRequired(updates, "name", req.Name)
	setRequired(updates, "category", req.Category)
	setRequired(updates, "ingredients", req.Ingredients)
	setRequired(updates, "steps", req.Steps)
	setNullable(updates, "image_url", req.ImageURL)
	setNullable(updates, "duration", req.Duration)
	setNullable(updates, "difficulty", req.Difficulty)
	setNullable(updates, "remark", req.Remark)
	setRequired(updates, "is_starred", req.IsStarred)

	if err := s.recipeRepo.Update(ctx, userID, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	return s.Get(ctx, userID, id)
}

// Delete is a soft delete.
func (s *RecipeService) Delete(ctx context.Context, userID, id uint64) error {
	if err := s.recipeRepo.SoftDelete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	return nil
}
