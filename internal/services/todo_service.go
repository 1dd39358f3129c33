package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/life-record-api/internal/constants"
	"github.com/yukikurage/life-record-api/internal/dto"
	"github.com/yukikurage/life-record-api/internal/models"
	"github.com/yukikurage/life-record-api/internal/repository"
	"gorm.io/gorm"
)

var ErrTodoNotFound = errors.New("todo not found")

// TodoService handles todo business logic
type TodoService struct {
	todoRepo repository.TodoRepository
}

// NewTodoService creates a new TodoService
func NewTodoService(todoRepo repository.TodoRepository) *TodoService {
	return &TodoService{todoRepo: todoRepo}
}

// List returns the full, unpaginated list.
func (s *TodoService) List(ctx context.Context, userID uint64, query dto.TodoQuery) ([]models.Todo, error) {
	todos, err := s.todoRepo.List(ctx, userID, repository.TodoFilter{
		CategoryPath: query.CategoryPath,
		Status:       query.Status,
		IsStarred:    query.IsStarred,
		Priority:     query.Priority,
		Query:        query.Q,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

func (s *TodoService) Get(ctx context.Context, userID, id uint64) (*models.Todo, error) {
	todo, err := s.todoRepo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}
	return todo, nil
}

func (s *TodoService) Create(ctx context.Context, userID uint64, req dto.CreateTodoRequest) (*models.Todo, error) {
	priority := constants.PriorityMedium
	if req.Priority != nil {
		priority = *req.Priority
	}

	todo := &models.Todo{
		UserID:       userID,
		CategoryPath: req.CategoryPath,
		Title:        req.Title,
		Remark:       req.Remark,
		Deadline:     req.Deadline,
		Priority:     priority,
		Status:       req.Status,
		IsStarred:    req.IsStarred,
	}
	if err := s.todoRepo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return todo, nil
}

func (s *TodoService) Update(ctx context.Context, userID, id uint64, req dto.UpdateTodoRequest) (*models.Todo, error) {
	updates := updateSet{}
	setNullable(updates, "category_path", req.CategoryPath)
	setRequired(updates, "title", req.Title)
	setNullable(updates, "remark", req.Remark)
	setNullable(updates, "deadline", req.Deadline)
	setRequired(updates, "priority", req.Priority)
	setRequired(updates, "status", req.Status)
	setRequired(updates, "is_starred", req.IsStarred)

	if err := s.todoRepo.Update(ctx, userID, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}
	return s.Get(ctx, userID, id)
}

// Delete removes the row.
func (s *TodoService) Delete(ctx context.Context, userID, id uint64) error {
	if err := s.todoRepo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTodoNotFound
		}
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}
