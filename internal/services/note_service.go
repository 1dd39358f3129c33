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

var ErrNoteNotFound = errors.New("note not found")

// NoteService handles note business logic
type NoteService struct {
	noteRepo repository.NoteRepository
}

// NewNoteService creates a new NoteService
func NewNoteService(noteRepo repository.NoteRepository) *NoteService {
	return &NoteService{noteRepo: noteRepo}
}

func (s *NoteService) List(ctx context.Context, userID uint64, query dto.NoteQuery, page utils.PaginationParams) ([]models.Note, error) {
	notes, err := s.noteRepo.List(ctx, userID, repository.NoteFilter{
		CategoryPath: query.CategoryPath,
		Keyword:      query.Keyword,
		Page:         page,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

func (s *NoteService) Get(ctx context.Context, userID, id uint64) (*models.Note, error) {
	note, err := s.noteRepo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}
	return note, nil
}

func (s *NoteService) Create(ctx context.Context, userID uint64, req dto.CreateNoteRequest) (*models.Note, error) {
	note := &models.Note{
		UserID:       userID,
		CategoryPath: req.CategoryPath,
		Title:        req.Title,
		Content:      req.Content,
		ContentType:  req.ContentType,
		IsDelete:     constants.FlagOff,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return note, nil
}

func (s *NoteService) Update(ctx context.Context, userID, id uint64, req dto.UpdateNoteRequest) (*models.Note, error) {
	updates := updateSet{}
	setNullable(updates, "category_path", req.CategoryPath)
	setRequired(updates, "title", req.Title)
	setRequired(updates, "content", req.Content)
	setRequired(updates, "content_type", req.ContentType)

	if err := s.noteRepo.Update(ctx, userID, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	return s.Get(ctx, userID, id)
}

// Delete is a soft delete; the row stays in storage.
func (s *NoteService) Delete(ctx context.Context, userID, id uint64) error {
	if err := s.noteRepo.SoftDelete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}
