package services

import (
	"context"
	"fmt"

	"github.com/yukikurage/life-record-api/internal/constants"
	"github.com/yukikurage/life-record-api/internal/dto"
	"github.com/yukikurage/life-record-api/internal/models"
	"github.com/yukikurage/life-record-api/internal/repository"
)

// UserService manages the caller's own profile.
type UserService struct {
	userRepo repository.UserRepository
	auth     *AuthService
}

func NewUserService(userRepo repository.UserRepository, authService *AuthService) *UserService {
	return &UserService{userRepo: userRepo, auth: authService}
}

// UpdateMe applies the fields present in req. A new password is re-hashed.
func (s *UserService) UpdateMe(ctx context.Context, userID uint64, req dto.UpdateMeRequest) (*models.User, error) {
	if _, err := s.auth.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	updates := updateSet{}
	setNullable(updates, "nickname", req.Nickname)
	setNullable(updates, "avatar", req.Avatar)

	if req.Password.Valid {
		if len(req.Password.Value) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hashed, err := hashPassword(req.Password.Value)
		if err != nil {
			return nil, err
		}
		updates["password"] = hashed
	}

	if err := s.userRepo.Update(ctx, userID, updates); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return s.auth.GetUser(ctx, userID)
}
