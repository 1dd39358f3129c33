package dto

import (
	"time"

	"github.com/yukikurage/life-record-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID         uint64    `json:"id"`
	Username   string    `json:"username"`
	Nickname   *string   `json:"nickname"`
	Avatar     *string   `json:"avatar"`
	CreateTime time.Time `json:"create_time"`
}

// TokenResponse is returned by the login endpoint
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// LoginRequest is bound from an OAuth2 password-style form
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type RegisterRequest struct {
	Username string  `json:"username" binding:"required,max=50"`
	Password string  `json:"password" binding:"required,min=6,max=72"`
	Nickname *string `json:"nickname" binding:"omitempty,max=50"`
	Avatar   *string `json:"avatar" binding:"omitempty,max=255"`
}

type UpdateMeRequest struct {
	Nickname Optional[string] `json:"nickname" binding:"omitempty,max=50"`
	Password Optional[string] `json:"password" binding:"omitempty,min=6,max=72"`
	Avatar   Optional[string] `json:"avatar" binding:"omitempty,max=255"`
}

func (r *UpdateMeRequest) Validate() error {
	return rejectNull(map[string]nullable{"password": r.Password})
}

func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:         user.ID,
		Username:   user.Username,
		Nickname:   user.Nickname,
		Avatar:     user.Avatar,
		CreateTime: user.CreatedAt,
	}
}
