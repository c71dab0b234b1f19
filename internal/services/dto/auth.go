package dto

import (
	"time"

	"hiremind_backend/internal/models"
)

// RegisterRequest - запрос регистрации
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,password"`
	FullName    string `json:"full_name" validate:"omitempty,max=255"`
	CompanyName string `json:"company_name" validate:"omitempty,max=255"`
}

// LoginRequest - запрос входа
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse - ответ на регистрацию и вход
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"` // секунды
	User        UserResponse `json:"user"`
}

// UserResponse - пользователь без password_hash
type UserResponse struct {
	ID               string          `json:"id"`
	Email            string          `json:"email"`
	FullName         string          `json:"full_name"`
	CompanyName      string          `json:"company_name"`
	Role             models.UserRole `json:"role"`
	IsActive         bool            `json:"is_active"`
	SubscriptionTier string          `json:"subscription_tier"`
	CreatedAt        time.Time       `json:"created_at"`
}

// UpdateUserRequest - частичное обновление профиля, nil поля не меняются
type UpdateUserRequest struct {
	FullName    *string `json:"full_name" validate:"omitempty,max=255"`
	CompanyName *string `json:"company_name" validate:"omitempty,max=255"`
	Password    *string `json:"password" validate:"omitempty,password"`
}

type UserListResponse struct {
	Users  []UserResponse `json:"users"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:               u.ID,
		Email:            u.Email,
		FullName:         u.FullName,
		CompanyName:      u.CompanyName,
		Role:             u.Role,
		IsActive:         u.IsActive,
		SubscriptionTier: u.SubscriptionTier,
		CreatedAt:        u.CreatedAt,
	}
}
