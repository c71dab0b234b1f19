package services

import (
	"context"
	"errors"
	"strings"

	"hiremind_backend/internal/auth"
	"hiremind_backend/internal/logger"
	"hiremind_backend/internal/models"
	"hiremind_backend/internal/plans"
	"hiremind_backend/internal/repositories"
	"hiremind_backend/internal/services/dto"
	"hiremind_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Me(ctx context.Context, db *gorm.DB, userID string) (*dto.UserResponse, error)
	// EnsureAdmin создает администратора, если в системе его еще нет
	EnsureAdmin(ctx context.Context, db *gorm.DB, email, password string) error
}

type authService struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenManager
}

func NewAuthService(userRepo repositories.UserRepository, tokens *auth.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *authService) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:            req.Email,
		PasswordHash:     hash,
		FullName:         strings.TrimSpace(req.FullName),
		CompanyName:      strings.TrimSpace(req.CompanyName),
		Role:             models.UserRoleRecruiter,
		IsActive:         true,
		SubscriptionTier: plans.Free,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		return nil, mapRepoError(err)
	}

	logger.CtxInfo(ctx, "user registered", "user_id", user.ID)
	return s.issueToken(user)
}

func (s *authService) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.DatabaseError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}

	return s.issueToken(user)
}

func (s *authService) Me(ctx context.Context, db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *authService) EnsureAdmin(ctx context.Context, db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	exists, err := s.userRepo.ExistsByRole(db, models.UserRoleAdmin)
	if err != nil {
		return apperrors.DatabaseError(err)
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	admin := &models.User{
		Email:            email,
		PasswordHash:     hash,
		FullName:         "Administrator",
		Role:             models.UserRoleAdmin,
		IsActive:         true,
		SubscriptionTier: plans.Free,
	}
	if err := s.userRepo.Create(db, admin); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			// пользователь с таким email уже есть - повышаем роль
			user, findErr := s.userRepo.FindByEmail(db, email)
			if findErr != nil {
				return mapRepoError(findErr)
			}
			return mapRepoError(s.userRepo.UpdateProfile(db, user.ID, map[string]interface{}{"role": models.UserRoleAdmin}))
		}
		return mapRepoError(err)
	}

	logger.CtxInfo(ctx, "admin user created", "email", admin.Email)
	return nil
}

func (s *authService) issueToken(user *models.User) (*dto.TokenResponse, error) {
	token, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
		User:        dto.NewUserResponse(user),
	}, nil
}
