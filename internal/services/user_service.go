package services

import (
	"context"
	"strings"

	"hiremind_backend/internal/auth"
	"hiremind_backend/internal/logger"
	"hiremind_backend/internal/repositories"
	"hiremind_backend/internal/services/dto"
	"hiremind_backend/internal/storage"
	"hiremind_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type UserService interface {
	UpdateProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	// DeleteAccount удаляет пользователя и все его данные, включая файлы резюме
	DeleteAccount(ctx context.Context, db *gorm.DB, userID string) error
	ListUsers(ctx context.Context, db *gorm.DB, limit, offset int) (*dto.UserListResponse, error)
}

type userService struct {
	userRepo repositories.UserRepository
	storage  storage.Storage
}

func NewUserService(userRepo repositories.UserRepository, store storage.Storage) UserService {
	return &userService{
		userRepo: userRepo,
		storage:  store,
	}
}

func (s *userService) UpdateProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	fields := map[string]interface{}{}
	if req.FullName != nil {
		fields["full_name"] = strings.TrimSpace(*req.FullName)
	}
	if req.CompanyName != nil {
		fields["company_name"] = strings.TrimSpace(*req.CompanyName)
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		fields["password_hash"] = hash
	}

	if err := s.userRepo.UpdateProfile(db, userID, fields); err != nil {
		return nil, mapRepoError(err)
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) DeleteAccount(ctx context.Context, db *gorm.DB, userID string) error {
	keys, err := s.userRepo.Delete(db, userID)
	if err != nil {
		return mapRepoError(err)
	}

	removeResumes(ctx, s.storage, keys...)
	logger.CtxInfo(ctx, "user account deleted", "user_id", userID, "resumes_removed", len(keys))
	return nil
}

func (s *userService) ListUsers(ctx context.Context, db *gorm.DB, limit, offset int) (*dto.UserListResponse, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	users, total, err := s.userRepo.FindAll(db, limit, offset)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	resp := &dto.UserListResponse{
		Users:  make([]dto.UserResponse, len(users)),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
	for i := range users {
		resp.Users[i] = dto.NewUserResponse(&users[i])
	}
	return resp, nil
}
