package services

import (
	"context"
	"errors"

	"hiremind_backend/internal/logger"
	"hiremind_backend/internal/repositories"
	"hiremind_backend/internal/storage"
	"hiremind_backend/pkg/apperrors"
)

// mapRepoError переводит ошибки репозиториев в AppError.
// Неизвестные ошибки считаются ошибками БД.
func mapRepoError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.ErrUserNotFound
	case errors.Is(err, repositories.ErrUserAlreadyExists):
		return apperrors.ErrEmailTaken
	case errors.Is(err, repositories.ErrJobNotFound):
		return apperrors.ErrJobNotFound
	case errors.Is(err, repositories.ErrCandidateNotFound):
		return apperrors.ErrCandidateNotFound
	case errors.Is(err, repositories.ErrTemplateNotFound):
		return apperrors.ErrTemplateNotFound
	case errors.Is(err, repositories.ErrSubscriptionNotFound):
		return apperrors.ErrNotFound(err)
	}
	return apperrors.DatabaseError(err)
}

// removeResumes удаляет файлы после коммита. Ошибки только логируются:
// запись уже удалена, а файл без записи недоступен через API.
func removeResumes(ctx context.Context, store storage.Storage, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := store.Delete(ctx, key); err != nil {
			logger.CtxWithError(ctx, "failed to delete resume file", err, "key", key)
		}
	}
}
