package services

import (
	"context"
	"math"

	"hiremind_backend/internal/models"
	"hiremind_backend/internal/repositories"
	"hiremind_backend/internal/services/dto"
	"hiremind_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type DashboardService interface {
	GetStats(ctx context.Context, db *gorm.DB, userID string) (*dto.DashboardStats, error)
}

type dashboardService struct {
	jobRepo       repositories.JobRepository
	candidateRepo repositories.CandidateRepository
}

func NewDashboardService(jobRepo repositories.JobRepository, candidateRepo repositories.CandidateRepository) DashboardService {
	return &dashboardService{
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
	}
}

func (s *dashboardService) GetStats(ctx context.Context, db *gorm.DB, userID string) (*dto.DashboardStats, error) {
	var (
		stats dto.DashboardStats
		err   error
	)

	if stats.TotalJobs, err = s.jobRepo.CountByUser(db, userID); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if stats.ActiveJobs, err = s.jobRepo.CountByUserAndStatus(db, userID, models.JobStatusActive); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if stats.TotalCandidates, err = s.candidateRepo.CountByUser(db, userID); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if stats.Shortlisted, err = s.candidateRepo.CountByUserAndStatus(db, userID, models.CandidateStatusShortlisted); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	avg, err := s.candidateRepo.AverageScoreByUser(db, userID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	stats.AvgScore = math.Round(avg*10) / 10

	return &stats, nil
}
