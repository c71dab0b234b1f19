package services

import (
	"context"
	"strings"

	"hiremind_backend/internal/analyzer"
	"hiremind_backend/internal/logger"
	"hiremind_backend/internal/models"
	"hiremind_backend/internal/plans"
	"hiremind_backend/internal/repositories"
	"hiremind_backend/internal/services/dto"
	"hiremind_backend/internal/storage"
	"hiremind_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const defaultJobType = "full-time"

type JobService interface {
	CreateJob(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	ListJobs(ctx context.Context, db *gorm.DB, userID, statusFilter string) ([]dto.JobResponse, error)
	GetJob(ctx context.Context, db *gorm.DB, userID, jobID string) (*dto.JobResponse, error)
	UpdateJob(ctx context.Context, db *gorm.DB, userID, jobID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error)
	DeleteJob(ctx context.Context, db *gorm.DB, userID, jobID string) error
	GenerateDescription(ctx context.Context, db *gorm.DB, userID, jobID string) (*dto.JobDescriptionResponse, error)
}

type jobService struct {
	jobRepo  repositories.JobRepository
	userRepo repositories.UserRepository
	catalog  *plans.Catalog
	analyzer analyzer.Analyzer
	storage  storage.Storage
}

func NewJobService(
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	catalog *plans.Catalog,
	resumeAnalyzer analyzer.Analyzer,
	store storage.Storage,
) JobService {
	return &jobService{
		jobRepo:  jobRepo,
		userRepo: userRepo,
		catalog:  catalog,
		analyzer: resumeAnalyzer,
		storage:  store,
	}
}

func (s *jobService) CreateJob(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	user, err := s.userRepo.FindByID(tx, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	count, err := s.jobRepo.CountByUser(tx, userID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if !s.catalog.EnforceCreationLimit(user.SubscriptionTier, plans.KindJob, int(count)) {
		limits := s.catalog.Get(user.SubscriptionTier)
		logger.CtxInfo(ctx, "job limit reached", "plan", limits.Name, "jobs", count)
		return nil, apperrors.ErrLimitExceeded(string(plans.KindJob), limits.Name, limits.JobsLimit)
	}

	job := &models.Job{
		UserID:       userID,
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Requirements: req.Requirements,
		Skills:       datatypes.JSONSlice[string](cleanSkills(req.Skills)),
		Location:     req.Location,
		SalaryRange:  req.SalaryRange,
		JobType:      req.JobType,
		Status:       req.Status,
	}
	if job.JobType == "" {
		job.JobType = defaultJobType
	}
	if job.Status == "" {
		job.Status = models.JobStatusActive
	}

	if err := s.jobRepo.Create(tx, job); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	resp := dto.NewJobResponse(job, 0)
	return &resp, nil
}

func (s *jobService) ListJobs(ctx context.Context, db *gorm.DB, userID, statusFilter string) ([]dto.JobResponse, error) {
	status := models.JobStatus(statusFilter)
	if status != "" && !status.IsValid() {
		return nil, apperrors.InvalidArgument("job", "Unknown job status: "+statusFilter)
	}

	jobs, err := s.jobRepo.ListWithCounts(db, userID, status)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	out := make([]dto.JobResponse, len(jobs))
	for i := range jobs {
		out[i] = dto.NewJobResponse(&jobs[i].Job, jobs[i].CandidateCount)
	}
	return out, nil
}

func (s *jobService) GetJob(ctx context.Context, db *gorm.DB, userID, jobID string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindOwned(db, jobID, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return s.withCount(db, job)
}

func (s *jobService) UpdateJob(ctx context.Context, db *gorm.DB, userID, jobID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindOwned(db, jobID, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if req.Title != nil {
		job.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Requirements != nil {
		job.Requirements = *req.Requirements
	}
	if req.Skills != nil {
		job.Skills = datatypes.JSONSlice[string](cleanSkills(*req.Skills))
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.SalaryRange != nil {
		job.SalaryRange = *req.SalaryRange
	}
	if req.JobType != nil && *req.JobType != "" {
		job.JobType = *req.JobType
	}
	if req.Status != nil && *req.Status != "" {
		job.Status = *req.Status
	}

	if err := s.jobRepo.Update(db, job); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return s.withCount(db, job)
}

func (s *jobService) DeleteJob(ctx context.Context, db *gorm.DB, userID, jobID string) error {
	if _, err := s.jobRepo.FindOwned(db, jobID, userID); err != nil {
		return mapRepoError(err)
	}

	keys, err := s.jobRepo.Delete(db, jobID)
	if err != nil {
		return mapRepoError(err)
	}

	removeResumes(ctx, s.storage, keys...)
	logger.CtxInfo(ctx, "job deleted", "job_id", jobID, "candidates_removed", len(keys))
	return nil
}

func (s *jobService) GenerateDescription(ctx context.Context, db *gorm.DB, userID, jobID string) (*dto.JobDescriptionResponse, error) {
	job, err := s.jobRepo.FindOwned(db, jobID, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	description := s.analyzer.GenerateJobDescription(ctx, job.Title, job.Skills)
	return &dto.JobDescriptionResponse{Description: description}, nil
}

func (s *jobService) withCount(db *gorm.DB, job *models.Job) (*dto.JobResponse, error) {
	count, err := s.jobRepo.CountCandidates(db, job.ID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	resp := dto.NewJobResponse(job, count)
	return &resp, nil
}

// cleanSkills убирает пустые значения и дубликаты без учета регистра, порядок сохраняется
func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		key := strings.ToLower(skill)
		if skill == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, skill)
	}
	return out
}
