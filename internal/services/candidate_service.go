package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"hiremind_backend/internal/analyzer"
	"hiremind_backend/internal/config"
	"hiremind_backend/internal/logger"
	"hiremind_backend/internal/models"
	"hiremind_backend/internal/plans"
	"hiremind_backend/internal/ranking"
	"hiremind_backend/internal/repositories"
	"hiremind_backend/internal/resume"
	"hiremind_backend/internal/services/dto"
	"hiremind_backend/internal/storage"
	"hiremind_backend/pkg/apperrors"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ResumeFile - загружаемый файл резюме
type ResumeFile struct {
	Filename string
	Size     int64
	Content  io.Reader
}

type CandidateService interface {
	UploadResume(ctx context.Context, db *gorm.DB, userID, jobID string, req *dto.UploadResumeRequest, file ResumeFile) (*dto.CandidateResponse, error)
	ListCandidates(ctx context.Context, db *gorm.DB, userID, jobID, statusFilter, sortBy string) ([]dto.CandidateResponse, error)
	GetCandidate(ctx context.Context, db *gorm.DB, userID, candidateID string) (*dto.CandidateResponse, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, userID, candidateID string, status models.CandidateStatus) (*dto.CandidateResponse, error)
	Reanalyze(ctx context.Context, db *gorm.DB, userID, candidateID string) (*dto.AnalysisResponse, error)
	DeleteCandidate(ctx context.Context, db *gorm.DB, userID, candidateID string) error
}

type candidateService struct {
	candidateRepo repositories.CandidateRepository
	jobRepo       repositories.JobRepository
	userRepo      repositories.UserRepository
	catalog       *plans.Catalog
	analyzer      analyzer.Analyzer
	storage       storage.Storage
	maxFileSize   int64

	// повторный анализ одного кандидата выполняется один раз для всех одновременных запросов
	reanalysis singleflight.Group
}

func NewCandidateService(
	candidateRepo repositories.CandidateRepository,
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	catalog *plans.Catalog,
	resumeAnalyzer analyzer.Analyzer,
	store storage.Storage,
	maxFileSize int64,
) CandidateService {
	return &candidateService{
		candidateRepo: candidateRepo,
		jobRepo:       jobRepo,
		userRepo:      userRepo,
		catalog:       catalog,
		analyzer:      resumeAnalyzer,
		storage:       store,
		maxFileSize:   maxFileSize,
	}
}

func (s *candidateService) UploadResume(ctx context.Context, db *gorm.DB, userID, jobID string, req *dto.UploadResumeRequest, file ResumeFile) (*dto.CandidateResponse, error) {
	job, err := s.jobRepo.FindOwned(db, jobID, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if err := s.checkResumeLimit(ctx, db, userID); err != nil {
		return nil, err
	}

	data, err := s.readFile(file)
	if err != nil {
		return nil, err
	}

	// 1. Сохраняем файл
	key := resumeKey(jobID, file.Filename)
	if err := s.storage.Save(ctx, key, bytes.NewReader(data), config.ResumeContentType(file.Filename)); err != nil {
		return nil, apperrors.ExternalServiceError(err, "storage")
	}

	// 2. Текст резюме и анализ. Анализатор не возвращает ошибок.
	text := resume.ExtractText(data, config.IsPDF(file.Filename))
	if text == "" {
		logger.CtxWarn(ctx, "resume text is empty", "job_id", jobID, "filename", file.Filename)
	}
	result := s.analyzer.Analyze(ctx, text, job.Description, job.Skills)

	// 3. Кандидат со всеми полями анализа
	score := result.Score
	experience := result.ExperienceYears
	candidate := &models.Candidate{
		JobID:           jobID,
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.TrimSpace(req.Email),
		Phone:           strings.TrimSpace(req.Phone),
		ResumeURL:       key,
		ResumeText:      text,
		AIScore:         &score,
		AISummary:       result.Summary,
		SkillsMatched:   datatypes.JSONSlice[string](nonNilSkills(result.SkillsMatched)),
		ExperienceYears: &experience,
		Strengths:       datatypes.JSONSlice[string](nonNilSkills(result.Strengths)),
		Concerns:        datatypes.JSONSlice[string](nonNilSkills(result.Concerns)),
		Status:          models.CandidateStatusNew,
	}

	if err := s.candidateRepo.Create(db, candidate); err != nil {
		removeResumes(ctx, s.storage, key)
		return nil, apperrors.DatabaseError(err)
	}

	logger.CtxInfo(ctx, "resume uploaded",
		"candidate_id", candidate.ID,
		"job_id", jobID,
		"score", score,
		"degraded", result.Degraded,
	)

	resp := dto.NewCandidateResponse(candidate)
	return &resp, nil
}

func (s *candidateService) checkResumeLimit(ctx context.Context, db *gorm.DB, userID string) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return mapRepoError(err)
	}

	count, err := s.candidateRepo.CountByUser(db, userID)
	if err != nil {
		return apperrors.DatabaseError(err)
	}
	if !s.catalog.EnforceCreationLimit(user.SubscriptionTier, plans.KindResume, int(count)) {
		limits := s.catalog.Get(user.SubscriptionTier)
		logger.CtxInfo(ctx, "resume limit reached", "plan", limits.Name, "resumes", count)
		return apperrors.ErrLimitExceeded(string(plans.KindResume), limits.Name, limits.ResumesLimit)
	}
	return nil
}

func (s *candidateService) readFile(file ResumeFile) ([]byte, error) {
	if file.Content == nil || file.Size == 0 {
		return nil, apperrors.ErrEmptyFile
	}
	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		return nil, apperrors.ErrFileTooLarge.WithDetails(map[string]interface{}{"max_size": s.maxFileSize})
	}

	reader := file.Content
	if s.maxFileSize > 0 {
		reader = io.LimitReader(file.Content, s.maxFileSize+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Could not read uploaded file")
	}
	if len(data) == 0 {
		return nil, apperrors.ErrEmptyFile
	}
	if s.maxFileSize > 0 && int64(len(data)) > s.maxFileSize {
		return nil, apperrors.ErrFileTooLarge.WithDetails(map[string]interface{}{"max_size": s.maxFileSize})
	}
	return data, nil
}

func (s *candidateService) ListCandidates(ctx context.Context, db *gorm.DB, userID, jobID, statusFilter, sortBy string) ([]dto.CandidateResponse, error) {
	status := models.CandidateStatus(statusFilter)
	if status != "" && !status.IsValid() {
		return nil, apperrors.InvalidArgument("candidate", "Unknown candidate status: "+statusFilter)
	}

	if _, err := s.jobRepo.FindOwned(db, jobID, userID); err != nil {
		return nil, mapRepoError(err)
	}

	candidates, err := s.candidateRepo.ListByJob(db, jobID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	ranked := ranking.Rank(candidates, ranking.ParseSortKey(sortBy), status)
	return dto.NewCandidateList(ranked), nil
}

func (s *candidateService) GetCandidate(ctx context.Context, db *gorm.DB, userID, candidateID string) (*dto.CandidateResponse, error) {
	candidate, err := s.candidateRepo.FindOwned(db, candidateID, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	resp := dto.NewCandidateResponse(candidate)
	return &resp, nil
}

func (s *candidateService) UpdateStatus(ctx context.Context, db *gorm.DB, userID, candidateID string, status models.CandidateStatus) (*dto.CandidateResponse, error) {
	if !status.IsValid() {
		return nil, apperrors.InvalidArgument("candidate", "Unknown candidate status: "+string(status))
	}

	candidate, err := s.candidateRepo.FindOwned(db, candidateID, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if err := s.candidateRepo.UpdateStatus(db, candidateID, status); err != nil {
		return nil, mapRepoError(err)
	}
	candidate.Status = status

	resp := dto.NewCandidateResponse(candidate)
	return &resp, nil
}

func (s *candidateService) Reanalyze(ctx context.Context, db *gorm.DB, userID, candidateID string) (*dto.AnalysisResponse, error) {
	candidate, err := s.candidateRepo.FindOwned(db, candidateID, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	job, err := s.jobRepo.FindOwned(db, candidate.JobID, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	// общий вызов не должен зависеть от отмены запроса первого клиента
	sharedCtx := context.WithoutCancel(ctx)
	sharedDB := db.WithContext(sharedCtx)

	v, err, shared := s.reanalysis.Do(candidateID, func() (interface{}, error) {
		result := s.analyzer.Analyze(sharedCtx, candidate.ResumeText, job.Description, job.Skills)

		err := s.candidateRepo.UpdateAnalysis(sharedDB, candidateID, repositories.Analysis{
			Score:           result.Score,
			Summary:         result.Summary,
			SkillsMatched:   result.SkillsMatched,
			ExperienceYears: result.ExperienceYears,
			Strengths:       result.Strengths,
			Concerns:        result.Concerns,
		})
		if err != nil {
			return nil, mapRepoError(err)
		}
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.CtxDebug(ctx, "reanalysis result shared", "candidate_id", candidateID)
	}

	resp := dto.NewAnalysisResponse(v.(analyzer.Result))
	return &resp, nil
}

func (s *candidateService) DeleteCandidate(ctx context.Context, db *gorm.DB, userID, candidateID string) error {
	if _, err := s.candidateRepo.FindOwned(db, candidateID, userID); err != nil {
		return mapRepoError(err)
	}

	key, err := s.candidateRepo.Delete(db, candidateID)
	if err != nil {
		return mapRepoError(err)
	}

	removeResumes(ctx, s.storage, key)
	return nil
}

// resumeKey - уникальный ключ файла в storage, расширение сохраняется
func resumeKey(jobID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("resumes/%s/%s%s", jobID, uuid.NewString(), ext)
}

func nonNilSkills(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
