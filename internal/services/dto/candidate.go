package dto

import (
	"time"

	"hiremind_backend/internal/analyzer"
	"hiremind_backend/internal/models"
)

// UploadResumeRequest - поля multipart формы загрузки резюме (файл передается отдельно)
type UploadResumeRequest struct {
	Name  string `form:"name" json:"name" validate:"required,max=255"`
	Email string `form:"email" json:"email" validate:"required,email,max=255"`
	Phone string `form:"phone" json:"phone" validate:"omitempty,max=50"`
}

type UpdateCandidateStatusRequest struct {
	Status models.CandidateStatus `json:"status" validate:"required,candidate_status"`
}

type CandidateResponse struct {
	ID              string                 `json:"id"`
	JobID           string                 `json:"job_id"`
	Name            string                 `json:"name"`
	Email           string                 `json:"email"`
	Phone           string                 `json:"phone"`
	ResumeURL       string                 `json:"resume_url"`
	AIScore         *int                   `json:"ai_score"`
	AISummary       string                 `json:"ai_summary"`
	SkillsMatched   []string               `json:"skills_matched"`
	ExperienceYears *int                   `json:"experience_years"`
	Strengths       []string               `json:"strengths"`
	Concerns        []string               `json:"concerns"`
	Status          models.CandidateStatus `json:"status"`
	CreatedAt       time.Time              `json:"created_at"`
}

// AnalysisResponse - результат повторного анализа
type AnalysisResponse struct {
	Score           int      `json:"score"`
	Summary         string   `json:"summary"`
	SkillsMatched   []string `json:"skills_matched"`
	ExperienceYears int      `json:"experience_years"`
	Strengths       []string `json:"strengths"`
	Concerns        []string `json:"concerns"`
}

func NewCandidateResponse(c *models.Candidate) CandidateResponse {
	return CandidateResponse{
		ID:              c.ID,
		JobID:           c.JobID,
		Name:            c.Name,
		Email:           c.Email,
		Phone:           c.Phone,
		ResumeURL:       c.ResumeURL,
		AIScore:         c.AIScore,
		AISummary:       c.AISummary,
		SkillsMatched:   orEmpty(c.SkillsMatched),
		ExperienceYears: c.ExperienceYears,
		Strengths:       orEmpty(c.Strengths),
		Concerns:        orEmpty(c.Concerns),
		Status:          c.Status,
		CreatedAt:       c.CreatedAt,
	}
}

func NewCandidateList(candidates []models.Candidate) []CandidateResponse {
	out := make([]CandidateResponse, len(candidates))
	for i := range candidates {
		out[i] = NewCandidateResponse(&candidates[i])
	}
	return out
}

func NewAnalysisResponse(r analyzer.Result) AnalysisResponse {
	return AnalysisResponse{
		Score:           r.Score,
		Summary:         r.Summary,
		SkillsMatched:   orEmpty(r.SkillsMatched),
		ExperienceYears: r.ExperienceYears,
		Strengths:       orEmpty(r.Strengths),
		Concerns:        orEmpty(r.Concerns),
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
