package dto

import (
	"time"

	"hiremind_backend/internal/models"
)

type CreateJobRequest struct {
	Title        string           `json:"title" validate:"required,max=255"`
	Description  string           `json:"description" validate:"omitempty,max=20000"`
	Requirements string           `json:"requirements" validate:"omitempty,max=20000"`
	Skills       []string         `json:"skills" validate:"omitempty,max=50,dive,required,max=100"`
	Location     string           `json:"location" validate:"omitempty,max=255"`
	SalaryRange  string           `json:"salary_range" validate:"omitempty,max=100"`
	JobType      string           `json:"job_type" validate:"omitempty,oneof=full-time part-time contract internship temporary"`
	Status       models.JobStatus `json:"status" validate:"omitempty,job_status"`
}

// UpdateJobRequest - nil поля не меняются
type UpdateJobRequest struct {
	Title        *string           `json:"title" validate:"omitempty,min=1,max=255"`
	Description  *string           `json:"description" validate:"omitempty,max=20000"`
	Requirements *string           `json:"requirements" validate:"omitempty,max=20000"`
	Skills       *[]string         `json:"skills" validate:"omitempty,max=50,dive,required,max=100"`
	Location     *string           `json:"location" validate:"omitempty,max=255"`
	SalaryRange  *string           `json:"salary_range" validate:"omitempty,max=100"`
	JobType      *string           `json:"job_type" validate:"omitempty,oneof=full-time part-time contract internship temporary"`
	Status       *models.JobStatus `json:"status" validate:"omitempty,job_status"`
}

type JobResponse struct {
	ID             string           `json:"id"`
	UserID         string           `json:"user_id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Requirements   string           `json:"requirements"`
	Skills         []string         `json:"skills"`
	Location       string           `json:"location"`
	SalaryRange    string           `json:"salary_range"`
	JobType        string           `json:"job_type"`
	Status         models.JobStatus `json:"status"`
	CandidateCount int64            `json:"candidate_count"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

type JobDescriptionResponse struct {
	Description string `json:"description"`
}

func NewJobResponse(job *models.Job, candidateCount int64) JobResponse {
	skills := []string(job.Skills)
	if skills == nil {
		skills = []string{}
	}
	return JobResponse{
		ID:             job.ID,
		UserID:         job.UserID,
		Title:          job.Title,
		Description:    job.Description,
		Requirements:   job.Requirements,
		Skills:         skills,
		Location:       job.Location,
		SalaryRange:    job.SalaryRange,
		JobType:        job.JobType,
		Status:         job.Status,
		CandidateCount: candidateCount,
		CreatedAt:      job.CreatedAt,
		UpdatedAt:      job.UpdatedAt,
	}
}
