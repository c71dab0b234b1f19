package dto

import (
	"time"

	"hiremind_backend/internal/models"
	"hiremind_backend/internal/plans"
)

type CheckoutRequest struct {
	Plan       string `json:"plan" validate:"required"`
	SuccessURL string `json:"success_url" validate:"required,url"`
	CancelURL  string `json:"cancel_url" validate:"required,url"`
}

type PortalRequest struct {
	ReturnURL string `json:"return_url" validate:"omitempty,url"`
}

type SessionResponse struct {
	SessionID string `json:"session_id,omitempty"`
	URL       string `json:"url"`
}

type PlansResponse struct {
	Plans []plans.Limits `json:"plans"`
}

// UsageResponse - использование лимитов текущего тарифа
type UsageResponse struct {
	Jobs         int64 `json:"jobs"`
	JobsLimit    int   `json:"jobs_limit"`
	Resumes      int64 `json:"resumes"`
	ResumesLimit int   `json:"resumes_limit"`
}

type SubscriptionResponse struct {
	Tier               string                    `json:"tier"`
	Plan               string                    `json:"plan"`
	Status             models.SubscriptionStatus `json:"status,omitempty"`
	CurrentPeriodStart *time.Time                `json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *time.Time                `json:"current_period_end,omitempty"`
	Limits             plans.Limits              `json:"limits"`
	Usage              UsageResponse             `json:"usage"`
}

type WebhookResponse struct {
	Received bool   `json:"received"`
	Handled  bool   `json:"handled"`
	Type     string `json:"type,omitempty"`
}

type DashboardStats struct {
	TotalJobs       int64   `json:"total_jobs"`
	ActiveJobs      int64   `json:"active_jobs"`
	TotalCandidates int64   `json:"total_candidates"`
	Shortlisted     int64   `json:"shortlisted"`
	AvgScore        float64 `json:"avg_score"`
}
