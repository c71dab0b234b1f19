package dto

import (
	"time"

	"hiremind_backend/internal/models"
)

type CreateEmailTemplateRequest struct {
	Name         string                   `json:"name" validate:"required,max=255"`
	Subject      string                   `json:"subject" validate:"required,max=500"`
	Body         string                   `json:"body" validate:"required,max=20000"`
	TemplateType models.EmailTemplateType `json:"template_type" validate:"omitempty,template_type"`
}

type EmailTemplateResponse struct {
	ID           string                   `json:"id"`
	Name         string                   `json:"name"`
	Subject      string                   `json:"subject"`
	Body         string                   `json:"body"`
	TemplateType models.EmailTemplateType `json:"template_type"`
	CreatedAt    time.Time                `json:"created_at"`
}

// SendEmailRequest - письмо кандидату.
// TemplateID - пользовательский шаблон; Template - встроенный (received, shortlisted, rejected);
// Subject+Body - произвольное письмо. Если ничего не задано, шаблон выбирается по статусу кандидата.
type SendEmailRequest struct {
	TemplateID string `json:"template_id" validate:"omitempty,uuid"`
	Template   string `json:"template" validate:"omitempty,oneof=received shortlisted rejected"`
	Subject    string `json:"subject" validate:"max=500"`
	Body       string `json:"body" validate:"max=20000"`
}

type EmailLogResponse struct {
	ID          string             `json:"id"`
	CandidateID string             `json:"candidate_id"`
	TemplateID  *string            `json:"template_id"`
	Subject     string             `json:"subject"`
	Body        string             `json:"body"`
	Status      models.EmailStatus `json:"status"`
	Error       string             `json:"error,omitempty"`
	SentAt      time.Time          `json:"sent_at"`
}

func NewEmailTemplateResponse(t *models.EmailTemplate) EmailTemplateResponse {
	return EmailTemplateResponse{
		ID:           t.ID,
		Name:         t.Name,
		Subject:      t.Subject,
		Body:         t.Body,
		TemplateType: t.TemplateType,
		CreatedAt:    t.CreatedAt,
	}
}

func NewEmailLogResponse(l *models.EmailLog) EmailLogResponse {
	return EmailLogResponse{
		ID:          l.ID,
		CandidateID: l.CandidateID,
		TemplateID:  l.TemplateID,
		Subject:     l.Subject,
		Body:        l.Body,
		Status:      l.Status,
		Error:       l.Error,
		SentAt:      l.SentAt,
	}
}
