package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"hiremind_backend/internal/email"
	"hiremind_backend/internal/logger"
	"hiremind_backend/internal/models"
	"hiremind_backend/internal/repositories"
	"hiremind_backend/internal/services/dto"
	"hiremind_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type EmailService interface {
	ListTemplates(ctx context.Context, db *gorm.DB, userID string) ([]dto.EmailTemplateResponse, error)
	CreateTemplate(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateEmailTemplateRequest) (*dto.EmailTemplateResponse, error)
	DeleteTemplate(ctx context.Context, db *gorm.DB, userID, templateID string) error

	// SendToCandidate отправляет письмо и записывает EmailLog (sent или failed)
	SendToCandidate(ctx context.Context, db *gorm.DB, userID, candidateID string, req *dto.SendEmailRequest) (*dto.EmailLogResponse, error)
	ListCandidateEmails(ctx context.Context, db *gorm.DB, userID, candidateID string) ([]dto.EmailLogResponse, error)
}

type emailService struct {
	emailRepo     repositories.EmailRepository
	candidateRepo repositories.CandidateRepository
	jobRepo       repositories.JobRepository
	userRepo      repositories.UserRepository
	templates     *email.TemplateManager
	provider      email.Provider
}

func NewEmailService(
	emailRepo repositories.EmailRepository,
	candidateRepo repositories.CandidateRepository,
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	templates *email.TemplateManager,
	provider email.Provider,
) EmailService {
	return &emailService{
		emailRepo:     emailRepo,
		candidateRepo: candidateRepo,
		jobRepo:       jobRepo,
		userRepo:      userRepo,
		templates:     templates,
		provider:      provider,
	}
}

func (s *emailService) ListTemplates(ctx context.Context, db *gorm.DB, userID string) ([]dto.EmailTemplateResponse, error) {
	templates, err := s.emailRepo.ListTemplates(db, userID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	out := make([]dto.EmailTemplateResponse, len(templates))
	for i := range templates {
		out[i] = dto.NewEmailTemplateResponse(&templates[i])
	}
	return out, nil
}

func (s *emailService) CreateTemplate(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateEmailTemplateRequest) (*dto.EmailTemplateResponse, error) {
	if err := email.ValidateTemplate(req.Subject, req.Body); err != nil {
		return nil, apperrors.ValidationError(map[string]string{"body": err.Error()})
	}

	templateType := req.TemplateType
	if templateType == "" {
		templateType = models.EmailTemplateCustom
	}

	template := &models.EmailTemplate{
		UserID:       userID,
		Name:         strings.TrimSpace(req.Name),
		Subject:      req.Subject,
		Body:         req.Body,
		TemplateType: templateType,
	}
	if err := s.emailRepo.CreateTemplate(db, template); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	resp := dto.NewEmailTemplateResponse(template)
	return &resp, nil
}

func (s *emailService) DeleteTemplate(ctx context.Context, db *gorm.DB, userID, templateID string) error {
	return mapRepoError(s.emailRepo.DeleteTemplate(db, templateID, userID))
}

func (s *emailService) SendToCandidate(ctx context.Context, db *gorm.DB, userID, candidateID string, req *dto.SendEmailRequest) (*dto.EmailLogResponse, error) {
	if (req.Subject == "") != (req.Body == "") {
		return nil, apperrors.InvalidArgument("email", "Subject and body must be provided together")
	}

	candidate, err := s.candidateRepo.FindOwned(db, candidateID, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	job, err := s.jobRepo.FindOwned(db, candidate.JobID, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	data := email.TemplateData{
		CandidateName: candidate.Name,
		JobTitle:      job.Title,
		CompanyName:   user.CompanyName,
		Status:        string(candidate.Status),
	}

	subject, body, templateID, err := s.render(db, userID, req, candidate.Status, data)
	if err != nil {
		return nil, err
	}

	log := &models.EmailLog{
		CandidateID: candidateID,
		TemplateID:  templateID,
		Subject:     subject,
		Body:        body,
		Status:      models.EmailStatusSent,
		SentAt:      time.Now().UTC(),
	}

	sendErr := s.provider.Send(ctx, &email.Message{To: candidate.Email, Subject: subject, Body: body})
	if sendErr != nil {
		log.Status = models.EmailStatusFailed
		log.Error = sendErr.Error()
		logger.CtxWithError(ctx, "failed to send candidate email", sendErr, "candidate_id", candidateID)
	}

	if err := s.emailRepo.CreateLog(db, log); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if sendErr != nil {
		return nil, apperrors.ExternalServiceError(sendErr, "email").WithDetails(map[string]interface{}{"log_id": log.ID})
	}

	resp := dto.NewEmailLogResponse(log)
	return &resp, nil
}

// render выбирает шаблон: template_id, затем явные subject/body,
// затем тип шаблона (по имени или статусу кандидата). Пользовательский
// шаблон нужного типа важнее встроенного.
func (s *emailService) render(db *gorm.DB, userID string, req *dto.SendEmailRequest, status models.CandidateStatus, data email.TemplateData) (string, string, *string, error) {
	if req.TemplateID != "" {
		template, err := s.emailRepo.FindTemplate(db, req.TemplateID, userID)
		if err != nil {
			return "", "", nil, mapRepoError(err)
		}
		subject, body, err := email.RenderCustom(template.Subject, template.Body, data)
		if err != nil {
			return "", "", nil, apperrors.InvalidArgument("email", "Template could not be rendered: "+err.Error())
		}
		return subject, body, &template.ID, nil
	}

	if req.Subject != "" {
		subject, body, err := email.RenderCustom(req.Subject, req.Body, data)
		if err != nil {
			return "", "", nil, apperrors.InvalidArgument("email", "Email could not be rendered: "+err.Error())
		}
		return subject, body, nil, nil
	}

	templateType := models.EmailTemplateType(req.Template)
	if templateType == "" {
		templateType = templateTypeForStatus(status)
	}

	template, err := s.emailRepo.FindTemplateByType(db, userID, templateType)
	switch {
	case err == nil:
		subject, body, renderErr := email.RenderCustom(template.Subject, template.Body, data)
		if renderErr == nil {
			return subject, body, &template.ID, nil
		}
		logger.Warn("user email template failed to render, using built-in", "template_id", template.ID, "error", renderErr)
	case !errors.Is(err, repositories.ErrTemplateNotFound):
		return "", "", nil, apperrors.DatabaseError(err)
	}

	subject, body, err := s.templates.Render(string(templateType), data)
	if err != nil {
		return "", "", nil, apperrors.InternalError(err)
	}
	return subject, body, nil, nil
}

func (s *emailService) ListCandidateEmails(ctx context.Context, db *gorm.DB, userID, candidateID string) ([]dto.EmailLogResponse, error) {
	if _, err := s.candidateRepo.FindOwned(db, candidateID, userID); err != nil {
		return nil, mapRepoError(err)
	}

	logs, err := s.emailRepo.ListLogs(db, candidateID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	out := make([]dto.EmailLogResponse, len(logs))
	for i := range logs {
		out[i] = dto.NewEmailLogResponse(&logs[i])
	}
	return out, nil
}

func templateTypeForStatus(status models.CandidateStatus) models.EmailTemplateType {
	switch status {
	case models.CandidateStatusShortlisted:
		return models.EmailTemplateShortlisted
	case models.CandidateStatusRejected:
		return models.EmailTemplateRejected
	}
	return models.EmailTemplateReceived
}
