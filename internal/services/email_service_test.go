package services

import (
	"errors"
	"strings"
	"testing"

	"hiremind_backend/internal/models"
	"hiremind_backend/internal/services/dto"
	"hiremind_backend/internal/testutil"
	"hiremind_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setCandidateStatus(t *testing.T, env *testEnv, candidateID string, status models.CandidateStatus) {
	t.Helper()
	require.NoError(t, env.db.Model(&models.Candidate{}).Where("id = ?", candidateID).Update("status", status).Error)
}

func TestEmailService_SendUsesStatusTemplate(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, "mail@example.com")
	job := testutil.CreateJob(t, env.db, user.ID, "Go Developer")
	candidate := testutil.CreateCandidate(t, env.db, job.ID, "Ann", 90)
	setCandidateStatus(t, env, candidate.ID, models.CandidateStatusShortlisted)

	log, err := env.services.EmailService.SendToCandidate(env.ctx, env.db, user.ID, candidate.ID, &dto.SendEmailRequest{})
	require.NoError(t, err)

	assert.Equal(t, models.EmailStatusSent, log.Status)
	assert.Nil(t, log.TemplateID)
	assert.Equal(t, "Great News! You've Been Shortlisted - Go Developer", log.Subject)
	assert.Contains(t, log.Body, "Ann")

	sent := env.mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, candidate.Email, sent[0].To)
	assert.Equal(t, log.Subject, sent[0].Subject)
}

func TestEmailService_SendNamedTemplate(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, "named@example.com")
	job := testutil.CreateJob(t, env.db, user.ID, "QA")
	candidate := testutil.CreateCandidate(t, env.db, job.ID, "Bob", -1)

	log, err := env.services.EmailService.SendToCandidate(env.ctx, env.db, user.ID, candidate.ID, &dto.SendEmailRequest{Template: "rejected"})
	require.NoError(t, err)
	assert.Equal(t, "Application Update - QA", log.Subject)

	// новый кандидат по умолчанию получает подтверждение
	log, err = env.services.EmailService.SendToCandidate(env.ctx, env.db, user.ID, candidate.ID, &dto.SendEmailRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Application Received - QA", log.Subject)
}

func TestEmailService_UserTemplatePreferred(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, "own@example.com")
	job := testutil.CreateJob(t, env.db, user.ID, "Designer")
	candidate := testutil.CreateCandidate(t, env.db, job.ID, "Cid", 70)
	svc := env.services.EmailService

	template, err := svc.CreateTemplate(env.ctx, env.db, user.ID, &dto.CreateEmailTemplateRequest{
		Name:         "Our received",
		Subject:      "Thanks, {{.CandidateName}}",
		Body:         "We got your application for {{.JobTitle}}.",
		TemplateType: models.EmailTemplateReceived,
	})
	require.NoError(t, err)

	log, err := svc.SendToCandidate(env.ctx, env.db, user.ID, candidate.ID, &dto.SendEmailRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Thanks, Cid", log.Subject)
	assert.Equal(t, "We got your application for Designer.", log.Body)
	require.NotNil(t, log.TemplateID)
	assert.Equal(t, template.ID, *log.TemplateID)

	// явный template_id
	log, err = svc.SendToCandidate(env.ctx, env.db, user.ID, candidate.ID, &dto.SendEmailRequest{TemplateID: template.ID})
	require.NoError(t, err)
	require.NotNil(t, log.TemplateID)
	assert.Equal(t, template.ID, *log.TemplateID)

	// чужой шаблон не виден
	other := testutil.CreateUser(t, env.db, "other-own@example.com")
	otherJob := testutil.CreateJob(t, env.db, other.ID, "Other")
	otherCandidate := testutil.CreateCandidate(t, env.db, otherJob.ID, "Dan", -1)
	_, err = svc.SendToCandidate(env.ctx, env.db, other.ID, otherCandidate.ID, &dto.SendEmailRequest{TemplateID: template.ID})
	assert.True(t, errors.Is(err, apperrors.ErrTemplateNotFound))
}

func TestEmailService_SendExplicitContent(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, "explicit@example.com")
	job := testutil.CreateJob(t, env.db, user.ID, "Analyst")
	candidate := testutil.CreateCandidate(t, env.db, job.ID, "Eve", -1)
	svc := env.services.EmailService

	log, err := svc.SendToCandidate(env.ctx, env.db, user.ID, candidate.ID, &dto.SendEmailRequest{
		Subject: "Interview for {{.JobTitle}}",
		Body:    "Hi {{.CandidateName}}",
	})
	require.NoError(t, err)
	assert.Equal(t, "Interview for Analyst", log.Subject)
	assert.Equal(t, "Hi Eve", log.Body)

	_, err = svc.SendToCandidate(env.ctx, env.db, user.ID, candidate.ID, &dto.SendEmailRequest{Subject: "Only subject"})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidArgument, appErr.Code)
	assert.Len(t, env.mailer.Sent(), 1)
}

func TestEmailService_ProviderFailureIsLogged(t *testing.T) {
	env := newTestEnv(t)
	env.mailer.Err = errors.New("smtp: connection refused")
	user := testutil.CreateUser(t, env.db, "fail@example.com")
	job := testutil.CreateJob(t, env.db, user.ID, "Ops")
	candidate := testutil.CreateCandidate(t, env.db, job.ID, "Fay", -1)
	svc := env.services.EmailService

	_, err := svc.SendToCandidate(env.ctx, env.db, user.ID, candidate.ID, &dto.SendEmailRequest{})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 502, appErr.HTTPCode)
	details, ok := appErr.Details.(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, details["log_id"])

	logs, err := svc.ListCandidateEmails(env.ctx, env.db, user.ID, candidate.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, details["log_id"], logs[0].ID)
	assert.Equal(t, models.EmailStatusFailed, logs[0].Status)
	assert.True(t, strings.Contains(logs[0].Error, "connection refused"))
}

func TestEmailService_ListCandidateEmailsOwnership(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.CreateUser(t, env.db, "owner-mail@example.com")
	stranger := testutil.CreateUser(t, env.db, "stranger-mail@example.com")
	job := testutil.CreateJob(t, env.db, owner.ID, "Support")
	candidate := testutil.CreateCandidate(t, env.db, job.ID, "Gus", -1)

	_, err := env.services.EmailService.ListCandidateEmails(env.ctx, env.db, stranger.ID, candidate.ID)
	assert.True(t, errors.Is(err, apperrors.ErrCandidateNotFound))

	_, err = env.services.EmailService.SendToCandidate(env.ctx, env.db, stranger.ID, candidate.ID, &dto.SendEmailRequest{})
	assert.True(t, errors.Is(err, apperrors.ErrCandidateNotFound))
	assert.Empty(t, env.mailer.Sent())
}

func TestEmailService_Templates(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, "tpl@example.com")
	stranger := testutil.CreateUser(t, env.db, "tpl-stranger@example.com")
	svc := env.services.EmailService

	_, err := svc.CreateTemplate(env.ctx, env.db, user.ID, &dto.CreateEmailTemplateRequest{
		Name:    "Broken",
		Subject: "Hello",
		Body:    "Hi {{.CandidateName",
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)

	created, err := svc.CreateTemplate(env.ctx, env.db, user.ID, &dto.CreateEmailTemplateRequest{
		Name:    " Follow up ",
		Subject: "Follow up",
		Body:    "Hi {{.CandidateName}}",
	})
	require.NoError(t, err)
	assert.Equal(t, "Follow up", created.Name)
	assert.Equal(t, models.EmailTemplateCustom, created.TemplateType)

	list, err := svc.ListTemplates(env.ctx, env.db, user.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	err = svc.DeleteTemplate(env.ctx, env.db, stranger.ID, created.ID)
	assert.True(t, errors.Is(err, apperrors.ErrTemplateNotFound))

	require.NoError(t, svc.DeleteTemplate(env.ctx, env.db, user.ID, created.ID))
	list, err = svc.ListTemplates(env.ctx, env.db, user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
