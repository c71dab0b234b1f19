package testutil

import (
	"fmt"
	"testing"

	"hiremind_backend/internal/auth"
	"hiremind_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultPassword - пароль всех пользователей из фикстур
const DefaultPassword = "password123"

// CreateUser создает активного рекрутера на тарифе free
func CreateUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(DefaultPassword)
	require.NoError(t, err)

	user := &models.User{
		Email:            email,
		PasswordHash:     hash,
		FullName:         "Test Recruiter",
		CompanyName:      "Acme",
		Role:             models.UserRoleRecruiter,
		IsActive:         true,
		SubscriptionTier: "free",
	}
	require.NoError(t, db.Create(user).Error, "Создание тестового пользователя не должно вызывать ошибку")
	return user
}

// CreateAdmin создает администратора
func CreateAdmin(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := CreateUser(t, db, email)
	require.NoError(t, db.Model(user).Update("role", models.UserRoleAdmin).Error)
	user.Role = models.UserRoleAdmin
	return user
}

// SetTier меняет тариф пользователя напрямую, минуя вебхуки
func SetTier(t *testing.T, db *gorm.DB, userID, tier string) {
	t.Helper()
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", userID).Update("subscription_tier", tier).Error)
}

// CreateJob создает активную вакансию
func CreateJob(t *testing.T, db *gorm.DB, userID, title string, skills ...string) *models.Job {
	t.Helper()

	job := &models.Job{
		UserID:      userID,
		Title:       title,
		Description: "Description of " + title,
		Skills:      datatypes.JSONSlice[string](skills),
		JobType:     "full-time",
		Status:      models.JobStatusActive,
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

// CreateCandidate создает кандидата с оценкой; score < 0 - без оценки
func CreateCandidate(t *testing.T, db *gorm.DB, jobID, name string, score int) *models.Candidate {
	t.Helper()

	candidate := &models.Candidate{
		JobID:      jobID,
		Name:       name,
		Email:      fmt.Sprintf("%s@example.com", uuid.NewString()[:8]),
		ResumeURL:  fmt.Sprintf("resumes/%s/%s.txt", jobID, uuid.NewString()),
		ResumeText: "Resume of " + name,
		Status:     models.CandidateStatusNew,
	}
	if score >= 0 {
		candidate.AIScore = &score
	}
	require.NoError(t, db.Create(candidate).Error)
	return candidate
}
