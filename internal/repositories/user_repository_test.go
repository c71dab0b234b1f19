package repositories

import (
	"testing"
	"time"

	"hiremind_backend/internal/models"
	"hiremind_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateNormalizesEmail(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository()

	user := &models.User{Email: "  Mixed@Example.COM ", PasswordHash: "hash", Role: models.UserRoleRecruiter, IsActive: true, SubscriptionTier: "free"}
	require.NoError(t, repo.Create(db, user))
	assert.Equal(t, "mixed@example.com", user.Email)

	found, err := repo.FindByEmail(db, "MIXED@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	dup := &models.User{Email: "mixed@example.com", PasswordHash: "hash", Role: models.UserRoleRecruiter, SubscriptionTier: "free"}
	assert.ErrorIs(t, repo.Create(db, dup), ErrUserAlreadyExists)
}

func TestUserRepository_UpdateBilling(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository()
	user := testutil.CreateUser(t, db, "billing@example.com")

	require.NoError(t, repo.UpdateBilling(db, user.ID, "pro", "cus_123"))
	found, err := repo.FindByStripeCustomerID(db, "cus_123")
	require.NoError(t, err)
	assert.Equal(t, "pro", found.SubscriptionTier)

	// пустой customer id не затирает сохраненный
	require.NoError(t, repo.UpdateBilling(db, user.ID, "free", ""))
	found, err = repo.FindByID(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "free", found.SubscriptionTier)
	assert.Equal(t, "cus_123", found.StripeCustomerID)

	assert.ErrorIs(t, repo.UpdateBilling(db, "missing", "pro", ""), ErrUserNotFound)
}

func TestUserRepository_DeleteRemovesEverything(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository()

	user := testutil.CreateUser(t, db, "leaver@example.com")
	other := testutil.CreateUser(t, db, "stayer@example.com")
	job := testutil.CreateJob(t, db, user.ID, "Job")
	otherJob := testutil.CreateJob(t, db, other.ID, "Other job")
	candidate := testutil.CreateCandidate(t, db, job.ID, "Ann", 50)
	testutil.CreateCandidate(t, db, otherJob.ID, "Eve", 50)

	emailRepo := NewEmailRepository()
	require.NoError(t, emailRepo.CreateTemplate(db, &models.EmailTemplate{
		UserID: user.ID, Name: "T", Subject: "S", Body: "B", TemplateType: models.EmailTemplateCustom,
	}))
	require.NoError(t, emailRepo.CreateLog(db, &models.EmailLog{
		CandidateID: candidate.ID, Subject: "S", Body: "B", Status: models.EmailStatusSent, SentAt: time.Now(),
	}))
	require.NoError(t, NewSubscriptionRepository().Upsert(db, &models.Subscription{
		UserID: user.ID, Plan: "pro", Status: models.SubscriptionStatusActive,
	}))

	keys, err := repo.Delete(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{candidate.ResumeURL}, keys)

	for _, model := range []interface{}{&models.Job{}, &models.Candidate{}, &models.EmailTemplate{}, &models.EmailLog{}, &models.Subscription{}, &models.User{}} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		switch model.(type) {
		case *models.Job, *models.Candidate, *models.User:
			assert.Equal(t, int64(1), count, "%T другого пользователя должен остаться", model)
		default:
			assert.Equal(t, int64(0), count, "%T должен быть удален", model)
		}
	}

	_, err = repo.Delete(db, user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_FindAll(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository()
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		testutil.CreateUser(t, db, email)
	}

	users, total, err := repo.FindAll(db, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, users, 2)

	users, _, err = repo.FindAll(db, 2, 2)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
