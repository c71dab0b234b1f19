package repositories

import (
	"testing"
	"time"

	"hiremind_backend/internal/models"
	"hiremind_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobRepository_FindOwned(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewJobRepository()

	owner := testutil.CreateUser(t, db, "owner@example.com")
	other := testutil.CreateUser(t, db, "other@example.com")
	job := testutil.CreateJob(t, db, owner.ID, "Go Developer", "Go")

	found, err := repo.FindOwned(db, job.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go Developer", found.Title)
	assert.Equal(t, []string{"Go"}, []string(found.Skills))

	// чужая вакансия неотличима от несуществующей
	_, err = repo.FindOwned(db, job.ID, other.ID)
	assert.ErrorIs(t, err, ErrJobNotFound)

	_, err = repo.FindOwned(db, "missing", owner.ID)
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestJobRepository_ListWithCounts(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewJobRepository()

	user := testutil.CreateUser(t, db, "lister@example.com")
	first := testutil.CreateJob(t, db, user.ID, "First")
	time.Sleep(5 * time.Millisecond)
	second := testutil.CreateJob(t, db, user.ID, "Second")
	require.NoError(t, db.Model(second).Update("status", models.JobStatusClosed).Error)

	testutil.CreateCandidate(t, db, first.ID, "Ann", 80)
	testutil.CreateCandidate(t, db, first.ID, "Bob", -1)

	jobs, err := repo.ListWithCounts(db, user.ID, "")
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	// новые первыми
	assert.Equal(t, second.ID, jobs[0].ID)
	assert.Equal(t, int64(0), jobs[0].CandidateCount)
	assert.Equal(t, first.ID, jobs[1].ID)
	assert.Equal(t, int64(2), jobs[1].CandidateCount)

	active, err := repo.ListWithCounts(db, user.ID, models.JobStatusActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, first.ID, active[0].ID)

	none, err := repo.ListWithCounts(db, "nobody", "")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestJobRepository_DeleteCascades(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewJobRepository()
	emailRepo := NewEmailRepository()

	user := testutil.CreateUser(t, db, "cascade@example.com")
	job := testutil.CreateJob(t, db, user.ID, "To delete")
	keep := testutil.CreateJob(t, db, user.ID, "To keep")
	c1 := testutil.CreateCandidate(t, db, job.ID, "Ann", 70)
	testutil.CreateCandidate(t, db, job.ID, "Bob", 60)
	kept := testutil.CreateCandidate(t, db, keep.ID, "Eve", 90)

	require.NoError(t, emailRepo.CreateLog(db, &models.EmailLog{
		CandidateID: c1.ID,
		Subject:     "Hi",
		Body:        "Body",
		Status:      models.EmailStatusSent,
		SentAt:      time.Now(),
	}))

	keys, err := repo.Delete(db, job.ID)
	require.NoError(t, err)
	assert.Len(t, keys, 2)

	var candidates, logs int64
	require.NoError(t, db.Model(&models.Candidate{}).Count(&candidates).Error)
	require.NoError(t, db.Model(&models.EmailLog{}).Count(&logs).Error)
	assert.Equal(t, int64(1), candidates)
	assert.Equal(t, int64(0), logs)

	_, err = NewCandidateRepository().FindOwned(db, kept.ID, user.ID)
	assert.NoError(t, err)

	_, err = repo.Delete(db, job.ID)
	assert.ErrorIs(t, err, ErrJobNotFound)
}
