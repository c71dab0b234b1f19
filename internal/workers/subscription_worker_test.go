package workers

import (
	"context"
	"testing"
	"time"

	"hiremind_backend/internal/models"
	"hiremind_backend/internal/plans"
	"hiremind_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createSubscription(t *testing.T, db *gorm.DB, userID, plan string, status models.SubscriptionStatus) {
	t.Helper()
	require.NoError(t, db.Create(&models.Subscription{UserID: userID, Plan: plan, Status: status}).Error)
}

func tierOf(t *testing.T, db *gorm.DB, userID string) string {
	t.Helper()
	var user models.User
	require.NoError(t, db.Select("subscription_tier").First(&user, "id = ?", userID).Error)
	return user.SubscriptionTier
}

func TestSubscriptionWorker_Reconcile(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	drifted := testutil.CreateUser(t, db, "drifted@example.com")
	createSubscription(t, db, drifted.ID, plans.Pro, models.SubscriptionStatusActive)

	canceled := testutil.CreateUser(t, db, "canceled@example.com")
	testutil.SetTier(t, db, canceled.ID, plans.Business)
	createSubscription(t, db, canceled.ID, plans.Business, models.SubscriptionStatusCanceled)

	pastDue := testutil.CreateUser(t, db, "pastdue@example.com")
	testutil.SetTier(t, db, pastDue.ID, plans.Pro)
	createSubscription(t, db, pastDue.ID, plans.Pro, models.SubscriptionStatusPastDue)

	// без подписки тариф не трогаем
	manual := testutil.CreateUser(t, db, "manual@example.com")
	testutil.SetTier(t, db, manual.ID, plans.Pro)

	worker := NewSubscriptionWorker(db, time.Hour)
	fixed, err := worker.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), fixed)

	assert.Equal(t, plans.Pro, tierOf(t, db, drifted.ID))
	assert.Equal(t, plans.Free, tierOf(t, db, canceled.ID))
	assert.Equal(t, plans.Pro, tierOf(t, db, pastDue.ID))
	assert.Equal(t, plans.Pro, tierOf(t, db, manual.ID))

	fixed, err = worker.Reconcile(ctx)
	require.NoError(t, err)
	assert.Zero(t, fixed)
}

func TestSubscriptionWorker_StartStops(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "ticker@example.com")
	createSubscription(t, db, user.ID, plans.Business, models.SubscriptionStatusTrialing)

	ctx, cancel := context.WithCancel(context.Background())
	NewSubscriptionWorker(db, 10*time.Millisecond).Start(ctx)

	assert.Eventually(t, func() bool {
		var current models.User
		if err := db.Select("subscription_tier").First(&current, "id = ?", user.ID).Error; err != nil {
			return false
		}
		return current.SubscriptionTier == plans.Business
	}, time.Second, 20*time.Millisecond)
	cancel()

	// выключенный воркер не запускается
	NewSubscriptionWorker(db, 0).Start(context.Background())
}
