package services

import (
	"errors"
	"testing"
	"time"

	"hiremind_backend/internal/billing"
	"hiremind_backend/internal/models"
	"hiremind_backend/internal/plans"
	"hiremind_backend/internal/repositories"
	"hiremind_backend/internal/services/dto"
	"hiremind_backend/internal/testutil"
	"hiremind_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutRequest(plan string) *dto.CheckoutRequest {
	return &dto.CheckoutRequest{
		Plan:       plan,
		SuccessURL: "https://app.example.com/success",
		CancelURL:  "https://app.example.com/cancel",
	}
}

func TestSubscriptionService_CheckoutRejectsFreePlan(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, "free@example.com")

	for _, plan := range []string{plans.Free, "platinum"} {
		_, err := env.services.SubscriptionService.CreateCheckout(env.ctx, env.db, user.ID, checkoutRequest(plan))
		assert.ErrorIs(t, err, apperrors.ErrInvalidPlan, plan)
	}
	assert.Zero(t, env.processor.CheckoutCount(), "Stripe не должен вызываться для бесплатного тарифа")
}

func TestSubscriptionService_CheckoutPaidPlan(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, "buyer@example.com")

	session, err := env.services.SubscriptionService.CreateCheckout(env.ctx, env.db, user.ID, checkoutRequest(plans.Pro))
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", session.SessionID)
	assert.NotEmpty(t, session.URL)

	require.Len(t, env.processor.Checkouts, 1)
	req := env.processor.Checkouts[0]
	assert.Equal(t, user.ID, req.UserID)
	assert.Equal(t, "price_pro", req.PriceID)
	assert.Equal(t, plans.Pro, req.Plan)
	assert.Equal(t, "buyer@example.com", req.Email)
}

func TestSubscriptionService_BillingDisabled(t *testing.T) {
	env := newTestEnv(t, withoutBilling())
	user := testutil.CreateUser(t, env.db, "nobilling@example.com")
	svc := env.services.SubscriptionService

	_, err := svc.CreateCheckout(env.ctx, env.db, user.ID, checkoutRequest(plans.Business))
	assert.ErrorIs(t, err, apperrors.ErrBillingDisabled)

	_, err = svc.HandleWebhook(env.ctx, env.db, []byte(`{}`), "sig")
	assert.ErrorIs(t, err, apperrors.ErrBillingDisabled)

	// каталог доступен без Stripe
	assert.Len(t, svc.ListPlans().Plans, 3)
}

func TestSubscriptionService_PortalRequiresCustomer(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, "portal@example.com")
	svc := env.services.SubscriptionService

	_, err := svc.CreatePortal(env.ctx, env.db, user.ID, "")
	assert.ErrorIs(t, err, apperrors.ErrNoBillingAccount)

	require.NoError(t, repositories.NewUserRepository().UpdateBilling(env.db, user.ID, "", "cus_42"))
	session, err := svc.CreatePortal(env.ctx, env.db, user.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "https://app.example.com/billing", session.URL)
	assert.Equal(t, []string{"cus_42"}, env.processor.Portals)
}

func TestSubscriptionService_WebhookLifecycle(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, "lifecycle@example.com")
	svc := env.services.SubscriptionService

	// 1. Оплата прошла: клиент Stripe привязывается к пользователю
	env.processor.Event = billing.Event{
		ID:             "evt_1",
		Type:           billing.EventCheckoutCompleted,
		UserID:         user.ID,
		CustomerID:     "cus_1",
		SubscriptionID: "sub_1",
		Plan:           plans.Pro,
	}
	resp, err := svc.HandleWebhook(env.ctx, env.db, []byte(`{}`), "sig")
	require.NoError(t, err)
	assert.True(t, resp.Received)
	assert.True(t, resp.Handled)

	state, err := svc.GetSubscription(env.ctx, env.db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, plans.Pro, state.Tier)
	assert.Equal(t, models.SubscriptionStatusActive, state.Status)
	assert.Equal(t, 5, state.Usage.JobsLimit)

	// 2. Продление без user_id в metadata: пользователь находится по customer id
	end := time.Now().Add(30 * 24 * time.Hour).UTC().Truncate(time.Second)
	env.processor.Event = billing.Event{
		ID:             "evt_2",
		Type:           billing.EventSubscriptionUpdated,
		CustomerID:     "cus_1",
		SubscriptionID: "sub_1",
		Plan:           plans.Business,
		Status:         models.SubscriptionStatusActive,
		PeriodEnd:      &end,
	}
	_, err = svc.HandleWebhook(env.ctx, env.db, []byte(`{}`), "sig")
	require.NoError(t, err)

	state, err = svc.GetSubscription(env.ctx, env.db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, plans.Business, state.Tier)
	require.NotNil(t, state.CurrentPeriodEnd)
	assert.True(t, end.Equal(*state.CurrentPeriodEnd))

	// 3. Отмена: тариф сохраняется в подписке, доступ падает до free
	env.processor.Event = billing.Event{
		ID:             "evt_3",
		Type:           billing.EventSubscriptionCanceled,
		SubscriptionID: "sub_1",
	}
	_, err = svc.HandleWebhook(env.ctx, env.db, []byte(`{}`), "sig")
	require.NoError(t, err)

	state, err = svc.GetSubscription(env.ctx, env.db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, plans.Free, state.Tier)
	assert.Equal(t, plans.Business, state.Plan)
	assert.Equal(t, models.SubscriptionStatusCanceled, state.Status)

	var count int64
	require.NoError(t, env.db.Model(&models.Subscription{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSubscriptionService_WebhookPastDueKeepsAccess(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, "pastdue@example.com")

	handled, err := env.services.SubscriptionService.ApplyEvent(env.ctx, env.db, billing.Event{
		Type:   billing.EventSubscriptionUpdated,
		UserID: user.ID,
		Plan:   plans.Pro,
		Status: models.SubscriptionStatusPastDue,
	})
	require.NoError(t, err)
	assert.True(t, handled)

	found, err := repositories.NewUserRepository().FindByID(env.db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, plans.Pro, found.SubscriptionTier)

	handled, err = env.services.SubscriptionService.ApplyEvent(env.ctx, env.db, billing.Event{
		Type:   billing.EventSubscriptionUpdated,
		UserID: user.ID,
		Plan:   plans.Pro,
		Status: models.SubscriptionStatusUnpaid,
	})
	require.NoError(t, err)
	assert.True(t, handled)

	found, err = repositories.NewUserRepository().FindByID(env.db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, plans.Free, found.SubscriptionTier)
}

func TestSubscriptionService_WebhookIgnoredEvents(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, "ignored@example.com")
	svc := env.services.SubscriptionService

	// неизвестный тип
	env.processor.Event = billing.Event{ID: "evt_x", Type: "invoice.paid", UserID: user.ID}
	resp, err := svc.HandleWebhook(env.ctx, env.db, []byte(`{}`), "sig")
	require.NoError(t, err)
	assert.False(t, resp.Handled)

	// неизвестный пользователь
	env.processor.Event = billing.Event{ID: "evt_y", Type: billing.EventSubscriptionUpdated, CustomerID: "cus_unknown", Plan: plans.Pro}
	resp, err = svc.HandleWebhook(env.ctx, env.db, []byte(`{}`), "sig")
	require.NoError(t, err)
	assert.False(t, resp.Handled)

	found, err := repositories.NewUserRepository().FindByID(env.db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, plans.Free, found.SubscriptionTier)
	assert.Nil(t, found.Subscription)
}

func TestSubscriptionService_WebhookBadSignature(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.SubscriptionService

	env.processor.ParseErr = apperrors.ErrInvalidSignature
	_, err := svc.HandleWebhook(env.ctx, env.db, []byte(`{}`), "bad")
	assert.ErrorIs(t, err, apperrors.ErrInvalidSignature)

	env.processor.ParseErr = errors.New("unexpected end of JSON input")
	_, err = svc.HandleWebhook(env.ctx, env.db, []byte(`{`), "sig")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestSubscriptionService_UsageCounts(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, "usage@example.com")
	job := testutil.CreateJob(t, env.db, user.ID, "Job")
	testutil.CreateCandidate(t, env.db, job.ID, "A", 10)
	testutil.CreateCandidate(t, env.db, job.ID, "B", 20)

	state, err := env.services.SubscriptionService.GetSubscription(env.ctx, env.db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, plans.Free, state.Tier)
	assert.Equal(t, int64(1), state.Usage.Jobs)
	assert.Equal(t, int64(2), state.Usage.Resumes)
	assert.Equal(t, 50, state.Usage.ResumesLimit)
	assert.Empty(t, state.Status)
}
