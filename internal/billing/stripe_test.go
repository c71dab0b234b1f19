package billing

import (
	"fmt"
	"testing"
	"time"

	"hiremind_backend/internal/models"
	"hiremind_backend/internal/plans"
	"hiremind_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76/webhook"
)

const testWebhookSecret = "whsec_test_secret"

func signedPayload(t *testing.T, payload string) (string, []byte) {
	t.Helper()
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    testWebhookSecret,
		Timestamp: time.Now(),
	})
	return signed.Header, signed.Payload
}

func newTestProcessor() *StripeProcessor {
	return NewStripeProcessor("sk_test_dummy", testWebhookSecret, plans.NewCatalog("price_pro", "price_biz"))
}

func TestParseWebhook_SubscriptionUpdated(t *testing.T) {
	payload := fmt.Sprintf(`{
		"id": "evt_1",
		"object": "event",
		"type": "customer.subscription.updated",
		"data": {"object": {
			"id": "sub_123",
			"object": "subscription",
			"status": "active",
			"customer": "cus_42",
			"current_period_start": %d,
			"current_period_end": %d,
			"metadata": {"user_id": "user-1"},
			"items": {"object": "list", "data": [{"id": "si_1", "object": "subscription_item", "price": {"id": "price_biz", "object": "price"}}]}
		}}
	}`, 1714521600, 1717200000)

	header, body := signedPayload(t, payload)
	e, err := newTestProcessor().ParseWebhook(body, header)
	require.NoError(t, err)

	assert.Equal(t, EventSubscriptionUpdated, e.Type)
	assert.Equal(t, "sub_123", e.SubscriptionID)
	assert.Equal(t, "cus_42", e.CustomerID)
	assert.Equal(t, "user-1", e.UserID)
	assert.Equal(t, plans.Business, e.Plan)
	assert.Equal(t, models.SubscriptionStatusActive, e.Status)
	require.NotNil(t, e.PeriodStart)
	assert.Equal(t, int64(1714521600), e.PeriodStart.Unix())
	require.NotNil(t, e.PeriodEnd)
	assert.Equal(t, int64(1717200000), e.PeriodEnd.Unix())
}

func TestParseWebhook_SubscriptionDeleted(t *testing.T) {
	payload := `{"id": "evt_2", "object": "event", "type": "customer.subscription.deleted",
		"data": {"object": {"id": "sub_9", "object": "subscription", "status": "canceled", "metadata": {"plan": "pro"}}}}`

	header, body := signedPayload(t, payload)
	e, err := newTestProcessor().ParseWebhook(body, header)
	require.NoError(t, err)
	assert.Equal(t, EventSubscriptionCanceled, e.Type)
	assert.Equal(t, plans.Pro, e.Plan)
}

func TestParseWebhook_CheckoutCompleted(t *testing.T) {
	payload := `{"id": "evt_3", "object": "event", "type": "checkout.session.completed",
		"data": {"object": {"id": "cs_1", "object": "checkout.session", "customer": "cus_7", "subscription": "sub_7",
		"client_reference_id": "user-7", "metadata": {"plan": "pro"}}}}`

	header, body := signedPayload(t, payload)
	e, err := newTestProcessor().ParseWebhook(body, header)
	require.NoError(t, err)
	assert.Equal(t, EventCheckoutCompleted, e.Type)
	assert.Equal(t, "user-7", e.UserID)
	assert.Equal(t, "cus_7", e.CustomerID)
	assert.Equal(t, "sub_7", e.SubscriptionID)
	assert.Equal(t, plans.Pro, e.Plan)
}

func TestParseWebhook_UnknownTypePassesThrough(t *testing.T) {
	payload := `{"id": "evt_4", "object": "event", "type": "invoice.paid", "data": {"object": {"id": "in_1"}}}`

	header, body := signedPayload(t, payload)
	e, err := newTestProcessor().ParseWebhook(body, header)
	require.NoError(t, err)

	_, ok := Apply(e)
	assert.False(t, ok)
}

func TestParseWebhook_InvalidSignature(t *testing.T) {
	payload := `{"id": "evt_5", "object": "event", "type": "customer.subscription.updated", "data": {"object": {}}}`

	_, err := newTestProcessor().ParseWebhook([]byte(payload), "t=1,v1=deadbeef")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidSignature)
}
