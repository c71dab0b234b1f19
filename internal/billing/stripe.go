package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hiremind_backend/internal/models"
	"hiremind_backend/internal/plans"
	"hiremind_backend/pkg/apperrors"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// StripeProcessor реализует Processor поверх Stripe API
type StripeProcessor struct {
	api           *client.API
	webhookSecret string
	catalog       *plans.Catalog
}

func NewStripeProcessor(secretKey, webhookSecret string, catalog *plans.Catalog) *StripeProcessor {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProcessor{api: api, webhookSecret: webhookSecret, catalog: catalog}
}

func (p *StripeProcessor) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*Session, error) {
	metadata := map[string]string{
		"user_id": req.UserID,
		"plan":    req.Plan,
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		ClientReferenceID: stripe.String(req.UserID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Price:    stripe.String(req.PriceID),
			Quantity: stripe.Int64(1),
		}},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: metadata,
		},
	}
	if req.CustomerID != "" {
		params.Customer = stripe.String(req.CustomerID)
	} else {
		params.CustomerEmail = stripe.String(req.Email)
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
	params.Context = ctx

	s, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return &Session{ID: s.ID, URL: s.URL}, nil
}

func (p *StripeProcessor) CreatePortalSession(ctx context.Context, customerID, returnURL string) (*Session, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx

	s, err := p.api.BillingPortalSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create portal session: %w", err)
	}
	return &Session{ID: s.ID, URL: s.URL}, nil
}

func (p *StripeProcessor) ParseWebhook(payload []byte, signature string) (Event, error) {
	raw, err := webhook.ConstructEventWithOptions(payload, signature, p.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return Event{}, apperrors.ErrInvalidSignature.WithError(err)
	}
	return normalizeStripeEvent(raw, p.catalog)
}

// normalizeStripeEvent переводит событие Stripe в Event.
// Незнакомые типы возвращаются с исходным тегом, Apply их проигнорирует.
func normalizeStripeEvent(raw stripe.Event, catalog *plans.Catalog) (Event, error) {
	e := Event{ID: raw.ID, Type: EventType(raw.Type)}

	switch raw.Type {
	case "customer.subscription.created", "customer.subscription.updated", "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(raw.Data.Raw, &sub); err != nil {
			return Event{}, apperrors.NewBadRequestError("malformed subscription payload").WithError(err)
		}

		switch raw.Type {
		case "customer.subscription.created":
			e.Type = EventSubscriptionCreated
		case "customer.subscription.updated":
			e.Type = EventSubscriptionUpdated
		default:
			e.Type = EventSubscriptionCanceled
		}

		e.SubscriptionID = sub.ID
		e.Status = models.SubscriptionStatus(sub.Status)
		e.UserID = sub.Metadata["user_id"]
		e.Plan = subscriptionPlan(&sub, catalog)
		if sub.Customer != nil {
			e.CustomerID = sub.Customer.ID
		}
		e.PeriodStart = unixTime(sub.CurrentPeriodStart)
		e.PeriodEnd = unixTime(sub.CurrentPeriodEnd)

	case "checkout.session.completed":
		var cs stripe.CheckoutSession
		if err := json.Unmarshal(raw.Data.Raw, &cs); err != nil {
			return Event{}, apperrors.NewBadRequestError("malformed checkout payload").WithError(err)
		}

		e.Type = EventCheckoutCompleted
		e.UserID = cs.Metadata["user_id"]
		if e.UserID == "" {
			e.UserID = cs.ClientReferenceID
		}
		e.Plan = cs.Metadata["plan"]
		if cs.Customer != nil {
			e.CustomerID = cs.Customer.ID
		}
		if cs.Subscription != nil {
			e.SubscriptionID = cs.Subscription.ID
		}
	}

	return e, nil
}

// subscriptionPlan: metadata.plan, затем price id первой позиции
func subscriptionPlan(sub *stripe.Subscription, catalog *plans.Catalog) string {
	if plan := sub.Metadata["plan"]; plan != "" && catalog.Exists(plan) {
		return plan
	}
	if sub.Items != nil {
		for _, item := range sub.Items.Data {
			if item == nil || item.Price == nil {
				continue
			}
			if plan, ok := catalog.PlanByPriceID(item.Price.ID); ok {
				return plan
			}
		}
	}
	return ""
}

func unixTime(sec int64) *time.Time {
	if sec <= 0 {
		return nil
	}
	t := time.Unix(sec, 0).UTC()
	return &t
}
