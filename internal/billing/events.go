// Package billing переводит события платежного провайдера в изменения подписки.
package billing

import (
	"time"

	"hiremind_backend/internal/models"
	"hiremind_backend/internal/plans"
)

// EventType - тег события после нормализации провайдером
type EventType string

const (
	EventSubscriptionCreated  EventType = "subscription.created"
	EventSubscriptionUpdated  EventType = "subscription.updated"
	EventSubscriptionCanceled EventType = "subscription.canceled"
	EventCheckoutCompleted    EventType = "checkout.completed"
)

// Event - проверенное провайдером событие. Подлинность здесь не перепроверяется.
type Event struct {
	ID             string
	Type           EventType
	UserID         string // из metadata, может быть пустым
	CustomerID     string
	SubscriptionID string
	Plan           string
	Status         models.SubscriptionStatus
	PeriodStart    *time.Time
	PeriodEnd      *time.Time
}

// SubscriptionUpdate - что записать в подписку пользователя.
// Пустой Plan означает "оставить как есть".
type SubscriptionUpdate struct {
	Plan           string
	Status         models.SubscriptionStatus
	SubscriptionID string
	CustomerID     string
	PeriodStart    *time.Time
	PeriodEnd      *time.Time
	// Tier - новое значение users.subscription_tier
	Tier string
}

// Apply сопоставляет событию изменение подписки.
// ok=false для нераспознанных типов: это не ошибка, событие просто игнорируется.
func Apply(e Event) (SubscriptionUpdate, bool) {
	switch e.Type {
	case EventSubscriptionCreated, EventSubscriptionUpdated:
		plan := e.Plan
		if plan == "" {
			plan = plans.Free
		}
		status := e.Status
		if status == "" {
			status = models.SubscriptionStatusActive
		}
		tier := plans.Free
		if status.Entitled() {
			tier = plan
		}
		return SubscriptionUpdate{
			Plan:           plan,
			Status:         status,
			SubscriptionID: e.SubscriptionID,
			CustomerID:     e.CustomerID,
			PeriodStart:    e.PeriodStart,
			PeriodEnd:      e.PeriodEnd,
			Tier:           tier,
		}, true

	case EventSubscriptionCanceled:
		return SubscriptionUpdate{
			Plan:           e.Plan,
			Status:         models.SubscriptionStatusCanceled,
			SubscriptionID: e.SubscriptionID,
			CustomerID:     e.CustomerID,
			PeriodStart:    e.PeriodStart,
			PeriodEnd:      e.PeriodEnd,
			Tier:           plans.Free,
		}, true

	case EventCheckoutCompleted:
		plan := e.Plan
		if plan == "" {
			plan = plans.Free
		}
		return SubscriptionUpdate{
			Plan:           plan,
			Status:         models.SubscriptionStatusActive,
			SubscriptionID: e.SubscriptionID,
			CustomerID:     e.CustomerID,
			Tier:           plan,
		}, true
	}

	return SubscriptionUpdate{}, false
}
