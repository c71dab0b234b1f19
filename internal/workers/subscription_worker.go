package workers

import (
	"context"
	"time"

	"hiremind_backend/internal/logger"
	"hiremind_backend/internal/models"
	"hiremind_backend/internal/plans"

	"gorm.io/gorm"
)

// SubscriptionWorker сверяет users.subscription_tier с подписками.
// Тариф меняют только вебхуки, воркер лишь выравнивает денормализованную колонку.
type SubscriptionWorker struct {
	db       *gorm.DB
	interval time.Duration
}

func NewSubscriptionWorker(db *gorm.DB, interval time.Duration) *SubscriptionWorker {
	return &SubscriptionWorker{db: db, interval: interval}
}

// Start запускает сверку в фоне до отмены ctx; interval <= 0 - воркер выключен
func (w *SubscriptionWorker) Start(ctx context.Context) {
	if w.interval <= 0 {
		logger.Info("Subscription worker disabled")
		return
	}
	go w.run(ctx)
}

func (w *SubscriptionWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Subscription worker stopped")
			return
		case <-ticker.C:
			fixed, err := w.Reconcile(ctx)
			if err != nil {
				logger.CtxWithError(ctx, "subscription reconcile failed", err)
			} else if fixed > 0 {
				logger.Info("Subscription tiers reconciled", "users", fixed)
			}
		}
	}
}

// Reconcile выставляет каждому пользователю с подпиской тариф, который она дает.
// Возвращает число исправленных пользователей.
func (w *SubscriptionWorker) Reconcile(ctx context.Context) (int64, error) {
	db := w.db.WithContext(ctx)

	var subs []models.Subscription
	if err := db.Select("user_id", "plan", "status").Find(&subs).Error; err != nil {
		return 0, err
	}

	var fixed int64
	for _, sub := range subs {
		tier := plans.Free
		if sub.Status.Entitled() && sub.Plan != "" {
			tier = sub.Plan
		}

		result := db.Model(&models.User{}).
			Where("id = ? AND subscription_tier <> ?", sub.UserID, tier).
			Update("subscription_tier", tier)
		if result.Error != nil {
			return fixed, result.Error
		}
		fixed += result.RowsAffected
	}
	return fixed, nil
}
