package repositories

import (
	"errors"

	"hiremind_backend/internal/models"

	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	FindByUserID(db *gorm.DB, userID string) (*models.Subscription, error)
	FindByStripeSubscriptionID(db *gorm.DB, subscriptionID string) (*models.Subscription, error)
	// Upsert создает или обновляет единственную подписку пользователя
	Upsert(db *gorm.DB, sub *models.Subscription) error
}

type SubscriptionRepositoryImpl struct{}

func NewSubscriptionRepository() SubscriptionRepository {
	return &SubscriptionRepositoryImpl{}
}

func (r *SubscriptionRepositoryImpl) FindByUserID(db *gorm.DB, userID string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := db.Where("user_id = ?", userID).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) FindByStripeSubscriptionID(db *gorm.DB, subscriptionID string) (*models.Subscription, error) {
	if subscriptionID == "" {
		return nil, ErrSubscriptionNotFound
	}
	var sub models.Subscription
	if err := db.Where("stripe_subscription_id = ?", subscriptionID).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) Upsert(db *gorm.DB, sub *models.Subscription) error {
	existing, err := r.FindByUserID(db, sub.UserID)
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			return db.Create(sub).Error
		}
		return err
	}

	sub.ID = existing.ID
	sub.CreatedAt = existing.CreatedAt
	return db.Save(sub).Error
}
