package models

import "time"

// Subscription - не больше одной на пользователя, меняется только вебхуками
type Subscription struct {
	BaseModel
	UserID               string             `gorm:"type:varchar(36);not null;uniqueIndex"`
	Plan                 string             `gorm:"type:varchar(20);not null;default:'free'"`
	StripeSubscriptionID string             `gorm:"size:255;index"`
	Status               SubscriptionStatus `gorm:"type:varchar(20);not null"`
	CurrentPeriodStart   *time.Time
	CurrentPeriodEnd     *time.Time
}
