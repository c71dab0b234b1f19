package models

type User struct {
	BaseModel
	Email            string   `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash     string   `gorm:"not null"`
	FullName         string   `gorm:"size:255"`
	CompanyName      string   `gorm:"size:255"`
	Role             UserRole `gorm:"type:varchar(20);not null;default:'recruiter'"`
	IsActive         bool     `gorm:"not null;default:true"`
	SubscriptionTier string   `gorm:"type:varchar(20);not null;default:'free'"`
	StripeCustomerID string   `gorm:"size:255;index"`

	// Relations
	Jobs           []Job           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	EmailTemplates []EmailTemplate `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Subscription   *Subscription   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
