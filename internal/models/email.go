package models

import "time"

type EmailTemplate struct {
	BaseModel
	UserID       string            `gorm:"type:varchar(36);not null;index"`
	Name         string            `gorm:"size:255;not null"`
	Subject      string            `gorm:"size:500;not null"`
	Body         string            `gorm:"type:text;not null"`
	TemplateType EmailTemplateType `gorm:"type:varchar(20);not null;default:'custom'"`
}

// EmailLog не изменяется после вставки
type EmailLog struct {
	BaseModel
	CandidateID string      `gorm:"type:varchar(36);not null;index"`
	TemplateID  *string     `gorm:"type:varchar(36);index"`
	Subject     string      `gorm:"size:500;not null"`
	Body        string      `gorm:"type:text;not null"`
	Status      EmailStatus `gorm:"type:varchar(20);not null"`
	Error       string      `gorm:"type:text"`
	SentAt      time.Time   `gorm:"not null"`

	Template *EmailTemplate `gorm:"foreignKey:TemplateID;constraint:OnDelete:SET NULL"`
}
