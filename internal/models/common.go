package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BaseModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// BeforeCreate генерирует UUID на стороне приложения, чтобы не зависеть
// от uuid_generate_v4() и одинаково работать на postgres, mysql и sqlite
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// AllModels - порядок важен для AutoMigrate: родители раньше детей
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Subscription{},
		&Job{},
		&Candidate{},
		&EmailTemplate{},
		&EmailLog{},
	}
}
