package repositories

import (
	"errors"

	"hiremind_backend/internal/models"

	"gorm.io/gorm"
)

type EmailRepository interface {
	// Templates
	CreateTemplate(db *gorm.DB, template *models.EmailTemplate) error
	FindTemplate(db *gorm.DB, templateID, userID string) (*models.EmailTemplate, error)
	FindTemplateByType(db *gorm.DB, userID string, templateType models.EmailTemplateType) (*models.EmailTemplate, error)
	ListTemplates(db *gorm.DB, userID string) ([]models.EmailTemplate, error)
	DeleteTemplate(db *gorm.DB, templateID, userID string) error

	// Logs
	CreateLog(db *gorm.DB, log *models.EmailLog) error
	ListLogs(db *gorm.DB, candidateID string) ([]models.EmailLog, error)
}

type EmailRepositoryImpl struct{}

func NewEmailRepository() EmailRepository {
	return &EmailRepositoryImpl{}
}

func (r *EmailRepositoryImpl) CreateTemplate(db *gorm.DB, template *models.EmailTemplate) error {
	return db.Create(template).Error
}

func (r *EmailRepositoryImpl) FindTemplate(db *gorm.DB, templateID, userID string) (*models.EmailTemplate, error) {
	var template models.EmailTemplate
	if err := db.Where("id = ? AND user_id = ?", templateID, userID).First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return &template, nil
}

// FindTemplateByType - самый свежий шаблон пользователя данного типа
func (r *EmailRepositoryImpl) FindTemplateByType(db *gorm.DB, userID string, templateType models.EmailTemplateType) (*models.EmailTemplate, error) {
	var template models.EmailTemplate
	err := db.Where("user_id = ? AND template_type = ?", userID, templateType).
		Order("created_at DESC").
		First(&template).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return &template, nil
}

func (r *EmailRepositoryImpl) ListTemplates(db *gorm.DB, userID string) ([]models.EmailTemplate, error) {
	var templates []models.EmailTemplate
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&templates).Error
	return templates, err
}

func (r *EmailRepositoryImpl) DeleteTemplate(db *gorm.DB, templateID, userID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		// логи остаются, ссылка на шаблон обнуляется
		if err := tx.Model(&models.EmailLog{}).
			Where("template_id = ?", templateID).
			Update("template_id", nil).Error; err != nil {
			return err
		}

		result := tx.Where("id = ? AND user_id = ?", templateID, userID).Delete(&models.EmailTemplate{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTemplateNotFound
		}
		return nil
	})
}

func (r *EmailRepositoryImpl) CreateLog(db *gorm.DB, log *models.EmailLog) error {
	return db.Create(log).Error
}

func (r *EmailRepositoryImpl) ListLogs(db *gorm.DB, candidateID string) ([]models.EmailLog, error) {
	var logs []models.EmailLog
	err := db.Where("candidate_id = ?", candidateID).Order("sent_at DESC").Find(&logs).Error
	return logs, err
}
