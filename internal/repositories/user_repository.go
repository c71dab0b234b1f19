package repositories

import (
	"errors"
	"strings"

	"hiremind_backend/internal/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindByStripeCustomerID(db *gorm.DB, customerID string) (*models.User, error)
	ExistsByRole(db *gorm.DB, role models.UserRole) (bool, error)
	UpdateProfile(db *gorm.DB, userID string, fields map[string]interface{}) error
	UpdateBilling(db *gorm.DB, userID, tier, customerID string) error
	// Delete удаляет пользователя вместе с вакансиями, кандидатами, письмами,
	// шаблонами и подпиской. Возвращает ключи файлов резюме.
	Delete(db *gorm.DB, userID string) ([]string, error)
	FindAll(db *gorm.DB, limit, offset int) ([]models.User, int64, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	user.Email = NormalizeEmail(user.Email)

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUserAlreadyExists
	}
	return db.Create(user).Error
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.Preload("Subscription").First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "email = ?", NormalizeEmail(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByStripeCustomerID(db *gorm.DB, customerID string) (*models.User, error) {
	if customerID == "" {
		return nil, ErrUserNotFound
	}
	var user models.User
	if err := db.First(&user, "stripe_customer_id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) ExistsByRole(db *gorm.DB, role models.UserRole) (bool, error) {
	var count int64
	err := db.Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count > 0, err
}

func (r *UserRepositoryImpl) UpdateProfile(db *gorm.DB, userID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateBilling - пустые значения не трогают соответствующие колонки
func (r *UserRepositoryImpl) UpdateBilling(db *gorm.DB, userID, tier, customerID string) error {
	fields := map[string]interface{}{}
	if tier != "" {
		fields["subscription_tier"] = tier
	}
	if customerID != "" {
		fields["stripe_customer_id"] = customerID
	}
	return r.UpdateProfile(db, userID, fields)
}

func (r *UserRepositoryImpl) Delete(db *gorm.DB, userID string) ([]string, error) {
	var keys []string
	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select("id").First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		jobIDs := tx.Model(&models.Job{}).Select("id").Where("user_id = ?", userID)
		candidateIDs := tx.Model(&models.Candidate{}).Select("id").Where("job_id IN (?)", jobIDs)

		if err := tx.Model(&models.Candidate{}).
			Where("job_id IN (?) AND resume_url <> ''", jobIDs).
			Pluck("resume_url", &keys).Error; err != nil {
			return err
		}
		if err := tx.Where("candidate_id IN (?)", candidateIDs).Delete(&models.EmailLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_id IN (?)", jobIDs).Delete(&models.Candidate{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Job{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.EmailTemplate{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Subscription{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", userID).Delete(&models.User{}).Error
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *UserRepositoryImpl) FindAll(db *gorm.DB, limit, offset int) ([]models.User, int64, error) {
	var total int64
	if err := db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error
	return users, total, err
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
