package repositories

import (
	"database/sql"
	"errors"

	"hiremind_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Analysis - поля анализа, которые записываются одним UPDATE
type Analysis struct {
	Score           int
	Summary         string
	SkillsMatched   []string
	ExperienceYears int
	Strengths       []string
	Concerns        []string
}

type CandidateRepository interface {
	Create(db *gorm.DB, candidate *models.Candidate) error
	// FindOwned ищет кандидата по вакансиям пользователя
	FindOwned(db *gorm.DB, candidateID, userID string) (*models.Candidate, error)
	ListByJob(db *gorm.DB, jobID string) ([]models.Candidate, error)
	CountByUser(db *gorm.DB, userID string) (int64, error)
	CountByUserAndStatus(db *gorm.DB, userID string, status models.CandidateStatus) (int64, error)
	AverageScoreByUser(db *gorm.DB, userID string) (float64, error)
	UpdateAnalysis(db *gorm.DB, candidateID string, analysis Analysis) error
	UpdateStatus(db *gorm.DB, candidateID string, status models.CandidateStatus) error
	Delete(db *gorm.DB, candidateID string) (string, error)
}

type CandidateRepositoryImpl struct{}

func NewCandidateRepository() CandidateRepository {
	return &CandidateRepositoryImpl{}
}

func (r *CandidateRepositoryImpl) Create(db *gorm.DB, candidate *models.Candidate) error {
	return db.Create(candidate).Error
}

func (r *CandidateRepositoryImpl) FindOwned(db *gorm.DB, candidateID, userID string) (*models.Candidate, error) {
	var candidate models.Candidate
	err := db.Model(&models.Candidate{}).
		Joins("JOIN jobs ON jobs.id = candidates.job_id").
		Where("candidates.id = ? AND jobs.user_id = ?", candidateID, userID).
		First(&candidate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}
	return &candidate, nil
}

// ListByJob - в порядке загрузки, сортировку делает ranking
func (r *CandidateRepositoryImpl) ListByJob(db *gorm.DB, jobID string) ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := db.Where("job_id = ?", jobID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&candidates).Error
	return candidates, err
}

func (r *CandidateRepositoryImpl) CountByUser(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Candidate{}).
		Joins("JOIN jobs ON jobs.id = candidates.job_id").
		Where("jobs.user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *CandidateRepositoryImpl) CountByUserAndStatus(db *gorm.DB, userID string, status models.CandidateStatus) (int64, error) {
	var count int64
	err := db.Model(&models.Candidate{}).
		Joins("JOIN jobs ON jobs.id = candidates.job_id").
		Where("jobs.user_id = ? AND candidates.status = ?", userID, status).
		Count(&count).Error
	return count, err
}

// AverageScoreByUser - среднее по кандидатам с оценкой, 0 если таких нет
func (r *CandidateRepositoryImpl) AverageScoreByUser(db *gorm.DB, userID string) (float64, error) {
	var avg sql.NullFloat64
	err := db.Model(&models.Candidate{}).
		Select("AVG(candidates.ai_score)").
		Joins("JOIN jobs ON jobs.id = candidates.job_id").
		Where("jobs.user_id = ? AND candidates.ai_score IS NOT NULL", userID).
		Row().Scan(&avg)
	if err != nil || !avg.Valid {
		return 0, err
	}
	return avg.Float64, nil
}

func (r *CandidateRepositoryImpl) UpdateAnalysis(db *gorm.DB, candidateID string, analysis Analysis) error {
	result := db.Model(&models.Candidate{}).
		Where("id = ?", candidateID).
		Updates(map[string]interface{}{
			"ai_score":         analysis.Score,
			"ai_summary":       analysis.Summary,
			"skills_matched":   datatypes.JSONSlice[string](nonNil(analysis.SkillsMatched)),
			"experience_years": analysis.ExperienceYears,
			"strengths":        datatypes.JSONSlice[string](nonNil(analysis.Strengths)),
			"concerns":         datatypes.JSONSlice[string](nonNil(analysis.Concerns)),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCandidateNotFound
	}
	return nil
}

func (r *CandidateRepositoryImpl) UpdateStatus(db *gorm.DB, candidateID string, status models.CandidateStatus) error {
	result := db.Model(&models.Candidate{}).Where("id = ?", candidateID).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCandidateNotFound
	}
	return nil
}

// Delete возвращает ключ файла резюме удаленного кандидата
func (r *CandidateRepositoryImpl) Delete(db *gorm.DB, candidateID string) (string, error) {
	var key string
	err := db.Transaction(func(tx *gorm.DB) error {
		var candidate models.Candidate
		if err := tx.Select("id", "resume_url").First(&candidate, "id = ?", candidateID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCandidateNotFound
			}
			return err
		}
		key = candidate.ResumeURL

		if err := tx.Where("candidate_id = ?", candidateID).Delete(&models.EmailLog{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", candidateID).Delete(&models.Candidate{}).Error
	})
	return key, err
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
