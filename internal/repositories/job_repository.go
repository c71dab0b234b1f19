package repositories

import (
	"errors"

	"hiremind_backend/internal/models"

	"gorm.io/gorm"
)

type JobRepository interface {
	Create(db *gorm.DB, job *models.Job) error
	// FindOwned ищет вакансию пользователя. Чужая вакансия неотличима от отсутствующей.
	FindOwned(db *gorm.DB, jobID, userID string) (*models.Job, error)
	ListWithCounts(db *gorm.DB, userID string, status models.JobStatus) ([]models.JobWithCount, error)
	CountCandidates(db *gorm.DB, jobID string) (int64, error)
	CountByUser(db *gorm.DB, userID string) (int64, error)
	CountByUserAndStatus(db *gorm.DB, userID string, status models.JobStatus) (int64, error)
	Update(db *gorm.DB, job *models.Job) error
	Delete(db *gorm.DB, jobID string) ([]string, error)
}

type JobRepositoryImpl struct{}

func NewJobRepository() JobRepository {
	return &JobRepositoryImpl{}
}

func (r *JobRepositoryImpl) Create(db *gorm.DB, job *models.Job) error {
	return db.Create(job).Error
}

func (r *JobRepositoryImpl) FindOwned(db *gorm.DB, jobID, userID string) (*models.Job, error) {
	var job models.Job
	err := db.Where("id = ? AND user_id = ?", jobID, userID).First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

type jobCount struct {
	JobID string
	Total int64
}

func (r *JobRepositoryImpl) ListWithCounts(db *gorm.DB, userID string, status models.JobStatus) ([]models.JobWithCount, error) {
	query := db.Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var jobs []models.Job
	if err := query.Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return []models.JobWithCount{}, nil
	}

	ids := make([]string, len(jobs))
	for i := range jobs {
		ids[i] = jobs[i].ID
	}

	var counts []jobCount
	if err := db.Model(&models.Candidate{}).
		Select("job_id, COUNT(*) AS total").
		Where("job_id IN ?", ids).
		Group("job_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	byJob := make(map[string]int64, len(counts))
	for _, c := range counts {
		byJob[c.JobID] = c.Total
	}

	result := make([]models.JobWithCount, len(jobs))
	for i := range jobs {
		result[i] = models.JobWithCount{Job: jobs[i], CandidateCount: byJob[jobs[i].ID]}
	}
	return result, nil
}

func (r *JobRepositoryImpl) CountCandidates(db *gorm.DB, jobID string) (int64, error) {
	var count int64
	err := db.Model(&models.Candidate{}).Where("job_id = ?", jobID).Count(&count).Error
	return count, err
}

func (r *JobRepositoryImpl) CountByUser(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Job{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *JobRepositoryImpl) CountByUserAndStatus(db *gorm.DB, userID string, status models.JobStatus) (int64, error) {
	var count int64
	err := db.Model(&models.Job{}).Where("user_id = ? AND status = ?", userID, status).Count(&count).Error
	return count, err
}

func (r *JobRepositoryImpl) Update(db *gorm.DB, job *models.Job) error {
	return db.Save(job).Error
}

func (r *JobRepositoryImpl) Delete(db *gorm.DB, jobID string) ([]string, error) {
	var keys []string
	err := db.Transaction(func(tx *gorm.DB) error {
		candidateIDs := tx.Model(&models.Candidate{}).Select("id").Where("job_id = ?", jobID)

		if err := tx.Model(&models.Candidate{}).
			Where("job_id = ? AND resume_url <> ''", jobID).
			Pluck("resume_url", &keys).Error; err != nil {
			return err
		}
		if err := tx.Where("candidate_id IN (?)", candidateIDs).Delete(&models.EmailLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_id = ?", jobID).Delete(&models.Candidate{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", jobID).Delete(&models.Job{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrJobNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}
