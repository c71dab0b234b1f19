package models

import "gorm.io/datatypes"

type Job struct {
	BaseModel
	UserID       string `gorm:"type:varchar(36);not null;index"`
	Title        string `gorm:"size:255;not null"`
	Description  string `gorm:"type:text;not null"`
	Requirements string `gorm:"type:text"`
	Skills       datatypes.JSONSlice[string]
	Location     string    `gorm:"size:255"`
	SalaryRange  string    `gorm:"size:100"`
	JobType      string    `gorm:"size:50;not null;default:'full-time'"`
	Status       JobStatus `gorm:"type:varchar(20);not null;default:'active';index"`

	Candidates []Candidate `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE"`
}

// JobWithCount - вакансия и число кандидатов (результат агрегирующего запроса)
type JobWithCount struct {
	Job
	CandidateCount int64
}
