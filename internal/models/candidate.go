package models

import "gorm.io/datatypes"

type Candidate struct {
	BaseModel
	JobID           string `gorm:"type:varchar(36);not null;index"`
	Name            string `gorm:"size:255;not null"`
	Email           string `gorm:"size:255;not null"`
	Phone           string `gorm:"size:50"`
	ResumeURL       string `gorm:"size:500"` // ключ в storage
	ResumeText      string `gorm:"type:text"`
	AIScore         *int
	AISummary       string `gorm:"type:text"`
	SkillsMatched   datatypes.JSONSlice[string]
	ExperienceYears *int
	Strengths       datatypes.JSONSlice[string]
	Concerns        datatypes.JSONSlice[string]
	Status          CandidateStatus `gorm:"type:varchar(20);not null;default:'new';index"`

	EmailLogs []EmailLog `gorm:"foreignKey:CandidateID;constraint:OnDelete:CASCADE"`
}

// Score возвращает ai_score, отсутствие оценки считается нулем
func (c *Candidate) Score() int {
	if c.AIScore == nil {
		return 0
	}
	return *c.AIScore
}
