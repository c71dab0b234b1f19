// Package ranking упорядочивает кандидатов вакансии для выдачи.
package ranking

import (
	"slices"

	"hiremind_backend/internal/models"
)

type SortKey string

const (
	SortByScore   SortKey = "score"
	SortByRecency SortKey = "recency"
)

// ParseSortKey: пустой ключ, "ai_score" и "score" - по оценке, все остальное - по дате
func ParseSortKey(s string) SortKey {
	switch s {
	case "", "ai_score", "score":
		return SortByScore
	default:
		return SortByRecency
	}
}

// Rank фильтрует по точному статусу (пустой - без фильтра) и сортирует
// стабильно. Входной срез не изменяется.
func Rank(candidates []models.Candidate, key SortKey, status models.CandidateStatus) []models.Candidate {
	out := make([]models.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if status != "" && c.Status != status {
			continue
		}
		out = append(out, c)
	}

	switch key {
	case SortByScore:
		slices.SortStableFunc(out, func(a, b models.Candidate) int {
			return b.Score() - a.Score()
		})
	default:
		slices.SortStableFunc(out, func(a, b models.Candidate) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
	return out
}
