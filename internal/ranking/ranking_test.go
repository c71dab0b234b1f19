package ranking

import (
	"testing"
	"time"

	"hiremind_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(id string, score *int, status models.CandidateStatus, created time.Time) models.Candidate {
	c := models.Candidate{Name: id, AIScore: score, Status: status}
	c.ID = id
	c.CreatedAt = created
	return c
}

func intPtr(v int) *int { return &v }

func ids(cs []models.Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortByScore, ParseSortKey("ai_score"))
	assert.Equal(t, SortByScore, ParseSortKey("score"))
	assert.Equal(t, SortByRecency, ParseSortKey("created_at"))
	assert.Equal(t, SortByScore, ParseSortKey(""), "по умолчанию сортировка по оценке")
	assert.Equal(t, SortByRecency, ParseSortKey("bogus"))
}

func TestRank_ByScoreIsStable(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	in := []models.Candidate{
		candidate("a", intPtr(70), models.CandidateStatusNew, base),
		candidate("b", intPtr(90), models.CandidateStatusNew, base.Add(time.Hour)),
		candidate("c", intPtr(70), models.CandidateStatusNew, base.Add(2*time.Hour)),
		candidate("d", nil, models.CandidateStatusNew, base.Add(3*time.Hour)),
		candidate("e", intPtr(90), models.CandidateStatusNew, base.Add(4*time.Hour)),
		candidate("f", intPtr(70), models.CandidateStatusNew, base.Add(5*time.Hour)),
	}

	out := Rank(in, SortByScore, "")
	assert.Equal(t, []string{"b", "e", "a", "c", "f", "d"}, ids(out))
}

func TestRank_ByRecency(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	in := []models.Candidate{
		candidate("old", intPtr(99), models.CandidateStatusNew, base),
		candidate("new", intPtr(10), models.CandidateStatusNew, base.Add(48*time.Hour)),
		candidate("mid", intPtr(50), models.CandidateStatusNew, base.Add(24*time.Hour)),
	}

	out := Rank(in, SortByRecency, "")
	assert.Equal(t, []string{"new", "mid", "old"}, ids(out))
}

func TestRank_StatusFilter(t *testing.T) {
	now := time.Now()
	in := []models.Candidate{
		candidate("a", intPtr(10), models.CandidateStatusShortlisted, now),
		candidate("b", intPtr(90), models.CandidateStatusRejected, now),
		candidate("c", intPtr(50), models.CandidateStatusShortlisted, now),
	}

	out := Rank(in, SortByScore, models.CandidateStatusShortlisted)
	assert.Equal(t, []string{"c", "a"}, ids(out))

	assert.Empty(t, Rank(in, SortByScore, models.CandidateStatusHired))
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	now := time.Now()
	in := []models.Candidate{
		candidate("a", intPtr(10), models.CandidateStatusNew, now),
		candidate("b", intPtr(90), models.CandidateStatusNew, now),
	}

	out := Rank(in, SortByScore, "")
	require.Equal(t, []string{"b", "a"}, ids(out))
	assert.Equal(t, []string{"a", "b"}, ids(in))
}
