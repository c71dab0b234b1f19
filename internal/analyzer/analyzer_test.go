package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"hiremind_backend/internal/ai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticGenerator(text string, err error) ai.TextGenerator {
	return ai.GeneratorFunc(func(context.Context, string) (string, error) {
		return text, err
	})
}

func TestOffline_Scenario(t *testing.T) {
	a := New(nil)
	require.False(t, a.Live())

	skills := []string{"Python", "React", "AWS"}
	res := a.Analyze(context.Background(), "5 years of Python and React experience", "Backend role", skills)

	assert.Equal(t, 75, res.Score)
	assert.Equal(t, []string{"Python", "React", "AWS"}, res.SkillsMatched)
	assert.Equal(t, 5, res.ExperienceYears)
	assert.Equal(t, "Strong candidate with relevant experience.", res.Summary)
	assert.NotEmpty(t, res.Strengths)
	assert.NotEmpty(t, res.Concerns)
	assert.True(t, res.Degraded)
}

func TestOffline_SkillsAreShortPrefix(t *testing.T) {
	a := New(nil)
	cases := [][]string{
		nil,
		{},
		{"Go"},
		{"Go", "SQL"},
		{"Go", "SQL", "Docker"},
		{"Go", "SQL", "Docker", "Kubernetes", "gRPC"},
	}

	for _, skills := range cases {
		res := a.Analyze(context.Background(), "", "", skills)
		assert.LessOrEqual(t, len(res.SkillsMatched), 3)
		require.LessOrEqual(t, len(res.SkillsMatched), len(skills))
		for i, skill := range res.SkillsMatched {
			assert.Equal(t, skills[i], skill, "skills %v", skills)
		}
		if len(skills) >= 3 {
			assert.Len(t, res.SkillsMatched, 3)
		}
	}
}

func TestOffline_DoesNotAliasInput(t *testing.T) {
	skills := []string{"Go", "SQL"}
	res := New(nil).Analyze(context.Background(), "", "", skills)
	res.SkillsMatched[0] = "changed"
	assert.Equal(t, "Go", skills[0])
}

func TestLive_ParsesEmbeddedObject(t *testing.T) {
	raw := "Sure! Here is the analysis:\n```json\n" +
		`{"score": 88, "summary": "Solid backend engineer.", "skills_matched": ["python", "AWS", "Rust"],` +
		` "experience_years": 6, "strengths": ["APIs"], "concerns": []}` +
		"\n```\nLet me know if you need anything else."

	a := New(staticGenerator(raw, nil))
	require.True(t, a.Live())

	res := a.Analyze(context.Background(), "resume", "job", []string{"Python", "React", "AWS"})
	assert.Equal(t, 88, res.Score)
	assert.Equal(t, "Solid backend engineer.", res.Summary)
	assert.Equal(t, []string{"Python", "AWS"}, res.SkillsMatched)
	assert.Equal(t, 6, res.ExperienceYears)
	assert.Equal(t, []string{"APIs"}, res.Strengths)
	assert.Empty(t, res.Concerns)
	assert.False(t, res.Degraded)
}

func TestLive_MalformedResponses(t *testing.T) {
	for _, raw := range []string{
		"",
		"no json here at all",
		"{ this is not json }",
		"} backwards {",
		`{"score": 90, "summary": "cut off`,
	} {
		res := New(staticGenerator(raw, nil)).Analyze(context.Background(), "r", "j", []string{"Go"})
		assert.Equal(t, 50, res.Score, "raw %q", raw)
		assert.Equal(t, "Unable to fully analyze resume.", res.Summary)
		assert.Empty(t, res.SkillsMatched)
		assert.Empty(t, res.Strengths)
		assert.NotEmpty(t, res.Concerns)
		assert.True(t, res.Degraded)
	}
}

func TestLive_CallFailure(t *testing.T) {
	res := New(staticGenerator("", errors.New("quota exceeded"))).
		Analyze(context.Background(), "r", "j", []string{"Go"})

	assert.Equal(t, 50, res.Score)
	assert.Equal(t, "Error during analysis.", res.Summary)
	assert.Equal(t, []string{"quota exceeded"}, res.Concerns)
	assert.Empty(t, res.SkillsMatched)
}

func TestLive_PromptContract(t *testing.T) {
	var prompts []string
	gen := ai.GeneratorFunc(func(_ context.Context, prompt string) (string, error) {
		prompts = append(prompts, prompt)
		return `{"score": 1}`, nil
	})
	a := New(gen)

	a.Analyze(context.Background(), "RESUME BODY", "JOB BODY", []string{"Go", "SQL"})
	a.Analyze(context.Background(), "RESUME BODY", "JOB BODY", nil)

	require.Len(t, prompts, 2)
	assert.Contains(t, prompts[0], "JOB BODY")
	assert.Contains(t, prompts[0], "RESUME BODY")
	assert.Contains(t, prompts[0], "Go, SQL")
	assert.Contains(t, prompts[0], "JSON format ONLY")
	assert.Contains(t, prompts[1], "Not specified")
}

func TestGenerateJobDescription(t *testing.T) {
	offline := New(nil).GenerateJobDescription(context.Background(), "Go Developer", []string{"Go", "SQL"})
	assert.Equal(t, "We are looking for a talented Go Developer to join our team. The ideal candidate will have experience with Go, SQL.", offline)

	noSkills := New(nil).GenerateJobDescription(context.Background(), "Designer", nil)
	assert.True(t, strings.HasSuffix(noSkills, "experience with relevant technologies."))

	live := New(staticGenerator("Generated text", nil)).GenerateJobDescription(context.Background(), "Go Developer", nil)
	assert.Equal(t, "Generated text", live)

	failed := New(staticGenerator("", errors.New("boom"))).GenerateJobDescription(context.Background(), "Go Developer", nil)
	assert.Equal(t, "We are looking for a talented Go Developer to join our team.", failed)
}
