// Package analyzer сопоставляет резюме с вакансией через модель генерации текста.
//
// Анализатор никогда не возвращает ошибку: без ключа API работает офлайн-вариант
// с фиксированным результатом, а сбои модели и нераспознанные ответы дают
// деградированный результат со score 50.
package analyzer

import (
	"context"

	"hiremind_backend/internal/ai"
	"hiremind_backend/internal/logger"
)

// Result - структурированный результат анализа резюме
type Result struct {
	Score           int      `json:"score"`
	Summary         string   `json:"summary"`
	SkillsMatched   []string `json:"skills_matched"`
	ExperienceYears int      `json:"experience_years"`
	Strengths       []string `json:"strengths"`
	Concerns        []string `json:"concerns"`
	// Degraded - результат не от модели (офлайн-режим, сбой вызова или разбора)
	Degraded bool `json:"-"`
}

// Analyzer - общий интерфейс офлайн- и live-вариантов
type Analyzer interface {
	Analyze(ctx context.Context, resumeText, jobDescription string, requiredSkills []string) Result
	GenerateJobDescription(ctx context.Context, title string, skills []string) string
	Live() bool
}

// New выбирает вариант один раз: generator == nil означает офлайн-режим
func New(generator ai.TextGenerator) Analyzer {
	if generator == nil {
		logger.Warn("AI credential is not configured, resume analysis runs in offline mode")
		return offlineAnalyzer{}
	}
	return &liveAnalyzer{generator: generator}
}

const (
	offlineScore      = 75
	offlineExperience = 5
	offlineMaxSkills  = 3
	degradedScore     = 50
)

type offlineAnalyzer struct{}

func (offlineAnalyzer) Live() bool { return false }

// Analyze возвращает детерминированный результат: первые три навыка вакансии
func (offlineAnalyzer) Analyze(_ context.Context, _, _ string, requiredSkills []string) Result {
	n := len(requiredSkills)
	if n > offlineMaxSkills {
		n = offlineMaxSkills
	}
	matched := make([]string, n)
	copy(matched, requiredSkills[:n])

	return Result{
		Score:           offlineScore,
		Summary:         "Strong candidate with relevant experience.",
		SkillsMatched:   matched,
		ExperienceYears: offlineExperience,
		Strengths:       []string{"Good technical background", "Relevant industry experience"},
		Concerns:        []string{"May need training on specific tools"},
		Degraded:        true,
	}
}

func (offlineAnalyzer) GenerateJobDescription(_ context.Context, title string, skills []string) string {
	return fallbackDescription(title, skills)
}

type liveAnalyzer struct {
	generator ai.TextGenerator
}

func (a *liveAnalyzer) Live() bool { return true }

func (a *liveAnalyzer) Analyze(ctx context.Context, resumeText, jobDescription string, requiredSkills []string) Result {
	raw, err := a.generator.Complete(ctx, analysisPrompt(resumeText, jobDescription, requiredSkills))
	if err != nil {
		logger.CtxWithError(ctx, "AI analysis call failed", err)
		return callFailedResult(err)
	}

	result, ok := ParseResponse(raw, requiredSkills)
	if !ok {
		logger.CtxWarn(ctx, "AI analysis response is not a JSON object", "response_len", len(raw))
		return unparsedResult()
	}
	return result
}

func (a *liveAnalyzer) GenerateJobDescription(ctx context.Context, title string, skills []string) string {
	text, err := a.generator.Complete(ctx, descriptionPrompt(title, skills))
	if err != nil {
		logger.CtxWithError(ctx, "AI job description call failed", err, "title", title)
		return shortDescription(title)
	}
	return text
}

// unparsedResult - в ответе модели нет разбираемого JSON объекта
func unparsedResult() Result {
	return Result{
		Score:         degradedScore,
		Summary:       "Unable to fully analyze resume.",
		SkillsMatched: []string{},
		Strengths:     []string{},
		Concerns:      []string{"AI analysis incomplete"},
		Degraded:      true,
	}
}

func callFailedResult(err error) Result {
	return Result{
		Score:         degradedScore,
		Summary:       "Error during analysis.",
		SkillsMatched: []string{},
		Strengths:     []string{},
		Concerns:      []string{err.Error()},
		Degraded:      true,
	}
}
