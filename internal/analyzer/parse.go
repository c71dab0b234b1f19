package analyzer

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ExtractJSONObject возвращает подстроку от первой '{' до последней '}'
func ExtractJSONObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndex(raw, "}")
	if end < start {
		return "", false
	}
	return raw[start : end+1], true
}

// ParseResponse разбирает ответ модели и нормализует его:
// score в [0,100], experience_years >= 0, skills_matched - подмножество
// requiredSkills в их порядке. ok=false, если JSON объект не найден или не декодируется.
func ParseResponse(raw string, requiredSkills []string) (Result, bool) {
	obj, found := ExtractJSONObject(raw)
	if !found {
		return Result{}, false
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(obj), &fields); err != nil {
		return Result{}, false
	}

	return Result{
		Score:           clamp(coerceInt(fields["score"]), 0, 100),
		Summary:         strings.TrimSpace(coerceString(fields["summary"])),
		SkillsMatched:   restrictToRequired(coerceStrings(fields["skills_matched"]), requiredSkills),
		ExperienceYears: clamp(coerceInt(fields["experience_years"]), 0, math.MaxInt32),
		Strengths:       coerceStrings(fields["strengths"]),
		Concerns:        coerceStrings(fields["concerns"]),
	}, true
}

// restrictToRequired оставляет навыки вакансии, упомянутые моделью
// (без учета регистра), в порядке вакансии и без повторов
func restrictToRequired(reported, required []string) []string {
	seen := make(map[string]bool, len(reported))
	for _, s := range reported {
		seen[normalizeSkill(s)] = true
	}

	out := make([]string, 0, len(required))
	used := make(map[string]bool, len(required))
	for _, skill := range required {
		key := normalizeSkill(skill)
		if key == "" || used[key] || !seen[key] {
			continue
		}
		used[key] = true
		out = append(out, skill)
	}
	return out
}

func normalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func coerceInt(v any) int {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0
		}
		if val > math.MaxInt32 {
			return math.MaxInt32
		}
		if val < math.MinInt32 {
			return math.MinInt32
		}
		return int(math.Round(val))
	case string:
		return leadingInt(val)
	default:
		return 0
	}
}

// leadingInt разбирает строки вида "85", "5+", "7 years", "82.5%"
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.' && r != '-'
	})
	if end >= 0 {
		s = s[:end]
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return coerceInt(f)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		b, _ := json.Marshal(val)
		return string(b)
	}
}

func coerceStrings(v any) []string {
	out := []string{}
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			if s := strings.TrimSpace(coerceString(item)); s != "" {
				out = append(out, s)
			}
		}
	case string:
		if s := strings.TrimSpace(val); s != "" {
			out = append(out, s)
		}
	}
	return out
}
