package journey

import (
	"math"
	"strings"
	"unicode/utf8"
)

// PointBClarityFields are the stage-4 text answers that feed the clarity score.
var PointBClarityFields = []string{
	"year1_living", "year1_tuesday", "year1_working", "year1_feeling",
	"year3_living", "year3_tuesday", "year3_working", "year3_feeling",
	"uncensored_build", "uncensored_truth",
}

// CalcClarity scores a set of free-text answers on completeness. Each field
// earns 0 points when blank, 1 up to 20 characters, 2 up to 60, and 3 beyond
// that; the total is normalised to 0..100. Pure and deterministic.
func CalcClarity(answers map[string]any, fields []string) int {
	if len(fields) == 0 {
		return 0
	}
	total := 0
	for _, field := range fields {
		total += lengthPoints(answerText(answers, field))
	}
	return int(math.Round(float64(total) / float64(len(fields)*3) * 100))
}

func lengthPoints(s string) int {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	switch {
	case n == 0:
		return 0
	case n <= 20:
		return 1
	case n <= 60:
		return 2
	default:
		return 3
	}
}

func answerText(answers map[string]any, field string) string {
	if answers == nil {
		return ""
	}
	if s, ok := answers[field].(string); ok {
		return s
	}
	return ""
}
