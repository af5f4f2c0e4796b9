package reflection

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/unmaphq/unmap-backend/internal/journey"
)

const frameworksMarker = "---FRAMEWORKS:"

// Parsed is a reflection split into its prose body and citation labels.
type Parsed struct {
	Text       string
	Frameworks []string
}

// ParseReflection splits a generated reflection from its trailing framework
// citation line. Responses stored before the marker convention existed come
// back with the whole text as body and no citations. Never fails.
func ParseReflection(raw string) Parsed {
	if raw == "" {
		return Parsed{Frameworks: []string{}}
	}

	idx := strings.Index(raw, frameworksMarker)
	if idx == -1 {
		return Parsed{Text: strings.TrimSpace(raw), Frameworks: []string{}}
	}

	frameworks := []string{}
	for _, part := range strings.Split(raw[idx+len(frameworksMarker):], ",") {
		if f := strings.TrimSpace(part); f != "" {
			frameworks = append(frameworks, f)
		}
	}
	return Parsed{
		Text:       strings.TrimSpace(raw[:idx]),
		Frameworks: frameworks,
	}
}

// ParseActionPlan decodes the generated roadmap plan, tolerating a markdown
// code fence around the JSON and leading prose before the first brace.
func ParseActionPlan(raw string) (journey.RoadmapPlan, error) {
	var plan journey.RoadmapPlan

	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end <= start {
		return plan, errors.New("no JSON object in plan output")
	}

	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &plan); err != nil {
		return plan, err
	}
	if plan.Theme == "" || len(plan.Weeks) == 0 {
		return plan, errors.New("plan output missing theme or weeks")
	}
	return plan, nil
}
