package reflection

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unmaphq/unmap-backend/internal/journey"
)

func TestBuildSystemPromptContainsBaseBlocks(t *testing.T) {
	p := BuildSystemPrompt(journey.Snapshot{}, 1)
	assert.Contains(t, p, "Unmap's AI guide")
	assert.Contains(t, p, "TONE RULES:")
	assert.Contains(t, p, "FORBIDDEN WORDS")
	assert.Contains(t, p, "New user — no profile data collected yet.")
	assert.Contains(t, p, "CURRENT STAGE: "+journey.StageNames[1])
}

func TestBuildSystemPromptUnknownStageFallsBack(t *testing.T) {
	p := BuildSystemPrompt(journey.Snapshot{}, 42)
	assert.Contains(t, p, "CURRENT STAGE: "+journey.StageNames[1])
}

func TestBuildSystemPromptStageConfigs(t *testing.T) {
	for stage := 1; stage <= 6; stage++ {
		p := BuildSystemPrompt(journey.Snapshot{}, stage)
		assert.Contains(t, p, "CURRENT STAGE: "+journey.StageNames[stage], "stage %d", stage)
		assert.Contains(t, p, "FRAMEWORK CONTEXT:", "stage %d", stage)
	}
}

func TestProfileSummaryStageSections(t *testing.T) {
	snap := journey.Snapshot{
		Name:  "Mara",
		Wheel: journey.WheelScores{Career: 4, Health: 7, Relationships: 6, Money: 3, Growth: 8, Fun: 5, Environment: 6, Purpose: 2},
		AnswersByStage: map[int]map[string]any{
			1: {
				"reason":       "Feeling stuck",
				"satisfaction": float64(4),
				"stuckArea":    []any{"Career", "Money"},
				"freedom":      "waking up without an alarm",
				"readiness":    float64(3),
			},
			5: {
				"currentWork":     "agency design work",
				"monthlyExpenses": float64(2200),
			},
		},
	}

	s := buildProfileSummary(snap)
	assert.Contains(t, s, "Name: Mara")
	assert.Contains(t, s, "Wheel of Life")
	assert.Contains(t, s, "Career 4")
	assert.Contains(t, s, "Stage 1 — Where They Are:")
	assert.Contains(t, s, `What brought them here: "Feeling stuck"`)
	assert.Contains(t, s, "Life satisfaction: 4/10")
	assert.Contains(t, s, "Stuck areas: Career, Money")
	assert.Contains(t, s, "Readiness to change: ready to start")
	assert.Contains(t, s, "Stage 5 — Career & Financial Roadmap:")
	assert.Contains(t, s, "Monthly expenses: 2200 EUR")
	assert.NotContains(t, s, "Stage 2", "missing stages are omitted")
	assert.NotContains(t, s, "Stage 4")
}

func TestProfileSummaryUnscoredWheelOmitted(t *testing.T) {
	s := buildProfileSummary(journey.Snapshot{Name: "Mara"})
	assert.NotContains(t, s, "Wheel of Life")
}

func TestProfileSummaryCurrencyOverride(t *testing.T) {
	snap := journey.Snapshot{AnswersByStage: map[int]map[string]any{
		6: {"monthlyBudget": float64(1500), "currency": "USD"},
	}}
	assert.Contains(t, buildProfileSummary(snap), "Monthly budget: 1500 USD")
}

func TestProfileSummaryUnknownReadinessShowsNumber(t *testing.T) {
	snap := journey.Snapshot{AnswersByStage: map[int]map[string]any{
		1: {"readiness": float64(9)},
	}}
	assert.Contains(t, buildProfileSummary(snap), "Readiness to change: 9")
}

func TestUserMessageBlanksStayVisible(t *testing.T) {
	items := journey.ItemsForStage(1)
	msg := buildUserMessage(1, items, map[string]any{
		"reason":  "Feeling stuck",
		"freedom": "   ",
	})

	assert.True(t, strings.HasPrefix(msg, "My answers for "+journey.StageNames[1]))
	assert.Contains(t, msg, `- reason: "Feeling stuck"`)
	assert.Contains(t, msg, "- freedom: left blank")
	assert.Contains(t, msg, "- satisfaction: left blank")
	assert.Contains(t, msg, "- stuckArea: left blank")
}

func TestUserMessageSkipsSectionBreaks(t *testing.T) {
	items := journey.ItemsForStage(4)
	msg := buildUserMessage(4, items, map[string]any{})

	questions := 0
	for _, item := range items {
		if item.Type != journey.ItemSectionBreak {
			questions++
		}
	}
	assert.Equal(t, questions, strings.Count(msg, "\n- "), "one line per question, none for breaks")
	assert.Contains(t, msg, "- year1_living: left blank")
}

func TestUserMessageExtraKeysAppendedSorted(t *testing.T) {
	items := journey.ItemsForStage(1)
	msg := buildUserMessage(1, items, map[string]any{
		"reason":  "Feeling stuck",
		"zLegacy": "old field",
		"aLegacy": "older field",
	})

	aIdx := strings.Index(msg, "- aLegacy:")
	zIdx := strings.Index(msg, "- zLegacy:")
	rIdx := strings.Index(msg, "- reason:")
	assert.Greater(t, aIdx, rIdx, "extras come after flow items")
	assert.Greater(t, zIdx, aIdx, "extras are sorted")
}

func TestUserMessageValueRendering(t *testing.T) {
	assert.Equal(t, "- x: 4\n", answerLine("x", float64(4)))
	assert.Equal(t, "- x: 4.5\n", answerLine("x", 4.5))
	assert.Equal(t, "- x: a, b\n", answerLine("x", []any{"a", "b"}))
	assert.Equal(t, "- x: left blank\n", answerLine("x", []any{}))
	assert.Equal(t, "- x: left blank\n", answerLine("x", nil))
}
