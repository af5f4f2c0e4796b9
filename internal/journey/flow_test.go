package journey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlowRequiresAnswerToAdvance(t *testing.T) {
	fl := NewFlow(StageOnboarding, ItemsForStage(StageOnboarding))

	res := fl.Advance()
	assert.False(t, res.Moved, "pills item with no answer must block")

	assert.True(t, fl.SetAnswer("reason", "Feeling stuck"))
	res = fl.Advance()
	assert.True(t, res.Moved)
	assert.False(t, res.CompletedNow)
}

func TestFlowTextAnswersAreOptional(t *testing.T) {
	fl := NewFlow(StageOnboarding, ItemsForStage(StageOnboarding))
	fl.SetAnswer("reason", "Feeling stuck")
	fl.Advance()
	fl.SetAnswer("satisfaction", float64(4))
	fl.Advance()
	fl.SetAnswer("stuckArea", []any{"Career", "Freedom"})
	fl.Advance()

	// "freedom" is a text item; a skipped answer still passes.
	res := fl.Advance()
	assert.True(t, res.Moved)
}

func TestFlowSectionBreakPassesWithoutAnswer(t *testing.T) {
	items := []Item{
		{Type: ItemSectionBreak, Heading: "Part one"},
		{ID: "q", Type: ItemText, Question: "?"},
	}
	fl := NewFlow(StagePointB, items)

	res := fl.Advance()
	assert.True(t, res.Moved, "section break only needs the confirm")
}

func TestFlowCompletesExactlyOnce(t *testing.T) {
	fl := NewFlow(StageOnboarding, ItemsForStage(StageOnboarding))
	answers := map[string]any{
		"reason":       "Feeling stuck",
		"satisfaction": float64(4),
		"stuckArea":    []any{"Career"},
		"freedom":      "waking up without an alarm",
		"readiness":    float64(3),
	}
	for id, v := range answers {
		require.True(t, fl.SetAnswer(id, v))
	}

	completions := 0
	for i := 0; i < 10; i++ {
		if fl.Advance().CompletedNow {
			completions++
		}
	}
	assert.Equal(t, 1, completions, "double submits must not complete twice")
	assert.True(t, fl.Completed())
}

func TestFlowRejectsAnswersAfterCompletion(t *testing.T) {
	items := []Item{{ID: "q", Type: ItemText}}
	fl := NewFlow(StageOnboarding, items)
	require.True(t, fl.Advance().CompletedNow)

	assert.False(t, fl.SetAnswer("q", "too late"))
}

func TestFlowRejectsUnknownQuestion(t *testing.T) {
	fl := NewFlow(StageOnboarding, ItemsForStage(StageOnboarding))
	assert.False(t, fl.SetAnswer("nope", "x"))
}

func TestFlowBack(t *testing.T) {
	fl := NewFlow(StageOnboarding, ItemsForStage(StageOnboarding))

	// At step 0, back means leave the flow; progress is kept.
	fl.SetAnswer("reason", "Feeling stuck")
	assert.True(t, fl.Back())
	assert.Equal(t, "Feeling stuck", fl.AnswersSnapshot()["reason"])

	fl.Advance()
	assert.False(t, fl.Back())
	assert.Equal(t, 0, fl.View().StepIndex)
}

func TestFlowMaxPickEnforced(t *testing.T) {
	fl := NewFlow(StageIdentity, ItemsForStage(StageIdentity))

	six := []any{"Freedom", "Creativity", "Security", "Adventure", "Family", "Growth"}
	fl.SetAnswer("values", six)
	assert.False(t, fl.Advance().Moved, "over the pick limit")

	fl.SetAnswer("values", []any{"Freedom", "Creativity"})
	assert.True(t, fl.Advance().Moved)
}

func TestFlowValuesFeedFollowUpOptions(t *testing.T) {
	fl := NewFlow(StageIdentity, ItemsForStage(StageIdentity))
	fl.SetAnswer("values", []any{"Freedom", "Growth", "Love"})
	require.True(t, fl.Advance().Moved)

	view := fl.View()
	require.NotNil(t, view.Item)
	require.Equal(t, "nonNegotiable", view.Item.ID)
	assert.Equal(t, []string{"Freedom", "Growth", "Love"}, view.Item.Options)
}

func TestFlowGenerationGuards(t *testing.T) {
	items := []Item{{ID: "q", Type: ItemText}}
	fl := NewFlow(StageOnboarding, items)

	assert.False(t, fl.beginGeneration(false), "cannot generate before completion")

	require.True(t, fl.Advance().CompletedNow)
	assert.True(t, fl.beginGeneration(false))
	assert.False(t, fl.beginGeneration(false), "only one generation in flight")

	fl.finishGeneration("Some text.", []string{"Wheel of Life"}, nil)
	assert.False(t, fl.beginGeneration(false), "a finished reflection is not regenerated")
	assert.True(t, fl.beginGeneration(true), "unless explicitly retried")
	fl.finishGeneration("", nil, assert.AnError)

	view := fl.View()
	assert.True(t, view.GenerationError)
	// The earlier reflection text is kept when a retry fails.
	assert.Equal(t, "Some text.", view.Reflection)
}

func TestFlowContinueOnce(t *testing.T) {
	items := []Item{{ID: "q", Type: ItemText}}
	fl := NewFlow(StageOnboarding, items)

	assert.False(t, fl.markContinued(), "cannot continue an incomplete flow")
	require.True(t, fl.Advance().CompletedNow)
	assert.True(t, fl.markContinued())
	assert.False(t, fl.markContinued(), "replayed continue is a no-op")
}

func TestFlowViewProgress(t *testing.T) {
	items := []Item{
		{ID: "a", Type: ItemText},
		{ID: "b", Type: ItemText},
		{ID: "c", Type: ItemText},
		{ID: "d", Type: ItemText},
	}
	fl := NewFlow(StageOnboarding, items)
	assert.Equal(t, float64(0), fl.View().PercentComplete)

	fl.Advance()
	assert.Equal(t, float64(25), fl.View().PercentComplete)

	fl.Advance()
	fl.Advance()
	fl.Advance()
	view := fl.View()
	assert.True(t, view.Completed)
	assert.Equal(t, float64(100), view.PercentComplete)
	assert.Nil(t, view.Item)
}
