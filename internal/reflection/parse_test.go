package reflection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReflectionWithMarker(t *testing.T) {
	p := ParseReflection("Some text.\n---FRAMEWORKS: A, B, C")
	assert.Equal(t, "Some text.", p.Text)
	assert.Equal(t, []string{"A", "B", "C"}, p.Frameworks)
}

func TestParseReflectionWithoutMarker(t *testing.T) {
	p := ParseReflection("  Just a reflection, nothing cited.  \n")
	assert.Equal(t, "Just a reflection, nothing cited.", p.Text)
	assert.Empty(t, p.Frameworks)
	assert.NotNil(t, p.Frameworks)
}

func TestParseReflectionEmpty(t *testing.T) {
	p := ParseReflection("")
	assert.Equal(t, "", p.Text)
	assert.Empty(t, p.Frameworks)
	assert.NotNil(t, p.Frameworks)
}

func TestParseReflectionMessyCitationLine(t *testing.T) {
	p := ParseReflection("Body here.\n\n---FRAMEWORKS:  Wheel of Life ,, Ikigai , ")
	assert.Equal(t, "Body here.", p.Text)
	assert.Equal(t, []string{"Wheel of Life", "Ikigai"}, p.Frameworks)
}

func TestParseReflectionMarkerOnly(t *testing.T) {
	p := ParseReflection("---FRAMEWORKS:")
	assert.Equal(t, "", p.Text)
	assert.Empty(t, p.Frameworks)
}

const validPlanJSON = `{
	"theme": "Make it real",
	"weeks": [
		{"week": 1, "focus": "foundation", "goal": "pick one path", "tasks": ["write it down", "tell someone"], "checkpoint": "path named"},
		{"week": 2, "focus": "momentum", "goal": "first action", "tasks": ["send one message"], "checkpoint": "message sent"},
		{"week": 3, "focus": "proof", "goal": "get a response", "tasks": ["follow up"], "checkpoint": "one reply"},
		{"week": 4, "focus": "commit", "goal": "lock a date", "tasks": ["book it"], "checkpoint": "date booked"}
	],
	"dailyHabit": "one small action before noon",
	"firstDayTask": "write the one-line version of the plan"
}`

func TestParseActionPlan(t *testing.T) {
	plan, err := ParseActionPlan(validPlanJSON)
	require.NoError(t, err)
	assert.Equal(t, "Make it real", plan.Theme)
	require.Len(t, plan.Weeks, 4)
	assert.Equal(t, 1, plan.Weeks[0].Week)
	assert.Equal(t, []string{"send one message"}, plan.Weeks[1].Tasks)
	assert.Equal(t, "one small action before noon", plan.DailyHabit)
	assert.Equal(t, "write the one-line version of the plan", plan.FirstDayTask)
}

func TestParseActionPlanCodeFence(t *testing.T) {
	plan, err := ParseActionPlan("```json\n" + validPlanJSON + "\n```")
	require.NoError(t, err)
	assert.Equal(t, "Make it real", plan.Theme)
}

func TestParseActionPlanLeadingProse(t *testing.T) {
	plan, err := ParseActionPlan("Here is your plan:\n\n" + validPlanJSON)
	require.NoError(t, err)
	assert.Equal(t, "Make it real", plan.Theme)
}

func TestParseActionPlanRejectsNonJSON(t *testing.T) {
	_, err := ParseActionPlan("I could not produce a plan this time.")
	assert.Error(t, err)
}

func TestParseActionPlanRejectsMissingTheme(t *testing.T) {
	_, err := ParseActionPlan(`{"weeks": [{"week": 1}]}`)
	assert.Error(t, err)
}

func TestParseActionPlanRejectsEmptyWeeks(t *testing.T) {
	_, err := ParseActionPlan(`{"theme": "x", "weeks": []}`)
	assert.Error(t, err)
}
