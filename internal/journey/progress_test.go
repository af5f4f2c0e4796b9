package journey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressForStage(t *testing.T) {
	expected := map[int]int{1: 0, 2: 17, 3: 33, 4: 50, 5: 67, 6: 83, 7: 100}
	for stage, want := range expected {
		assert.Equal(t, want, ProgressForStage(stage), "stage %d", stage)
	}
}

func TestProgressForStageTotal(t *testing.T) {
	// Every integer maps to a value; nothing panics or returns garbage.
	assert.Equal(t, 0, ProgressForStage(-5))
	assert.Equal(t, 0, ProgressForStage(0))
	assert.Equal(t, 100, ProgressForStage(8))
	assert.Equal(t, 100, ProgressForStage(1000))

	for stage := -10; stage <= 20; stage++ {
		got := ProgressForStage(stage)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 100)
	}
}

func TestProgressMonotone(t *testing.T) {
	prev := -1
	for stage := 0; stage <= 8; stage++ {
		got := ProgressForStage(stage)
		assert.GreaterOrEqual(t, got, prev, "progress must never decrease with stage")
		prev = got
	}
}

func TestStageNamesCoverAllStages(t *testing.T) {
	for stage := StageOnboarding; stage <= StageWorld; stage++ {
		assert.NotEmpty(t, StageNames[stage])
	}
}

func TestItemsForStage(t *testing.T) {
	for stage := StageOnboarding; stage <= StageWorld; stage++ {
		assert.NotEmpty(t, ItemsForStage(stage), "stage %d", stage)
	}
	assert.Nil(t, ItemsForStage(0))
	assert.Nil(t, ItemsForStage(7))
}
