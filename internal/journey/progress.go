package journey

// Stage numbers. Stage 7 means all six stages are complete.
const (
	StageOnboarding = 1
	StageBlocks     = 2
	StageIdentity   = 3
	StagePointB     = 4
	StageRoadmap    = 5
	StageWorld      = 6
	StageDone       = 7
)

// StageNames maps each stage to its display name.
var StageNames = map[int]string{
	StageOnboarding: "Where Are You",
	StageBlocks:     "What Happened",
	StageIdentity:   "Who Are You",
	StagePointB:     "Where Do You Want To Be",
	StageRoadmap:    "How Do You Get There",
	StageWorld:      "Where In The World",
}

// stageFloor is the canonical stage → journey-progress table. Displayed
// progress is always derived from the current stage through this table;
// a stored value that disagrees is stale and gets corrected.
var stageFloor = map[int]int{
	1: 0,
	2: 17,
	3: 33,
	4: 50,
	5: 67,
	6: 83,
	7: 100,
}

// ProgressForStage returns the journey progress percentage for a stage.
// Total over all integers: stages below 1 map to 0, stages past 7 to 100.
func ProgressForStage(stage int) int {
	if stage < 1 {
		return 0
	}
	if stage >= StageDone {
		return 100
	}
	return stageFloor[stage]
}
