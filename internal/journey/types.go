package journey

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Profile is the canonical per-user journey record. CurrentStage is
// monotonically non-decreasing and is the single driver of displayed progress.
type Profile struct {
	Name               string `json:"name"`
	CurrentStage       int    `json:"current_stage"`
	OnboardingComplete bool   `json:"onboarding_complete"`
	JourneyProgress    int    `json:"journey_progress"`
	PointBClarity      int    `json:"point_b_clarity"`
}

// WheelScores holds the eight Wheel of Life areas, each 1-10 or 0 when
// unscored. Saved wholesale, never partially updated.
type WheelScores struct {
	Career        int `json:"career"`
	Health        int `json:"health"`
	Relationships int `json:"relationships"`
	Money         int `json:"money"`
	Growth        int `json:"growth"`
	Fun           int `json:"fun"`
	Environment   int `json:"environment"`
	Purpose       int `json:"purpose"`
}

// Scored reports whether any area has been scored yet.
func (w WheelScores) Scored() bool {
	return w.Career > 0 || w.Health > 0 || w.Relationships > 0 || w.Money > 0 ||
		w.Growth > 0 || w.Fun > 0 || w.Environment > 0 || w.Purpose > 0
}

// Checkin is one mood check-in row.
type Checkin struct {
	MoodScore int       `json:"mood_score"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// ReflectionEntry is one generated reflection, append-only per stage.
type ReflectionEntry struct {
	ID        uuid.UUID `json:"id"`
	Stage     int       `json:"stage"`
	Content   string    `json:"content"`
	Cycle     int       `json:"cycle"`
	CreatedAt time.Time `json:"created_at"`
}

// PlanWeek is one week of the generated roadmap plan.
type PlanWeek struct {
	Week       int      `json:"week"`
	Focus      string   `json:"focus"`
	Goal       string   `json:"goal"`
	Tasks      []string `json:"tasks"`
	Checkpoint string   `json:"checkpoint"`
}

// RoadmapPlan is the structured 4-week action plan generated once per
// stage-5 completion and consumed read-only afterward.
type RoadmapPlan struct {
	Theme        string     `json:"theme"`
	Weeks        []PlanWeek `json:"weeks"`
	DailyHabit   string     `json:"dailyHabit"`
	FirstDayTask string     `json:"firstDayTask"`
}

// UserData is the bulk-load result of the persistence gateway. Missing rows
// come back as nil pointers; the struct itself is always usable.
type UserData struct {
	Profile        *Profile
	WheelScores    *WheelScores
	AnswersByStage map[int]map[string]any
	ClarityByStage map[int]int
	Checkins       []Checkin
	RoadmapPlan    *RoadmapPlan
}

// Store is the persistence gateway the journey engine reads and writes
// through. Writes are best effort: callers log failures but never block user
// readiness on them. LoadUserData never fails; on any internal error it
// returns a zero-shaped UserData.
type Store interface {
	UpsertProfile(ctx context.Context, userID uuid.UUID, p Profile) error
	UpsertWheelScores(ctx context.Context, userID uuid.UUID, w WheelScores) error
	UpsertStageAnswers(ctx context.Context, userID uuid.UUID, stage int, answers map[string]any, clarity *int) error
	InsertReflection(ctx context.Context, userID uuid.UUID, stage int, content string) error
	InsertCheckin(ctx context.Context, userID uuid.UUID, moodScore int, note string) error
	ListReflections(ctx context.Context, userID uuid.UUID) ([]ReflectionEntry, error)
	SaveRoadmapPlan(ctx context.Context, userID uuid.UUID, plan RoadmapPlan) error
	LoadUserData(ctx context.Context, userID uuid.UUID) UserData
}

// Snapshot is the read-only view of a user's accumulated profile handed to
// the reflection generator for prompt assembly.
type Snapshot struct {
	Name           string
	Wheel          WheelScores
	AnswersByStage map[int]map[string]any
}

// GeneratedReflection is the outcome of one generation call. Raw is the
// model output as stored (citation marker included); Text and Frameworks are
// the parsed body and citation labels.
type GeneratedReflection struct {
	Raw        string
	Text       string
	Frameworks []string
}

// Generator produces reflection text and action plans from a profile
// snapshot. It may fail with a generic error; no partial results.
type Generator interface {
	GenerateReflection(ctx context.Context, snap Snapshot, stage int) (GeneratedReflection, error)
	GenerateActionPlan(ctx context.Context, snap Snapshot) (RoadmapPlan, error)
}
