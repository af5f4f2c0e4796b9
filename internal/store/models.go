package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ProfileRow is the canonical per-user journey record. current_stage and the
// derived fields only ever move up; the upsert enforces that at the row
// level with GREATEST so racing writers converge.
type ProfileRow struct {
	UserID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"user_id"`
	Name               string         `gorm:"size:120" json:"name"`
	CurrentStage       int            `gorm:"default:1" json:"current_stage"`
	OnboardingComplete bool           `gorm:"default:false" json:"onboarding_complete"`
	JourneyProgress    int            `gorm:"default:0" json:"journey_progress"`
	PointBClarity      int            `gorm:"default:0" json:"point_b_clarity"`
	RoadmapPlan        datatypes.JSON `gorm:"type:jsonb" json:"roadmap_plan"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

func (ProfileRow) TableName() string { return "profiles" }

// WheelScoreRow holds the eight Wheel of Life areas, overwritten wholesale.
type WheelScoreRow struct {
	UserID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Career        int       `gorm:"default:0" json:"career"`
	Health        int       `gorm:"default:0" json:"health"`
	Relationships int       `gorm:"default:0" json:"relationships"`
	Money         int       `gorm:"default:0" json:"money"`
	Growth        int       `gorm:"default:0" json:"growth"`
	Fun           int       `gorm:"default:0" json:"fun"`
	Environment   int       `gorm:"default:0" json:"environment"`
	Purpose       int       `gorm:"default:0" json:"purpose"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (WheelScoreRow) TableName() string { return "wheel_scores" }

// StageAnswerRow is one stage's finalised answer set, idempotent on
// (user_id, stage). PointBClarity is the stage-4 side channel.
type StageAnswerRow struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_stage_answers_user_stage" json:"user_id"`
	Stage         int            `gorm:"not null;uniqueIndex:idx_stage_answers_user_stage" json:"stage"`
	Answers       datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"answers"`
	PointBClarity *int           `json:"point_b_clarity,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (StageAnswerRow) TableName() string { return "stage_answers" }

// ReflectionRow is append-only: a user revisiting a stage accumulates rows
// with an increasing cycle counter.
type ReflectionRow struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Stage     int       `gorm:"not null" json:"stage"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Cycle     int       `gorm:"not null;default:1" json:"cycle"`
	CreatedAt time.Time `json:"created_at"`
}

func (ReflectionRow) TableName() string { return "reflections" }

// CheckinRow is one mood check-in, append-only.
type CheckinRow struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	MoodScore int       `gorm:"not null" json:"mood_score"`
	Note      string    `gorm:"type:text" json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

func (CheckinRow) TableName() string { return "checkins" }

// Models returns the GORM model pointers for AutoMigrate.
func Models() []interface{} {
	return []interface{}{
		&ProfileRow{},
		&WheelScoreRow{},
		&StageAnswerRow{},
		&ReflectionRow{},
		&CheckinRow{},
	}
}
