package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/unmaphq/unmap-backend/internal/journey"
)

// Store is the GORM-backed implementation of the journey persistence
// gateway.
type Store struct {
	db *gorm.DB
}

var _ journey.Store = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// UpsertProfile writes the profile row. On conflict the stage, progress and
// clarity columns take the greater of the stored and incoming values, so a
// stale writer can never regress a fresher row.
func (s *Store) UpsertProfile(ctx context.Context, userID uuid.UUID, p journey.Profile) error {
	row := ProfileRow{
		UserID:             userID,
		Name:               p.Name,
		CurrentStage:       p.CurrentStage,
		OnboardingComplete: p.OnboardingComplete,
		JourneyProgress:    p.JourneyProgress,
		PointBClarity:      p.PointBClarity,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"name":                p.Name,
			"current_stage":       gorm.Expr("GREATEST(profiles.current_stage, EXCLUDED.current_stage)"),
			"journey_progress":    gorm.Expr("GREATEST(profiles.journey_progress, EXCLUDED.journey_progress)"),
			"point_b_clarity":     gorm.Expr("GREATEST(profiles.point_b_clarity, EXCLUDED.point_b_clarity)"),
			"onboarding_complete": gorm.Expr("profiles.onboarding_complete OR EXCLUDED.onboarding_complete"),
			"updated_at":          gorm.Expr("NOW()"),
		}),
	}).Create(&row).Error
}

// UpsertWheelScores overwrites the wheel row wholesale.
func (s *Store) UpsertWheelScores(ctx context.Context, userID uuid.UUID, w journey.WheelScores) error {
	row := WheelScoreRow{
		UserID:        userID,
		Career:        w.Career,
		Health:        w.Health,
		Relationships: w.Relationships,
		Money:         w.Money,
		Growth:        w.Growth,
		Fun:           w.Fun,
		Environment:   w.Environment,
		Purpose:       w.Purpose,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(&row).Error
}

// UpsertStageAnswers stores the finalised answer set for one stage. Repeat
// completions replace the previous answers for that stage.
func (s *Store) UpsertStageAnswers(ctx context.Context, userID uuid.UUID, stage int, answers map[string]any, clarity *int) error {
	raw, err := json.Marshal(answers)
	if err != nil {
		return err
	}
	row := StageAnswerRow{
		UserID:        userID,
		Stage:         stage,
		Answers:       raw,
		PointBClarity: clarity,
	}
	assignments := map[string]interface{}{
		"answers":    raw,
		"updated_at": gorm.Expr("NOW()"),
	}
	if clarity != nil {
		assignments["point_b_clarity"] = *clarity
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "stage"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(&row).Error
}

// InsertReflection appends a reflection for the stage, numbering it one past
// the user's existing count for that stage.
func (s *Store) InsertReflection(ctx context.Context, userID uuid.UUID, stage int, content string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prior int64
		if err := tx.Model(&ReflectionRow{}).
			Where("user_id = ? AND stage = ?", userID, stage).
			Count(&prior).Error; err != nil {
			return err
		}
		row := ReflectionRow{
			UserID:  userID,
			Stage:   stage,
			Content: content,
			Cycle:   int(prior) + 1,
		}
		return tx.Create(&row).Error
	})
}

func (s *Store) InsertCheckin(ctx context.Context, userID uuid.UUID, moodScore int, note string) error {
	row := CheckinRow{
		UserID:    userID,
		MoodScore: moodScore,
		Note:      note,
	}
	return s.db.WithContext(ctx).Create(&row).Error
}

// ListReflections returns the user's reflections newest first.
func (s *Store) ListReflections(ctx context.Context, userID uuid.UUID) ([]journey.ReflectionEntry, error) {
	var rows []ReflectionRow
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := make([]journey.ReflectionEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, journey.ReflectionEntry{
			ID:        r.ID,
			Stage:     r.Stage,
			Content:   r.Content,
			Cycle:     r.Cycle,
			CreatedAt: r.CreatedAt,
		})
	}
	return entries, nil
}

// SaveRoadmapPlan stores the generated plan on the profile row, creating the
// row if the user has no profile yet.
func (s *Store) SaveRoadmapPlan(ctx context.Context, userID uuid.UUID, plan journey.RoadmapPlan) error {
	raw, err := json.Marshal(plan)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Model(&ProfileRow{}).
		Where("user_id = ?", userID).
		Update("roadmap_plan", raw)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		row := ProfileRow{UserID: userID, CurrentStage: 1, RoadmapPlan: raw}
		return s.db.WithContext(ctx).Create(&row).Error
	}
	return nil
}

// LoadUserData bulk-loads everything the journey engine needs to hydrate a
// session. It never fails: any read error is logged and the corresponding
// slice or pointer comes back empty, leaving the caller with local-first
// defaults.
func (s *Store) LoadUserData(ctx context.Context, userID uuid.UUID) journey.UserData {
	data := journey.UserData{
		AnswersByStage: map[int]map[string]any{},
		ClarityByStage: map[int]int{},
	}

	var profile ProfileRow
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	switch {
	case err == nil:
		data.Profile = &journey.Profile{
			Name:               profile.Name,
			CurrentStage:       profile.CurrentStage,
			OnboardingComplete: profile.OnboardingComplete,
			JourneyProgress:    profile.JourneyProgress,
			PointBClarity:      profile.PointBClarity,
		}
		if len(profile.RoadmapPlan) > 0 {
			var plan journey.RoadmapPlan
			if jsonErr := json.Unmarshal(profile.RoadmapPlan, &plan); jsonErr == nil && plan.Theme != "" {
				data.RoadmapPlan = &plan
			}
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		slog.Error("load profile failed", "user_id", userID, "error", err)
	}

	var wheel WheelScoreRow
	err = s.db.WithContext(ctx).Where("user_id = ?", userID).First(&wheel).Error
	switch {
	case err == nil:
		data.WheelScores = &journey.WheelScores{
			Career:        wheel.Career,
			Health:        wheel.Health,
			Relationships: wheel.Relationships,
			Money:         wheel.Money,
			Growth:        wheel.Growth,
			Fun:           wheel.Fun,
			Environment:   wheel.Environment,
			Purpose:       wheel.Purpose,
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		slog.Error("load wheel scores failed", "user_id", userID, "error", err)
	}

	var answerRows []StageAnswerRow
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&answerRows).Error; err != nil {
		slog.Error("load stage answers failed", "user_id", userID, "error", err)
	} else {
		for _, r := range answerRows {
			answers := map[string]any{}
			if len(r.Answers) > 0 {
				if jsonErr := json.Unmarshal(r.Answers, &answers); jsonErr != nil {
					slog.Warn("corrupt stage answers skipped", "user_id", userID, "stage", r.Stage, "error", jsonErr)
					continue
				}
			}
			data.AnswersByStage[r.Stage] = answers
			if r.PointBClarity != nil {
				data.ClarityByStage[r.Stage] = *r.PointBClarity
			}
		}
	}

	var checkinRows []CheckinRow
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(60).
		Find(&checkinRows).Error; err != nil {
		slog.Error("load checkins failed", "user_id", userID, "error", err)
	} else {
		for _, r := range checkinRows {
			data.Checkins = append(data.Checkins, journey.Checkin{
				MoodScore: r.MoodScore,
				Note:      r.Note,
				CreatedAt: r.CreatedAt,
			})
		}
	}

	return data
}
