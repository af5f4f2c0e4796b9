package journey

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/unmaphq/unmap-backend/internal/background"
)

var (
	ErrUnknownStage     = errors.New("unknown stage")
	ErrStageNotComplete = errors.New("stage flow is not complete")
	ErrNoRoadmapAnswers = errors.New("complete stage 5 before generating a plan")
)

// Service owns the journey state machine for all live sessions: stage flows,
// the reconciliation engine, and the hand-off to the persistence and
// generation gateways. Canonical stage/progress/clarity writes all route
// through here; no other component touches those fields.
type Service struct {
	store    Store
	gen      Generator
	sessions *Sessions
}

func NewService(store Store, gen Generator) *Service {
	return &Service{
		store:    store,
		gen:      gen,
		sessions: NewSessions(),
	}
}

// StateView is the wire representation of a session's resolved state.
type StateView struct {
	Profile    Profile        `json:"profile"`
	Wheel      WheelScores    `json:"wheel_scores"`
	Checkins   []Checkin      `json:"checkins"`
	Plan       *RoadmapPlan   `json:"roadmap_plan,omitempty"`
	StageNames map[int]string `json:"stage_names"`
	Settled    bool           `json:"settled"`
}

// Bootstrap runs the reconciliation pass for a user: fetch remote state,
// merge with whatever the session already holds, repair the remote record
// when it is behind, and mark the session settled no matter what: a failed
// fetch must never leave the UI gated forever.
func (s *Service) Bootstrap(ctx context.Context, userID uuid.UUID) StateView {
	st := s.sessions.Get(userID)
	defer st.markSettled()

	data := s.store.LoadUserData(ctx, userID)
	remote := remoteFromData(data)

	profile := st.Profile()
	local := LocalProfile{Stage: profile.CurrentStage, Clarity: profile.PointBClarity}
	local.Clarity = clarityFloor(local, data)
	resolved := Merge(local, remote)
	st.hydrate(resolved, data)

	if needsRepair(resolved, remote) {
		// One coalesced write covers both the progress and clarity repair.
		repaired := st.Profile()
		background.Run("profile repair", func() error {
			return s.store.UpsertProfile(context.Background(), userID, repaired)
		})
		slog.Info("repairing stale remote profile",
			"user_id", userID, "stage", resolved.Stage,
			"progress", resolved.Progress, "clarity", resolved.Clarity)
	}

	return s.stateView(st)
}

// StateView returns the current session snapshot without reloading.
func (s *Service) StateView(userID uuid.UUID) StateView {
	return s.stateView(s.sessions.Get(userID))
}

func (s *Service) stateView(st *State) StateView {
	return StateView{
		Profile:    st.Profile(),
		Wheel:      st.Wheel(),
		Checkins:   st.Checkins(),
		Plan:       st.Plan(),
		StageNames: StageNames,
		Settled:    st.Settled(),
	}
}

// EndSession drops a user's in-memory state on sign-out.
func (s *Service) EndSession(userID uuid.UUID) {
	s.sessions.Drop(userID)
}

// FlowView returns the current position of a stage flow.
func (s *Service) FlowView(userID uuid.UUID, stage int) (FlowView, error) {
	fl := s.sessions.Get(userID).Flow(stage)
	if fl == nil {
		return FlowView{}, ErrUnknownStage
	}
	return fl.View(), nil
}

// SetAnswer merges one answer into a stage flow.
func (s *Service) SetAnswer(userID uuid.UUID, stage int, questionID string, value any) (FlowView, error) {
	fl := s.sessions.Get(userID).Flow(stage)
	if fl == nil {
		return FlowView{}, ErrUnknownStage
	}
	fl.SetAnswer(questionID, value)
	return fl.View(), nil
}

// Advance moves a stage flow forward. Reaching the end of the item list
// finalises the stage: the answer set is persisted wholesale (fire and
// forget) and reflection generation starts, exactly once per pass, no
// matter how fast the advance is re-sent.
func (s *Service) Advance(userID uuid.UUID, stage int) (FlowView, error) {
	st := s.sessions.Get(userID)
	fl := st.Flow(stage)
	if fl == nil {
		return FlowView{}, ErrUnknownStage
	}

	res := fl.Advance()
	if res.CompletedNow {
		s.completeStage(st, fl)
	}
	view := fl.View()
	view.Moved = res.Moved
	return view, nil
}

// Back moves a stage flow one step back; at step 0 it reports an exit to the
// dashboard instead.
func (s *Service) Back(userID uuid.UUID, stage int) (FlowView, error) {
	fl := s.sessions.Get(userID).Flow(stage)
	if fl == nil {
		return FlowView{}, ErrUnknownStage
	}
	exited := fl.Back()
	view := fl.View()
	view.Exited = exited
	return view, nil
}

// completeStage runs the boundary actions for a finished pass: derived
// metrics, the single persistence call, the single generation call. The
// answers write is issued before generation starts; both read the same
// in-memory snapshot.
func (s *Service) completeStage(st *State, fl *Flow) {
	stage := fl.Stage()
	answers := fl.AnswersSnapshot()

	var clarity *int
	if stage == StagePointB {
		c := CalcClarity(answers, PointBClarityFields)
		effective := st.RaiseClarity(c)
		clarity = &effective
	}
	st.SetStageAnswers(stage, answers)

	userID := st.UserID()
	background.Run("stage answers upsert", func() error {
		return s.store.UpsertStageAnswers(context.Background(), userID, stage, answers, clarity)
	})

	s.launchGeneration(st, fl, false)
}

// RetryReflection re-issues generation for a completed stage without
// touching persistence. Idempotent: a retry while one is in flight is a
// no-op.
func (s *Service) RetryReflection(userID uuid.UUID, stage int) (FlowView, error) {
	st := s.sessions.Get(userID)
	fl := st.Flow(stage)
	if fl == nil {
		return FlowView{}, ErrUnknownStage
	}
	if !fl.Completed() {
		return FlowView{}, ErrStageNotComplete
	}
	s.launchGeneration(st, fl, true)
	return fl.View(), nil
}

func (s *Service) launchGeneration(st *State, fl *Flow, retry bool) {
	if !fl.beginGeneration(retry) {
		return
	}
	stage := fl.Stage()
	userID := st.UserID()
	snap := st.Snapshot()

	// Deliberately detached from the request: if the user navigates away
	// the call completes and the result lands in the flow, or is discarded
	// with the session.
	go func() {
		gen, err := s.gen.GenerateReflection(context.Background(), snap, stage)
		fl.finishGeneration(gen.Text, gen.Frameworks, err)
		if err != nil {
			slog.Error("reflection generation failed", "user_id", userID, "stage", stage, "error", err)
			return
		}
		background.Run("reflection insert", func() error {
			return s.store.InsertReflection(context.Background(), userID, stage, gen.Raw)
		})
	}()
}

// Continue is the post-reflection advance: raise the canonical stage to at
// least stage+1, derive progress from the floor table, and push the profile
// in one write. Replay-safe: the written stage is max(old, new) both here
// and at the row level.
func (s *Service) Continue(userID uuid.UUID, stage int) (StateView, error) {
	st := s.sessions.Get(userID)
	fl := st.Flow(stage)
	if fl == nil {
		return StateView{}, ErrUnknownStage
	}
	if !fl.Completed() {
		return StateView{}, ErrStageNotComplete
	}

	if fl.markContinued() {
		profile := st.AdvanceStage(stage + 1)
		background.Run("profile upsert", func() error {
			return s.store.UpsertProfile(context.Background(), userID, profile)
		})
	}
	return s.stateView(st), nil
}

// SaveWheel overwrites the wheel scores wholesale and persists them.
func (s *Service) SaveWheel(userID uuid.UUID, w WheelScores) StateView {
	st := s.sessions.Get(userID)
	st.SetWheel(w)
	background.Run("wheel scores upsert", func() error {
		return s.store.UpsertWheelScores(context.Background(), userID, w)
	})
	return s.stateView(st)
}

// SetName updates the profile name and persists the profile.
func (s *Service) SetName(userID uuid.UUID, name string) StateView {
	st := s.sessions.Get(userID)
	st.SetName(name)
	profile := st.Profile()
	background.Run("profile upsert", func() error {
		return s.store.UpsertProfile(context.Background(), userID, profile)
	})
	return s.stateView(st)
}

// AddCheckin appends a mood check-in (append-only, best effort).
func (s *Service) AddCheckin(userID uuid.UUID, moodScore int, note string) StateView {
	st := s.sessions.Get(userID)
	st.AddCheckin(Checkin{MoodScore: moodScore, Note: note, CreatedAt: time.Now().UTC()})
	background.Run("checkin insert", func() error {
		return s.store.InsertCheckin(context.Background(), userID, moodScore, note)
	})
	return s.stateView(st)
}

// Reflections returns the append-only reflection history from the store.
func (s *Service) Reflections(ctx context.Context, userID uuid.UUID) ([]ReflectionEntry, error) {
	return s.store.ListReflections(ctx, userID)
}

// GeneratePlan produces the 4-week roadmap plan from the stage-5 answers.
// The plan is generated once; later calls return the stored plan.
func (s *Service) GeneratePlan(ctx context.Context, userID uuid.UUID) (*RoadmapPlan, error) {
	st := s.sessions.Get(userID)
	if existing := st.Plan(); existing != nil {
		return existing, nil
	}
	snap := st.Snapshot()
	if len(snap.AnswersByStage[StageRoadmap]) == 0 {
		return nil, ErrNoRoadmapAnswers
	}

	plan, err := s.gen.GenerateActionPlan(ctx, snap)
	if err != nil {
		return nil, err
	}
	if st.SetPlan(plan) {
		background.Run("roadmap plan save", func() error {
			return s.store.SaveRoadmapPlan(context.Background(), userID, plan)
		})
	}
	return st.Plan(), nil
}

// Plan returns the stored roadmap plan, if any.
func (s *Service) Plan(userID uuid.UUID) *RoadmapPlan {
	return s.sessions.Get(userID).Plan()
}

// Resync pushes the full session state to the store through the ordinary
// gateway calls, the maintenance operation that replaces a console-driven
// side channel.
func (s *Service) Resync(ctx context.Context, userID uuid.UUID) StateView {
	st := s.sessions.Get(userID)
	profile := st.Profile()
	snap := st.Snapshot()

	background.Run("resync profile", func() error {
		return s.store.UpsertProfile(context.Background(), userID, profile)
	})
	if snap.Wheel.Scored() {
		wheel := snap.Wheel
		background.Run("resync wheel", func() error {
			return s.store.UpsertWheelScores(context.Background(), userID, wheel)
		})
	}
	for stage, answers := range snap.AnswersByStage {
		stage, answers := stage, answers
		background.Run("resync stage answers", func() error {
			return s.store.UpsertStageAnswers(context.Background(), userID, stage, answers, nil)
		})
	}
	return s.stateView(st)
}
