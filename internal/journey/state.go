package journey

import (
	"sync"

	"github.com/google/uuid"
)

// State is the per-user application state: the working copy of the profile,
// wheel scores, per-stage answers and flows for one authenticated session.
// It is constructed at session start and dropped at sign-out. All reads see
// consistent snapshots; updates replace values under the lock, never expose
// partial mutations.
type State struct {
	mu sync.RWMutex

	userID   uuid.UUID
	profile  Profile
	wheel    WheelScores
	answers  map[int]map[string]any
	checkins []Checkin
	plan     *RoadmapPlan
	settled  bool

	flows map[int]*Flow
}

// NewState returns a fresh session state for a user who has no data loaded
// yet: stage 1, zero progress, nothing settled.
func NewState(userID uuid.UUID) *State {
	return &State{
		userID: userID,
		profile: Profile{
			CurrentStage: StageOnboarding,
		},
		answers: make(map[int]map[string]any),
		flows:   make(map[int]*Flow),
	}
}

func (s *State) UserID() uuid.UUID { return s.userID }

// Profile returns a copy of the current profile.
func (s *State) Profile() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Settled reports whether the reconciliation engine has finished its
// bootstrap pass (successfully or not).
func (s *State) Settled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settled
}

func (s *State) markSettled() {
	s.mu.Lock()
	s.settled = true
	s.mu.Unlock()
}

// Flow returns the flow controller for a stage, creating it on first use.
// Returns nil for stages without an item list.
func (s *State) Flow(stage int) *Flow {
	items := ItemsForStage(stage)
	if items == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fl, ok := s.flows[stage]
	if !ok {
		fl = NewFlow(stage, items)
		s.flows[stage] = fl
	}
	return fl
}

// Wheel returns a copy of the current wheel scores.
func (s *State) Wheel() WheelScores {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wheel
}

// SetWheel replaces the wheel scores wholesale.
func (s *State) SetWheel(w WheelScores) {
	s.mu.Lock()
	s.wheel = w
	s.mu.Unlock()
}

// SetName updates the display name on the profile.
func (s *State) SetName(name string) {
	s.mu.Lock()
	s.profile.Name = name
	s.mu.Unlock()
}

// SetStageAnswers stores a completed stage's answer set. Stage answers are
// written wholesale at completion, never partially mid-flow.
func (s *State) SetStageAnswers(stage int, answers map[string]any) {
	s.mu.Lock()
	s.answers[stage] = answers
	s.mu.Unlock()
}

// RaiseClarity lifts the point B clarity score, never lowering it.
func (s *State) RaiseClarity(clarity int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if clarity > s.profile.PointBClarity {
		s.profile.PointBClarity = clarity
	}
	return s.profile.PointBClarity
}

// AdvanceStage raises the current stage to at least next and derives the
// journey progress from the floor table. Returns the resulting profile.
// Replayable: a stale call can never lower the stage.
func (s *State) AdvanceStage(next int) Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if next > s.profile.CurrentStage {
		s.profile.CurrentStage = next
	}
	if s.profile.CurrentStage > StageOnboarding {
		s.profile.OnboardingComplete = true
	}
	s.profile.JourneyProgress = ProgressForStage(s.profile.CurrentStage)
	return s.profile
}

// AddCheckin appends a mood check-in to the session copy.
func (s *State) AddCheckin(c Checkin) {
	s.mu.Lock()
	s.checkins = append(s.checkins, c)
	s.mu.Unlock()
}

// Checkins returns a copy of the check-in history.
func (s *State) Checkins() []Checkin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Checkin, len(s.checkins))
	copy(out, s.checkins)
	return out
}

// Plan returns the stored roadmap plan, or nil if none was generated yet.
func (s *State) Plan() *RoadmapPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.plan == nil {
		return nil
	}
	p := *s.plan
	return &p
}

// SetPlan stores the generated roadmap plan if none exists yet and reports
// whether it was stored. The plan is produced once per stage-5 completion.
func (s *State) SetPlan(p RoadmapPlan) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.plan != nil {
		return false
	}
	s.plan = &p
	return true
}

// Snapshot assembles the read-only view used for prompt building.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byStage := make(map[int]map[string]any, len(s.answers))
	for stage, ans := range s.answers {
		m := make(map[string]any, len(ans))
		for k, v := range ans {
			m[k] = v
		}
		byStage[stage] = m
	}
	return Snapshot{
		Name:           s.profile.Name,
		Wheel:          s.wheel,
		AnswersByStage: byStage,
	}
}

// hydrate applies reconciled remote data to the session state. Merge fields
// (stage, progress, clarity) come pre-resolved; onboarding ORs with the
// session so a stale remote cannot un-complete it, and a name already set
// this session survives a remote record that has none yet.
func (s *State) hydrate(resolved Resolved, data UserData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if data.Profile != nil {
		if data.Profile.Name != "" {
			s.profile.Name = data.Profile.Name
		}
		s.profile.OnboardingComplete = s.profile.OnboardingComplete || data.Profile.OnboardingComplete
	}
	s.profile.CurrentStage = resolved.Stage
	s.profile.JourneyProgress = resolved.Progress
	s.profile.PointBClarity = resolved.Clarity

	if data.WheelScores != nil {
		s.wheel = *data.WheelScores
	}
	for stage, ans := range data.AnswersByStage {
		if _, exists := s.answers[stage]; !exists {
			s.answers[stage] = ans
		}
	}
	if len(data.Checkins) > 0 {
		s.checkins = data.Checkins
	}
	if data.RoadmapPlan != nil && s.plan == nil {
		s.plan = data.RoadmapPlan
	}
}

// Sessions owns the live per-user states. Explicit lifecycle: a session is
// created on bootstrap and dropped on sign-out, so tests can run isolated
// instances side by side.
type Sessions struct {
	mu     sync.Mutex
	states map[uuid.UUID]*State
}

func NewSessions() *Sessions {
	return &Sessions{states: make(map[uuid.UUID]*State)}
}

// Get returns the live state for a user, creating one on first use.
func (m *Sessions) Get(userID uuid.UUID) *State {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.states[userID]
	if !ok {
		st = NewState(userID)
		m.states[userID] = st
	}
	return st
}

// Drop tears down a user's session state.
func (m *Sessions) Drop(userID uuid.UUID) {
	m.mu.Lock()
	delete(m.states, userID)
	m.mu.Unlock()
}
