package journey

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stageWrite struct {
	stage   int
	answers map[string]any
	clarity *int
}

type fakeStore struct {
	mu          sync.Mutex
	data        UserData
	profiles    []Profile
	wheels      []WheelScores
	stageWrites []stageWrite
	reflections []string
	checkins    []Checkin
	plans       []RoadmapPlan
}

func (f *fakeStore) UpsertProfile(_ context.Context, _ uuid.UUID, p Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles = append(f.profiles, p)
	return nil
}

func (f *fakeStore) UpsertWheelScores(_ context.Context, _ uuid.UUID, w WheelScores) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.wheels = append(f.wheels, w)
	return nil
}

func (f *fakeStore) UpsertStageAnswers(_ context.Context, _ uuid.UUID, stage int, answers map[string]any, clarity *int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stageWrites = append(f.stageWrites, stageWrite{stage: stage, answers: answers, clarity: clarity})
	return nil
}

func (f *fakeStore) InsertReflection(_ context.Context, _ uuid.UUID, _ int, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reflections = append(f.reflections, content)
	return nil
}

func (f *fakeStore) InsertCheckin(_ context.Context, _ uuid.UUID, moodScore int, note string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checkins = append(f.checkins, Checkin{MoodScore: moodScore, Note: note})
	return nil
}

func (f *fakeStore) ListReflections(_ context.Context, _ uuid.UUID) ([]ReflectionEntry, error) {
	return nil, nil
}

func (f *fakeStore) SaveRoadmapPlan(_ context.Context, _ uuid.UUID, plan RoadmapPlan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plans = append(f.plans, plan)
	return nil
}

func (f *fakeStore) LoadUserData(_ context.Context, _ uuid.UUID) UserData {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data
}

func (f *fakeStore) profileWrites() []Profile {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Profile(nil), f.profiles...)
}

func (f *fakeStore) answerWrites() []stageWrite {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]stageWrite(nil), f.stageWrites...)
}

func (f *fakeStore) reflectionWrites() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.reflections...)
}

type fakeGenerator struct {
	mu       sync.Mutex
	calls    int
	failNext bool
}

func (g *fakeGenerator) GenerateReflection(_ context.Context, _ Snapshot, _ int) (GeneratedReflection, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.failNext {
		g.failNext = false
		return GeneratedReflection{}, errors.New("generation failed")
	}
	return GeneratedReflection{
		Raw:        "You said it yourself.\n---FRAMEWORKS: Wheel of Life",
		Text:       "You said it yourself.",
		Frameworks: []string{"Wheel of Life"},
	}, nil
}

func (g *fakeGenerator) GenerateActionPlan(_ context.Context, _ Snapshot) (RoadmapPlan, error) {
	return RoadmapPlan{
		Theme:        "Make it real",
		Weeks:        []PlanWeek{{Week: 1, Focus: "start", Goal: "send it", Tasks: []string{"do the thing"}, Checkpoint: "done"}},
		DailyHabit:   "ship something small",
		FirstDayTask: "send the first message",
	}, nil
}

func (g *fakeGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func completeOnboarding(t *testing.T, svc *Service, userID uuid.UUID) {
	t.Helper()
	answers := map[string]any{
		"reason":       "Feeling stuck",
		"satisfaction": float64(4),
		"stuckArea":    []any{"Career"},
		"freedom":      "waking up without an alarm",
		"readiness":    float64(3),
	}
	for id, v := range answers {
		_, err := svc.SetAnswer(userID, StageOnboarding, id, v)
		require.NoError(t, err)
	}
	for i := 0; i < len(ItemsForStage(StageOnboarding)); i++ {
		_, err := svc.Advance(userID, StageOnboarding)
		require.NoError(t, err)
	}
}

func eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	assert.Eventually(t, cond, 2*time.Second, 5*time.Millisecond, msg)
}

func TestBootstrapRepairsStaleRemote(t *testing.T) {
	// The end-to-end write-lag scenario: stage 1 completed on this device,
	// but the profile write never landed; remote still says {stage 1,
	// progress 0}. Reconciliation must resolve to {2, 17} and push the
	// correction.
	store := &fakeStore{data: UserData{Profile: &Profile{CurrentStage: 1, JourneyProgress: 0}}}
	gen := &fakeGenerator{}
	svc := NewService(store, gen)
	userID := uuid.New()

	completeOnboarding(t, svc, userID)
	_, err := svc.Continue(userID, StageOnboarding)
	require.NoError(t, err)

	view := svc.Bootstrap(context.Background(), userID)
	assert.Equal(t, 2, view.Profile.CurrentStage)
	assert.Equal(t, 17, view.Profile.JourneyProgress)
	assert.True(t, view.Settled)

	eventually(t, func() bool {
		for _, p := range store.profileWrites() {
			if p.CurrentStage == 2 && p.JourneyProgress == 17 {
				return true
			}
		}
		return false
	}, "repair write must land")
}

func TestBootstrapSettlesOnEmptyRemote(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, &fakeGenerator{})
	userID := uuid.New()

	view := svc.Bootstrap(context.Background(), userID)
	assert.True(t, view.Settled)
	assert.Equal(t, 1, view.Profile.CurrentStage)
	assert.Equal(t, 0, view.Profile.JourneyProgress)

	// A brand-new user triggers no repair write.
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, store.profileWrites())
}

func TestBootstrapHydratesRemoteState(t *testing.T) {
	store := &fakeStore{data: UserData{
		Profile:     &Profile{Name: "Mara", CurrentStage: 4, JourneyProgress: 50, PointBClarity: 60, OnboardingComplete: true},
		WheelScores: &WheelScores{Career: 5, Health: 7},
		AnswersByStage: map[int]map[string]any{
			1: {"reason": "Feeling stuck"},
		},
		ClarityByStage: map[int]int{4: 60},
	}}
	svc := NewService(store, &fakeGenerator{})
	userID := uuid.New()

	view := svc.Bootstrap(context.Background(), userID)
	assert.Equal(t, "Mara", view.Profile.Name)
	assert.Equal(t, 4, view.Profile.CurrentStage)
	assert.Equal(t, 60, view.Profile.PointBClarity)
	assert.Equal(t, 5, view.Wheel.Career)
}

func TestBootstrapKeepsOnboardingAndName(t *testing.T) {
	// Stage 1 was completed and continued this session, but the remote
	// record still shows the pre-completion state. Stage and progress
	// already merge correctly; onboarding_complete and a just-set name
	// must not be pulled back either.
	store := &fakeStore{data: UserData{Profile: &Profile{CurrentStage: 1, OnboardingComplete: false}}}
	svc := NewService(store, &fakeGenerator{})
	userID := uuid.New()

	svc.SetName(userID, "Mara")
	completeOnboarding(t, svc, userID)
	_, err := svc.Continue(userID, StageOnboarding)
	require.NoError(t, err)
	require.True(t, svc.StateView(userID).Profile.OnboardingComplete)

	view := svc.Bootstrap(context.Background(), userID)
	assert.True(t, view.Profile.OnboardingComplete, "stale remote must not un-complete onboarding")
	assert.Equal(t, "Mara", view.Profile.Name, "stale remote must not wipe the name")
	assert.Equal(t, 2, view.Profile.CurrentStage)
}

func TestBootstrapClarityFromStageAnswers(t *testing.T) {
	// Older remote record: the profile row predates the clarity column but
	// the stage-4 answer row carries the score.
	store := &fakeStore{data: UserData{
		Profile:        &Profile{CurrentStage: 4, JourneyProgress: 50},
		ClarityByStage: map[int]int{StagePointB: 60},
	}}
	svc := NewService(store, &fakeGenerator{})

	view := svc.Bootstrap(context.Background(), uuid.New())
	assert.Equal(t, 60, view.Profile.PointBClarity)

	// The column undercounts, so a repair write must push the correction.
	eventually(t, func() bool {
		for _, p := range store.profileWrites() {
			if p.PointBClarity == 60 {
				return true
			}
		}
		return false
	}, "clarity repair write must land")
}

func TestStageCompletionPersistsAndGeneratesOnce(t *testing.T) {
	store := &fakeStore{}
	gen := &fakeGenerator{}
	svc := NewService(store, gen)
	userID := uuid.New()

	completeOnboarding(t, svc, userID)

	// Hammer the advance a few more times; nothing further may fire.
	for i := 0; i < 5; i++ {
		_, err := svc.Advance(userID, StageOnboarding)
		require.NoError(t, err)
	}

	eventually(t, func() bool { return len(store.answerWrites()) == 1 }, "one answers write")
	eventually(t, func() bool { return len(store.reflectionWrites()) == 1 }, "one reflection insert")
	assert.Equal(t, 1, gen.callCount())

	// The stored reflection keeps the citation marker; the view shows the
	// parsed text.
	assert.Contains(t, store.reflectionWrites()[0], "---FRAMEWORKS:")
	view, err := svc.FlowView(userID, StageOnboarding)
	require.NoError(t, err)
	assert.Equal(t, "You said it yourself.", view.Reflection)
	assert.Equal(t, []string{"Wheel of Life"}, view.Frameworks)
}

func TestRetryReflectionDoesNotRePersist(t *testing.T) {
	store := &fakeStore{}
	gen := &fakeGenerator{failNext: true}
	svc := NewService(store, gen)
	userID := uuid.New()

	completeOnboarding(t, svc, userID)

	eventually(t, func() bool {
		v, _ := svc.FlowView(userID, StageOnboarding)
		return v.GenerationError
	}, "first generation fails")
	assert.Empty(t, store.reflectionWrites())

	_, err := svc.RetryReflection(userID, StageOnboarding)
	require.NoError(t, err)

	eventually(t, func() bool {
		v, _ := svc.FlowView(userID, StageOnboarding)
		return v.Reflection != ""
	}, "retry succeeds")

	eventually(t, func() bool { return len(store.reflectionWrites()) == 1 }, "one reflection row")
	assert.Len(t, store.answerWrites(), 1, "retry must not re-write answers")
	assert.Equal(t, 2, gen.callCount())
}

func TestRetryRequiresCompletedStage(t *testing.T) {
	svc := NewService(&fakeStore{}, &fakeGenerator{})
	_, err := svc.RetryReflection(uuid.New(), StageOnboarding)
	assert.ErrorIs(t, err, ErrStageNotComplete)
}

func TestContinueAdvancesOnce(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, &fakeGenerator{})
	userID := uuid.New()

	completeOnboarding(t, svc, userID)

	view, err := svc.Continue(userID, StageOnboarding)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Profile.CurrentStage)
	assert.Equal(t, 17, view.Profile.JourneyProgress)
	assert.True(t, view.Profile.OnboardingComplete)

	// Replayed continue: same state, no second profile write.
	view, err = svc.Continue(userID, StageOnboarding)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Profile.CurrentStage)

	eventually(t, func() bool { return len(store.profileWrites()) == 1 }, "single profile write")
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, store.profileWrites(), 1)
}

func TestContinueRequiresCompletedStage(t *testing.T) {
	svc := NewService(&fakeStore{}, &fakeGenerator{})
	_, err := svc.Continue(uuid.New(), StageOnboarding)
	assert.ErrorIs(t, err, ErrStageNotComplete)
}

func TestUnknownStageRejected(t *testing.T) {
	svc := NewService(&fakeStore{}, &fakeGenerator{})
	userID := uuid.New()

	_, err := svc.FlowView(userID, 0)
	assert.ErrorIs(t, err, ErrUnknownStage)
	_, err = svc.Advance(userID, 9)
	assert.ErrorIs(t, err, ErrUnknownStage)
}

func TestPointBCompletionRaisesClarity(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, &fakeGenerator{})
	userID := uuid.New()

	long := "a detailed answer that is clearly longer than sixty characters in total"
	for _, field := range PointBClarityFields {
		_, err := svc.SetAnswer(userID, StagePointB, field, long)
		require.NoError(t, err)
	}
	for i := 0; i < len(ItemsForStage(StagePointB)); i++ {
		_, err := svc.Advance(userID, StagePointB)
		require.NoError(t, err)
	}

	eventually(t, func() bool { return len(store.answerWrites()) == 1 }, "answers write")
	write := store.answerWrites()[0]
	assert.Equal(t, StagePointB, write.stage)
	require.NotNil(t, write.clarity)
	assert.Equal(t, 100, *write.clarity)

	assert.Equal(t, 100, svc.StateView(userID).Profile.PointBClarity)
}

func TestGeneratePlanOncePerCompletion(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, &fakeGenerator{})
	userID := uuid.New()

	_, err := svc.GeneratePlan(context.Background(), userID)
	assert.ErrorIs(t, err, ErrNoRoadmapAnswers)

	// Minimal stage-5 flow: stage answers in session without the full walk.
	st := svc.sessions.Get(userID)
	st.SetStageAnswers(StageRoadmap, map[string]any{"firstStep": "send one message"})

	plan, err := svc.GeneratePlan(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Make it real", plan.Theme)

	again, err := svc.GeneratePlan(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, plan, again, "second call returns the stored plan")

	eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return len(store.plans) == 1
	}, "plan saved once")
}

func TestEndSessionDropsState(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, &fakeGenerator{})
	userID := uuid.New()

	svc.SetName(userID, "Mara")
	assert.Equal(t, "Mara", svc.StateView(userID).Profile.Name)

	svc.EndSession(userID)
	assert.Empty(t, svc.StateView(userID).Profile.Name)
}

func TestResyncPushesEverything(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, &fakeGenerator{})
	userID := uuid.New()

	svc.SetName(userID, "Mara")
	svc.SaveWheel(userID, WheelScores{Career: 5, Health: 7, Relationships: 6, Money: 4, Growth: 8, Fun: 5, Environment: 6, Purpose: 3})
	completeOnboarding(t, svc, userID)

	svc.Resync(context.Background(), userID)

	eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return len(store.profiles) >= 2 && len(store.wheels) >= 2 && len(store.stageWrites) >= 2
	}, "resync re-pushes profile, wheel and stage answers")
}

func TestAddCheckin(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, &fakeGenerator{})
	userID := uuid.New()

	view := svc.AddCheckin(userID, 7, "good day")
	require.Len(t, view.Checkins, 1)
	assert.Equal(t, 7, view.Checkins[0].MoodScore)

	eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return len(store.checkins) == 1
	}, "checkin persisted")
}
