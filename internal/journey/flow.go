package journey

import (
	"strings"
	"sync"
)

// Flow drives one directed walk through a stage's ordered item list: a step
// cursor, the staged answers, and the completion/generation status. Answers
// stay local to the flow until the final step; only then is the whole set
// handed to the persistence gateway.
//
// All transitions are serialised under the mutex, so a rapid double submit
// cannot complete a stage twice or start two generations for one pass.
type Flow struct {
	mu sync.Mutex

	stage     int
	items     []Item
	stepIndex int
	answers   map[string]any

	completed  bool
	continued  bool
	generating bool
	reflection string
	frameworks []string
	genFailed  bool
}

// NewFlow returns a flow at step 0 with no answers staged.
func NewFlow(stage int, items []Item) *Flow {
	return &Flow{
		stage:   stage,
		items:   items,
		answers: make(map[string]any),
	}
}

// Stage returns the stage number this flow belongs to.
func (f *Flow) Stage() int { return f.stage }

// AdvanceResult reports what a single Advance call did.
type AdvanceResult struct {
	// Moved is false when the current item still needs an answer, or the
	// flow was already complete.
	Moved bool
	// CompletedNow is true exactly once per full pass: on the advance that
	// moved past the final item.
	CompletedNow bool
}

// Advance moves the cursor forward one item. Section breaks only need the
// confirm that this call represents. Advancing past the final item switches
// the flow to completion exactly once; further calls are no-ops.
func (f *Flow) Advance() AdvanceResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.completed {
		return AdvanceResult{}
	}
	if !f.answeredLocked(f.items[f.stepIndex]) {
		return AdvanceResult{}
	}

	f.stepIndex++
	if f.stepIndex >= len(f.items) {
		f.completed = true
		return AdvanceResult{Moved: true, CompletedNow: true}
	}
	return AdvanceResult{Moved: true}
}

// Back moves the cursor one item back. At step 0 the flow exits to the
// dashboard instead of going negative; the staged answers are kept.
func (f *Flow) Back() (exited bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.completed {
		return false
	}
	if f.stepIndex == 0 {
		return true
	}
	f.stepIndex--
	return false
}

// SetAnswer merges a single answer into the staged set. Values are taken as
// the UI sent them; only shape is checked, not content.
func (f *Flow) SetAnswer(id string, value any) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.completed {
		return false
	}
	for _, item := range f.items {
		if item.ID == id {
			f.answers[id] = value
			return true
		}
	}
	return false
}

// AnswersSnapshot returns a copy of the staged answers.
func (f *Flow) AnswersSnapshot() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]any, len(f.answers))
	for k, v := range f.answers {
		out[k] = v
	}
	return out
}

// Completed reports whether the flow has passed its final item.
func (f *Flow) Completed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.completed
}

// beginGeneration claims the right to run a reflection generation. Only one
// generation is in flight per flow, and a finished reflection is not
// regenerated unless retry is set.
func (f *Flow) beginGeneration(retry bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.completed || f.generating {
		return false
	}
	if f.reflection != "" && !retry {
		return false
	}
	f.generating = true
	f.genFailed = false
	return true
}

func (f *Flow) finishGeneration(text string, frameworks []string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generating = false
	if err != nil {
		f.genFailed = true
		return
	}
	f.reflection = text
	f.frameworks = frameworks
}

// markContinued claims the post-reflection continue transition. A second
// continue for the same pass is rejected rather than issuing another write.
func (f *Flow) markContinued() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.completed || f.continued {
		return false
	}
	f.continued = true
	return true
}

// FlowView is the wire representation of a flow's position.
type FlowView struct {
	Stage           int      `json:"stage"`
	StageName       string   `json:"stage_name"`
	StepIndex       int      `json:"step_index"`
	TotalSteps      int      `json:"total_steps"`
	PercentComplete float64  `json:"percent_complete"`
	Item            *Item    `json:"item,omitempty"`
	Completed       bool     `json:"completed"`
	Generating      bool     `json:"generating"`
	Reflection      string   `json:"reflection,omitempty"`
	Frameworks      []string `json:"frameworks,omitempty"`
	GenerationError bool     `json:"generation_error"`
	Exited          bool     `json:"exited,omitempty"`
	Moved           bool     `json:"moved"`
}

// View renders the flow's current position. The single-choice follow-up in
// the identity stage gets its options from the values picked earlier in the
// same flow.
func (f *Flow) View() FlowView {
	f.mu.Lock()
	defer f.mu.Unlock()

	v := FlowView{
		Stage:           f.stage,
		StageName:       StageNames[f.stage],
		StepIndex:       f.stepIndex,
		TotalSteps:      len(f.items),
		Completed:       f.completed,
		Generating:      f.generating,
		Reflection:      f.reflection,
		Frameworks:      f.frameworks,
		GenerationError: f.genFailed,
	}
	if f.completed {
		v.PercentComplete = 100
	} else {
		v.PercentComplete = float64(f.stepIndex) / float64(len(f.items)) * 100
		item := f.items[f.stepIndex]
		if item.Type == ItemSingleChoice && len(item.Options) == 0 {
			item.Options = stringSlice(f.answers["values"])
		}
		v.Item = &item
	}
	return v
}

func (f *Flow) answeredLocked(item Item) bool {
	val := f.answers[item.ID]
	switch item.Type {
	case ItemSectionBreak, ItemText:
		return true
	case ItemPills, ItemSingleChoice:
		s, _ := val.(string)
		return strings.TrimSpace(s) != ""
	case ItemMultiPills, ItemRank, ItemValuesPicker:
		picked := stringSlice(val)
		if item.MaxPick > 0 && len(picked) > item.MaxPick {
			return false
		}
		return len(picked) > 0
	case ItemSlider, ItemScale, ItemCurrency:
		return numeric(val) > 0
	default:
		return false
	}
}

// stringSlice normalises a JSON-decoded answer into a string list.
func stringSlice(val any) []string {
	switch v := val.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// numeric normalises a JSON-decoded answer into a float.
func numeric(val any) float64 {
	switch v := val.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}
