package reflection

import (
	"context"

	"github.com/unmaphq/unmap-backend/internal/journey"
)

// Generator produces stage reflections and the roadmap plan through the
// Anthropic client.
type Generator struct {
	client *Client
}

var _ journey.Generator = (*Generator)(nil)

func NewGenerator(client *Client) *Generator {
	return &Generator{client: client}
}

var stageTasks = map[int]string{
	1: `TASK: Write a 3-5 sentence personalised reflection on where this person is right now. Reflect back the pattern in their wheel scores and what they actually said — use their words, not paraphrases. Name what's thriving, what's been sacrificed, and where the gap between current life and wanted life is widest.`,
	2: `TASK: Write a 3-5 sentence personalised reflection on what's been blocking this person. Name the pattern without diagnosing. Show them that given what they described, their blocks make complete sense — they are adapted, not broken. Reference their inner voice and past attempts directly.`,
	3: `TASK: Write a 3-5 sentence personalised reflection on who this person actually is. Connect their chosen values, what makes them feel alive, and what people come to them for into one coherent picture. Name the gap between who they perform as and who they actually are, using their own words.`,
	4: `TASK: Write a 3-5 sentence personalised reflection on the life this person just described. Treat the uncensored answers as the true signal. Make the vision feel real and theirs — quote the most alive phrases back to them. Bridge the 1-year picture to the 3-year picture.`,
	5: `TASK: Write a 3-5 sentence personalised reflection on how this person gets from here to there. Name the specific vehicle their skills and vision point to. Use their actual numbers to size the financial gap. End by honouring the first move they named and what's really been blocking it.`,
	6: `TASK: Recommend exactly 3 specific cities or regions that genuinely fit this person's climate, budget, pace and priorities. For each, give one or two sentences of real reasons that reference their actual answers. Close with a single sentence on what living in the right place would make easier.`,
}

const reflectionOutputFormat = `OUTPUT FORMAT: Plain text only. No bullet points. No labels. No markdown. No intro phrase like "Here is your reflection:".
Then, as the very last line, cite the frameworks you actually drew on in exactly this form:
---FRAMEWORKS: Framework Name, Framework Name`

const planTask = `TASK: Build a concrete 4-week action plan that moves this person toward the work and life they designed. Use their actual answers: their designed work, their skills, their numbers, their first move and its blocker. Week 1 must start with the first move they named. Every task must be small enough to do in a day.`

const planOutputFormat = `OUTPUT FORMAT: Respond with a single JSON object and nothing else. No markdown fences, no commentary. Exact shape:
{
  "theme": "one-line theme for the month",
  "weeks": [
    {"week": 1, "focus": "...", "goal": "...", "tasks": ["...", "...", "..."], "checkpoint": "..."}
  ],
  "dailyHabit": "one small daily habit",
  "firstDayTask": "the very first thing to do tomorrow"
}
Exactly 4 entries in "weeks", numbered 1 to 4, each with 3 to 5 tasks.`

// GenerateReflection produces the post-stage reflection. Raw keeps the
// citation marker exactly as the model emitted it; Text and Frameworks are
// the parsed halves.
func (g *Generator) GenerateReflection(ctx context.Context, snap journey.Snapshot, stage int) (journey.GeneratedReflection, error) {
	task, ok := stageTasks[stage]
	if !ok {
		task = stageTasks[1]
	}
	system := BuildSystemPrompt(snap, stage) + "\n\n" + task + "\n\n" + reflectionOutputFormat
	user := buildUserMessage(stage, journey.ItemsForStage(stage), snap.AnswersByStage[stage]) +
		"\nWrite the reflection now."

	raw, err := g.client.Complete(ctx, system, user)
	if err != nil {
		return journey.GeneratedReflection{}, err
	}

	parsed := ParseReflection(raw)
	return journey.GeneratedReflection{
		Raw:        raw,
		Text:       parsed.Text,
		Frameworks: parsed.Frameworks,
	}, nil
}

// GenerateActionPlan produces the structured 4-week roadmap from the
// stage-5 answers. A malformed response counts as a generation failure.
func (g *Generator) GenerateActionPlan(ctx context.Context, snap journey.Snapshot) (journey.RoadmapPlan, error) {
	system := BuildSystemPrompt(snap, 5) + "\n\n" + planTask + "\n\n" + planOutputFormat
	user := buildUserMessage(5, journey.ItemsForStage(5), snap.AnswersByStage[5]) +
		"\nBuild the plan now."

	raw, err := g.client.Complete(ctx, system, user)
	if err != nil {
		return journey.RoadmapPlan{}, err
	}

	plan, err := ParseActionPlan(raw)
	if err != nil {
		return journey.RoadmapPlan{}, ErrGenerationFailed
	}
	return plan, nil
}
