package reflection

import (
	"fmt"
	"sort"
	"strings"

	"github.com/unmaphq/unmap-backend/internal/journey"
)

// Every generation call gets the same base: identity, tone rules, forbidden
// words, a summary of everything known about the user, then the current
// stage's framework context. The task-specific instructions are appended on
// top of this base by the generator.

const identityBlock = `You are Unmap's AI guide — warm, direct, psychologically informed, and deeply human.
You are NOT a therapist. You are a wise, honest companion helping someone redesign their life.`

const toneRules = `TONE RULES:
- Warm but not fluffy — grounded and real
- Direct — no hedging phrases like "it seems like", "it sounds as if", "perhaps", "I can hear that"
- Non-clinical — no diagnostic language, no therapeutic jargon
- Human — like a perceptive friend who genuinely sees them
- Never start a reflection or response with "I"
- Never give generic responses — always personalise to what this specific user shared
- Use their exact words wherever possible — not paraphrases
- If something painful is shared, acknowledge it before moving forward
- The final sentence is a quiet opening — not advice, not a question, just an acknowledgement of what's possible`

const forbiddenWords = `FORBIDDEN WORDS (never use these):
journey, amazing, incredible, awesome, powerful, transformative, healing, trauma, anxiety, resilience, empower, brave, courageous, beautiful, profound, mindset, limiting beliefs, inner child, self-sabotage, wounded, toxic, passion, purpose-driven`

type stageConfig struct {
	name             string
	goal             string
	frameworkContext string
}

var stageConfigs = map[int]stageConfig{
	1: {
		name: "Stage 1 — Where Are You Now",
		goal: "Build an honest snapshot of where this person actually is across all life areas. Surface the gap between where they are and where they want to be.",
		frameworkContext: `WHEEL OF LIFE (Paul J. Meyer)
The Wheel of Life is an 8-area audit (career, health, relationships, money, growth, fun, environment, purpose) scored 1–10. It creates a visual snapshot of imbalance. The lowest-scoring areas are typically where energy is most depleted — and where change is most needed. Use the scores to reflect back the pattern: what's thriving, what's been sacrificed, where the gap is widest.

POLYVAGAL THEORY (Stephen Porges)
The nervous system has three states: safe/social (ventral vagal — connected, curious, open), fight-or-flight (sympathetic — anxious, driven, reactive), and shutdown (dorsal vagal — frozen, numb, disconnected). People can only access genuine insight and change from the safe/social state. Before pushing deeper, check for safety. If someone is in shutdown, slow down. If they're in fight-or-flight, co-regulate before going further.`,
	},
	2: {
		name: "Stage 2 — What Happened to You",
		goal: "Understand the roots of what's blocking this person. Name the pattern without diagnosing. Help them see that their blocks make complete sense given their history.",
		frameworkContext: `COMPLEX PTSD (Judith Herman / Pete Walker)
CPTSD develops from chronic, repetitive adverse experiences — often in childhood — creating pervasive effects on identity, emotion regulation, and relationships. Core symptoms include inner critic attacks, emotional flashbacks, toxic shame, and self-abandonment. The most important message: their reactions make sense. They are not broken — they are adapted.

INTERNAL FAMILY SYSTEMS — IFS (Richard Schwartz)
The mind contains multiple "parts" (Managers who control and prevent pain, Exiles who carry old wounds, Firefighters who react impulsively to numb pain). The True Self — calm, curious, compassionate — can lead when parts feel safe enough to step back. When someone describes an inner critical voice, this is likely a Manager or Firefighter protecting an Exile. Don't fight the voice — get curious about what it's protecting.

LIMITING BELIEFS & COHERENCE THERAPY (Bruce Ecker)
Core beliefs formed in response to early experience ("I'm not good enough," "It's not safe to be seen," "I have to earn love") run automatically and filter reality. They feel like facts, not interpretations. Coherence Therapy insight: symptoms make perfect emotional sense given hidden learnings. Self-sabotage is adaptive — it protects something. Find the underlying logic and the symptom dissolves naturally. Don't push change — understand the protection first.

TRANSACTIONAL ANALYSIS (Eric Berne)
Parent, Adult, Child ego states. Life scripts inherited in childhood — the "injunctions" (don't exist, don't succeed, don't feel, don't be you) — run unconsciously until examined. They can be identified and rewritten from the Adult state. When someone describes a repeating pattern, look for the injunction underneath it.`,
	},
	3: {
		name: "Stage 3 — Who Are You",
		goal: "Help this person articulate their real identity — separate from roles, conditioning, and others' expectations. Surface their actual values, strengths, and the gap between who they perform as and who they actually are.",
		frameworkContext: `VIA CHARACTER STRENGTHS (Martin Seligman & Christopher Peterson)
24 character strengths organized under 6 virtues (Wisdom, Courage, Humanity, Justice, Temperance, Transcendence). The key insight: strengths used in alignment with values feel energising — they are signature strengths. When people do work that uses their signature strengths, engagement and meaning follow naturally. Look for what lights them up, not just what they're competent at.

SHADOW WORK (Carl Gustav Jung)
The "shadow" is the unconscious collection of traits we've rejected, repressed, or denied — often because they were unsafe to express. What we admire most in others often reflects our own disowned shadow gifts. What triggers us most often points to shadow material we haven't integrated. Integration — not elimination — of the shadow leads to wholeness and access to creative energy previously locked away.

NARRATIVE THERAPY (Michael White & David Epston)
"You are not your problem." The dominant life story — often written by painful experiences or others' expectations — is not the only story. There are always "unique outcomes": exceptions to the problem story that point to an alternative identity narrative. Help the person separate their identity from the problem: "The voice that says you're not enough" rather than "you believe you're not enough."

IDENTITY-BASED HABITS (James Clear — Atomic Habits)
Lasting change starts with identity, not outcomes. "I am the type of person who..." precedes behaviour change. Each small action is a vote for the identity you're becoming. In Stage 3, we're not building habits yet — we're identifying the identity that future habits will serve.`,
	},
	4: {
		name: "Stage 4 — Where Do You Want to Be",
		goal: "Help this person articulate a specific, felt vision of Point B — not a sanitised goal but the real life they're longing for. Bridge from 1-year to 3-year thinking. Honour the uncensored version as the true signal.",
		frameworkContext: `DESIGN YOUR LIFE (Bill Burnett & Dave Evans — Stanford)
Apply design thinking to life: prototype before committing, accept that there are multiple good lives you could live, use "workview" (what work is for) and "lifeview" (what life is about) to orient decisions. Life is not a problem to solve but a design challenge to engage with. Prototyping means experimenting with small versions of different futures rather than committing blindly to one path.

LOGOTHERAPY (Viktor Frankl)
The primary human drive is meaning — not pleasure, not power, but meaning. Meaning is found through three paths: creative work (what we give to the world), experiential (what we receive — love, beauty, truth), and attitudinal (the stance we take toward unavoidable suffering). The question is not "what do I want?" but "what does this life ask of me?"

SELF-DETERMINATION THEORY (Edward Deci & Richard Ryan)
Three core psychological needs for intrinsic motivation and wellbeing: Autonomy (the feeling of volition and choice), Competence (feeling effective and growing), and Relatedness (genuine connection with others). Sustainable happiness requires all three. When mapping Point B, check: does this vision honour all three needs? A vision that sacrifices relatedness for autonomy will hollow out over time.`,
	},
	5: {
		name: "Stage 5 — How Do You Get There",
		goal: "Bridge from vision to concrete vehicle. Name the specific career path that fits their skills and vision. Name the real financial gap using their actual numbers. Identify the first move that makes this real — and name what's actually blocking it beneath the surface reason.",
		frameworkContext: `CASHFLOW QUADRANT (Robert Kiyosaki)
Four income positions: Employee (trades time for salary, someone else controls their time), Self-Employed (owns their job, still trading time), Business Owner (system works without them), Investor (money works for them). The transition from E/S to B/I quadrant is the financial freedom leap. Understanding which quadrant their current work and designed work occupy clarifies the specific path and gap.

FIRE MOVEMENT (Financial Independence, Retire Early)
Financial independence = when passive income covers living expenses. The formula: annual expenses × 25 = the target number (4% withdrawal rate). Key insight: reducing expenses is more powerful than increasing income — it reduces the target AND increases the savings rate simultaneously. A person spending 2,000/month needs 600,000; spending 4,000/month needs 1,200,000. Use their actual numbers.

ESSENTIALISM (Greg McKeown)
Less but better. Only do what only you can do. The essentialist question: "What is the single most important thing I can do right now?" Not a list — one thing. The first move they named is likely essentialist if it's genuinely small but real. If it's vague or large, it's a project, not a first move.

STAGES OF CHANGE (Prochaska & DiClemente)
Precontemplation → Contemplation → Preparation → Action → Maintenance. The fact that this person has named a first move and identified what's blocking it means they're in Preparation or Action stage. Don't move them back to Contemplation — honour the preparation and make the action concrete.`,
	},
	6: {
		name: "Stage 6 — Where in the World",
		goal: "Match this person to 3 specific cities or regions that genuinely fit their lifestyle needs, budget, priorities and freedom vision. Be specific and concrete — name real places with real reasons that reference their actual answers.",
		frameworkContext: `BLUE ZONES (Dan Buettner — National Geographic)
Five places where people live longest and healthiest: Sardinia, Okinawa, Nicoya (Costa Rica), Ikaria (Greece), Loma Linda (California). Common factors: purpose, natural movement built into daily life, plant-based diet, community belonging, and daily downshift rituals. When matching locations, ask: does this place structurally support a long, good life — not just low cost or warm weather?

NOMAD CAPITALISM / FLAG THEORY (Andrew Henderson)
Geographic diversification: live where quality of life is highest, bank where it's safest, incorporate where most efficient, invest where returns are best. Practical application: is visa-free EU travel needed? Is a specific tax regime important? Is a second residency a goal? These levers shape which locations are genuinely viable vs merely appealing.

ECOLOGICAL IDENTITY (Environmental Psychology)
Physical environment shapes identity and capacity. Place is not neutral — it is part of self. Moving to a city with a walkable neighbourhood, ocean access, or mountain proximity doesn't just change surroundings: it changes who you become. Cafés, public spaces, pace, the language heard on the street — all contribute to a baseline nervous system state. The right environment makes the right life easier to live.

THIRD PLACE THEORY (Ray Oldenburg)
Beyond home (first place) and work (second place), humans need a third place — café, park, piazza, market, community space — for belonging and informal social connection. Third places are the social infrastructure of a city. For those relocating, they're what make a city liveable vs merely habitable. Ask: where would this person become a regular? Where would they know people without trying?`,
	},
}

var readinessLabels = map[int]string{
	1: "just starting to explore",
	2: "thinking things through",
	3: "ready to start",
	4: "fully committed",
	5: "already in motion",
}

// BuildSystemPrompt assembles the base context block for one generation
// call: identity, tone, forbidden words, full profile summary and the
// stage's framework context.
func BuildSystemPrompt(snap journey.Snapshot, stage int) string {
	cfg, ok := stageConfigs[stage]
	if !ok {
		cfg = stageConfigs[1]
	}
	return fmt.Sprintf(`%s

%s

%s

USER PROFILE:
%s

CURRENT STAGE: %s
STAGE GOAL: %s

FRAMEWORK CONTEXT:
%s`, identityBlock, toneRules, forbiddenWords, buildProfileSummary(snap), cfg.name, cfg.goal, cfg.frameworkContext)
}

// buildProfileSummary renders everything known about the user, stage by
// stage, in the order it was collected. Missing stages are simply omitted.
func buildProfileSummary(snap journey.Snapshot) string {
	var sections []string

	if snap.Name != "" {
		sections = append(sections, "Name: "+snap.Name)
	}

	if w := snap.Wheel; w.Scored() {
		sections = append(sections, fmt.Sprintf(
			"Wheel of Life (1–10):\n  Career %d · Health %d · Relationships %d · Money %d\n  Growth %d · Fun %d · Environment %d · Purpose %d",
			w.Career, w.Health, w.Relationships, w.Money,
			w.Growth, w.Fun, w.Environment, w.Purpose,
		))
	}

	if o := snap.AnswersByStage[1]; len(o) > 0 {
		lines := []string{"Stage 1 — Where They Are:"}
		lines = appendQuoted(lines, o, "reason", "What brought them here")
		lines = appendScore(lines, o, "satisfaction", "Life satisfaction", "/10")
		lines = appendList(lines, o, "stuckArea", "Stuck areas")
		lines = appendQuoted(lines, o, "freedom", "What freedom means")
		if r, ok := answerInt(o, "readiness"); ok {
			label := readinessLabels[r]
			if label == "" {
				label = fmt.Sprintf("%d", r)
			}
			lines = append(lines, "  Readiness to change: "+label)
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if bl := snap.AnswersByStage[2]; len(bl) > 0 {
		lines := []string{"Stage 2 — Blocks & History:"}
		lines = appendQuoted(lines, bl, "blocker", "What stops them when imagining change")
		lines = appendQuoted(lines, bl, "duration", "How long they've felt stuck")
		lines = appendQuoted(lines, bl, "pastAttempts", "Past attempts")
		lines = appendQuoted(lines, bl, "innerVoice", "Inner critical voice says")
		lines = appendScore(lines, bl, "beliefScore", "Belief they can change", "/10")
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if id := snap.AnswersByStage[3]; len(id) > 0 {
		lines := []string{"Stage 3 — Identity & Values:"}
		lines = appendList(lines, id, "values", "Core values")
		lines = appendPlain(lines, id, "nonNegotiable", "Non-negotiable value")
		lines = appendQuoted(lines, id, "feelsAlive", "What makes them feel alive")
		lines = appendQuoted(lines, id, "flowState", "When they lose track of time")
		lines = appendQuoted(lines, id, "peopleAskFor", "What people always come to them for")
		lines = appendQuoted(lines, id, "drainsYou", "What consistently drains them")
		lines = appendQuoted(lines, id, "naturalTalent", "Natural talent")
		lines = appendQuoted(lines, id, "beforeWorld", "What they were good at before the world shaped them")
		lines = appendPlain(lines, id, "identityFit", "Does their self-description reflect who they actually are")
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if pb := snap.AnswersByStage[4]; len(pb) > 0 {
		lines := []string{"Stage 4 — Point B (Vision):"}
		lines = appendQuoted(lines, pb, "year1_living", "1 year — living in")
		lines = appendQuoted(lines, pb, "year1_working", "1 year — working on")
		lines = appendQuoted(lines, pb, "year1_feeling", "1 year — feeling")
		lines = appendQuoted(lines, pb, "year3_living", "3 years — living in")
		lines = appendQuoted(lines, pb, "year3_working", "3 years — working on")
		lines = appendQuoted(lines, pb, "year3_feeling", "3 years — feeling")
		lines = appendQuoted(lines, pb, "uncensored_build", "If they couldn't fail, would build or become")
		lines = appendQuoted(lines, pb, "uncensored_truth", "Life they want but haven't said out loud")
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if rm := snap.AnswersByStage[5]; len(rm) > 0 {
		currency := answerString(rm, "currency")
		if currency == "" {
			currency = "EUR"
		}
		lines := []string{"Stage 5 — Career & Financial Roadmap:"}
		lines = appendQuoted(lines, rm, "currentWork", "Current work")
		lines = appendQuoted(lines, rm, "designedWork", "Designed work")
		lines = appendQuoted(lines, rm, "remoteSkills", "Remote/independent skills")
		lines = appendQuoted(lines, rm, "workGap", "Gap between now and that")
		if v, ok := answerInt(rm, "monthlyExpenses"); ok {
			lines = append(lines, fmt.Sprintf("  Monthly expenses: %d %s", v, currency))
		}
		lines = appendPlain(lines, rm, "savingsRunway", "Savings runway")
		if v, ok := answerInt(rm, "freedomIncome"); ok {
			lines = append(lines, fmt.Sprintf("  Freedom income target: %d %s", v, currency))
		}
		lines = appendQuoted(lines, rm, "firstStep", "First move")
		lines = appendQuoted(lines, rm, "firstMoveBlocker", "What's been blocking it")
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if wa := snap.AnswersByStage[6]; len(wa) > 0 {
		currency := answerString(wa, "currency")
		if currency == "" {
			currency = "EUR"
		}
		lines := []string{"Stage 6 — Location Preferences:"}
		lines = appendPlain(lines, wa, "climate", "Climate")
		lines = appendPlain(lines, wa, "environment", "Environment")
		lines = appendPlain(lines, wa, "pace", "Pace of life")
		if v, ok := answerInt(wa, "monthlyBudget"); ok {
			lines = append(lines, fmt.Sprintf("  Monthly budget: %d %s", v, currency))
		}
		lines = appendPlain(lines, wa, "euTravel", "EU visa-free travel needed")
		lines = appendPlain(lines, wa, "languages", "Languages spoken")
		lines = appendPlain(lines, wa, "countriesList", "Countries already on list")
		if priorities := answerList(wa, "priorities"); len(priorities) > 0 {
			lines = append(lines, "  Priorities (ranked): "+strings.Join(priorities, " > "))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if len(sections) == 0 {
		return "New user — no profile data collected yet."
	}
	return strings.Join(sections, "\n\n")
}

// buildUserMessage renders the current stage's answers for the task prompt.
// Blank answers are kept visible as an explicit marker so the model cannot
// silently skip them.
func buildUserMessage(stage int, items []journey.Item, answers map[string]any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "My answers for %s:\n", journey.StageNames[stage])
	seen := map[string]bool{}
	for _, item := range items {
		if item.Type == journey.ItemSectionBreak {
			continue
		}
		seen[item.ID] = true
		b.WriteString(answerLine(item.ID, answers[item.ID]))
	}
	// Answers with no matching item (older flow versions) still count.
	var extra []string
	for id := range answers {
		if !seen[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	for _, id := range extra {
		b.WriteString(answerLine(id, answers[id]))
	}
	return b.String()
}

func answerLine(id string, v any) string {
	switch t := v.(type) {
	case nil:
		return fmt.Sprintf("- %s: left blank\n", id)
	case string:
		if strings.TrimSpace(t) == "" {
			return fmt.Sprintf("- %s: left blank\n", id)
		}
		return fmt.Sprintf("- %s: %q\n", id, strings.TrimSpace(t))
	case []any:
		parts := make([]string, 0, len(t))
		for _, p := range t {
			parts = append(parts, fmt.Sprintf("%v", p))
		}
		if len(parts) == 0 {
			return fmt.Sprintf("- %s: left blank\n", id)
		}
		return fmt.Sprintf("- %s: %s\n", id, strings.Join(parts, ", "))
	case []string:
		if len(t) == 0 {
			return fmt.Sprintf("- %s: left blank\n", id)
		}
		return fmt.Sprintf("- %s: %s\n", id, strings.Join(t, ", "))
	case float64:
		if t == float64(int(t)) {
			return fmt.Sprintf("- %s: %d\n", id, int(t))
		}
		return fmt.Sprintf("- %s: %g\n", id, t)
	default:
		return fmt.Sprintf("- %s: %v\n", id, t)
	}
}

func answerString(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func answerInt(m map[string]any, key string) (int, bool) {
	switch t := m[key].(type) {
	case int:
		return t, true
	case float64:
		return int(t), true
	case string:
		var n int
		if _, err := fmt.Sscanf(strings.TrimSpace(t), "%d", &n); err == nil {
			return n, true
		}
	}
	return 0, false
}

func answerList(m map[string]any, key string) []string {
	switch t := m[key].(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, v := range t {
			if s, ok := v.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	}
	return nil
}

func appendQuoted(lines []string, m map[string]any, key, label string) []string {
	if s := answerString(m, key); s != "" {
		return append(lines, fmt.Sprintf("  %s: %q", label, s))
	}
	return lines
}

func appendPlain(lines []string, m map[string]any, key, label string) []string {
	if s := answerString(m, key); s != "" {
		return append(lines, fmt.Sprintf("  %s: %s", label, s))
	}
	if list := answerList(m, key); len(list) > 0 {
		return append(lines, fmt.Sprintf("  %s: %s", label, strings.Join(list, ", ")))
	}
	return lines
}

func appendScore(lines []string, m map[string]any, key, label, suffix string) []string {
	if v, ok := answerInt(m, key); ok && v > 0 {
		return append(lines, fmt.Sprintf("  %s: %d%s", label, v, suffix))
	}
	return lines
}

func appendList(lines []string, m map[string]any, key, label string) []string {
	if list := answerList(m, key); len(list) > 0 {
		return append(lines, fmt.Sprintf("  %s: %s", label, strings.Join(list, ", ")))
	}
	return lines
}
