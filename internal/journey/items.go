package journey

// ItemType discriminates how a flow item is answered.
type ItemType string

const (
	ItemText         ItemType = "text"
	ItemPills        ItemType = "pills"
	ItemMultiPills   ItemType = "multi-pills"
	ItemSlider       ItemType = "slider"
	ItemScale        ItemType = "scale"
	ItemSingleChoice ItemType = "single-choice"
	ItemValuesPicker ItemType = "values-picker"
	ItemCurrency     ItemType = "currency"
	ItemRank         ItemType = "rank"
	ItemSectionBreak ItemType = "section-break"
)

// ScaleOption is one labelled point on a scale item.
type ScaleOption struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// Item is one step of a stage flow: either a question or a section break.
// Section breaks carry only Heading/Body/CTA and need a confirm to pass.
type Item struct {
	ID       string        `json:"id,omitempty"`
	Type     ItemType      `json:"type"`
	Question string        `json:"question,omitempty"`
	Subtitle string        `json:"subtitle,omitempty"`
	Options  []string      `json:"options,omitempty"`
	Scale    []ScaleOption `json:"scale,omitempty"`
	Min      int           `json:"min,omitempty"`
	Max      int           `json:"max,omitempty"`
	MaxPick  int           `json:"max_pick,omitempty"`
	Heading  string        `json:"heading,omitempty"`
	Body     string        `json:"body,omitempty"`
	CTA      string        `json:"cta,omitempty"`
}

// CoreValues is the pick-up-to-5 list for the stage 3 values picker.
var CoreValues = []string{
	"Freedom", "Creativity", "Security", "Adventure",
	"Family", "Autonomy", "Impact", "Growth",
	"Authenticity", "Stability", "Connection", "Wealth",
	"Purpose", "Health", "Fun", "Leadership",
	"Learning", "Simplicity", "Courage", "Love",
}

// WheelAreas are the eight Wheel of Life areas, scored 1-10 (0 = unscored).
var WheelAreas = []string{
	"career", "health", "relationships", "money",
	"growth", "fun", "environment", "purpose",
}

var onboardingItems = []Item{
	{
		ID: "reason", Type: ItemPills,
		Question: "What brought you here today?",
		Options:  []string{"A big life change", "Feeling stuck", "Wanting more", "Starting fresh"},
	},
	{
		ID: "satisfaction", Type: ItemSlider,
		Question: "How satisfied are you with your life right now?",
		Subtitle: "Be honest — this is just for you.",
		Min:      1, Max: 10,
	},
	{
		ID: "stuckArea", Type: ItemMultiPills,
		Question: "Which area feels most stuck?",
		Subtitle: "Select all that apply.",
		Options:  []string{"Career", "Relationships", "Money", "Health", "Purpose", "Freedom"},
	},
	{
		ID: "freedom", Type: ItemText,
		Question: "What does freedom mean to you?",
		Subtitle: "There's no wrong answer.",
	},
	{
		ID: "readiness", Type: ItemScale,
		Question: "How ready are you to make real changes?",
		Scale: []ScaleOption{
			{Value: 1, Label: "Just exploring"},
			{Value: 2, Label: "Thinking about it"},
			{Value: 3, Label: "Ready to start"},
			{Value: 4, Label: "Fully committed"},
			{Value: 5, Label: "Already moving"},
		},
	},
}

var blocksItems = []Item{
	{
		ID: "blocker", Type: ItemPills,
		Question: "When you imagine making a big change, what's the first thing that stops you?",
		Options: []string{
			"Fear of failure",
			"Not enough money",
			"Don't know where to start",
			"What will people think",
			"I'm not ready yet",
			"Other",
		},
	},
	{
		ID: "duration", Type: ItemPills,
		Question: "How long have you felt stuck in this area?",
		Options:  []string{"A few months", "About a year", "A few years", "Most of my life"},
	},
	{
		ID: "pastAttempts", Type: ItemText,
		Question: "Have you tried to change this before? What happened?",
		Subtitle: "Be as specific as you like — or as brief.",
	},
	{
		ID: "innerVoice", Type: ItemText,
		Question: "What does the voice in your head say when you think about going for what you want?",
		Subtitle: "Write the actual words — exactly as they sound.",
	},
	{
		ID: "beliefScore", Type: ItemSlider,
		Question: "How much do you actually believe you can change?",
		Subtitle: "Be honest. There's no wrong answer.",
		Min:      1, Max: 10,
	},
}

var identityItems = []Item{
	{
		ID: "values", Type: ItemValuesPicker,
		Question: "What are your core values?",
		Subtitle: "Pick the 5 that matter most.",
		Options:  CoreValues,
		MaxPick:  5,
	},
	{
		ID: "nonNegotiable", Type: ItemSingleChoice,
		Question: "Which of these is the one you'd never compromise on?",
		Subtitle: "The value that, if violated, would feel like a betrayal of yourself.",
		// options come from the values already chosen in this flow
	},
	{
		ID: "feelsAlive", Type: ItemText,
		Question: "What makes you feel most alive?",
		Subtitle: "Activities, moments, environments — when you feel lit up from the inside.",
	},
	{
		ID: "flowState", Type: ItemText,
		Question: "When do you lose track of time?",
		Subtitle: "The kind of work or activity where hours disappear without you noticing.",
	},
	{
		ID: "peopleAskFor", Type: ItemText,
		Question: "What do people always come to you for?",
		Subtitle: "The thing friends, colleagues, or family ask your help with — again and again.",
	},
	{
		ID: "drainsYou", Type: ItemText,
		Question: "What consistently drains you — even when you're good at it?",
		Subtitle: "Tasks or situations that leave you feeling flat, even if you perform them well.",
	},
	{
		ID: "selfDescription", Type: ItemText,
		Question: "How do you usually describe yourself?",
		Subtitle: "Job title, role, the labels you reach for when introducing yourself.",
	},
	{
		ID: "identityFit", Type: ItemSingleChoice,
		Question: "Is that actually who you are — or who you've learned to be?",
		Subtitle: "Be honest. No answer is wrong.",
		Options: []string{
			"That's genuinely me",
			"It's partly me",
			"It's mostly a role I play",
		},
	},
	{
		ID: "withoutJudgment", Type: ItemText,
		Question: "If no one was watching and nothing was at stake, what would you do?",
		Subtitle: "No judgment, no practicality required.",
	},
	{
		ID: "naturalTalent", Type: ItemText,
		Question: "What comes so naturally to you that you assume everyone can do it?",
		Subtitle: "The thing that feels obvious to you but genuinely impresses others.",
	},
	{
		ID: "beforeWorld", Type: ItemText,
		Question: "What were you good at before the world told you what to be good at?",
		Subtitle: "Think back — childhood, early teens, before school or work shaped your path.",
	},
}

var pointBItems = []Item{
	{
		Type:    ItemSectionBreak,
		Heading: "One year from now.",
		Body:    "It's exactly one year from today. You made the moves, things shifted. Picture what your life actually looks like.",
		CTA:     "Let's see it",
	},
	{ID: "year1_living", Type: ItemText, Question: "Where are you living?", Subtitle: "City, country, setting — or the kind of environment that feels right."},
	{ID: "year1_tuesday", Type: ItemText, Question: "What does a typical Tuesday look like?", Subtitle: "Walk me through the day — morning, work, evening."},
	{ID: "year1_working", Type: ItemText, Question: "What are you working on?", Subtitle: "Projects, work, side things — what fills your time."},
	{ID: "year1_feeling", Type: ItemText, Question: "How do you feel when you wake up?", Subtitle: "The first emotion when you open your eyes."},
	{
		Type:    ItemSectionBreak,
		Heading: "Three years from now.",
		Body:    "Same questions. But you've had three years. Things compounded. Go bigger.",
		CTA:     "Go bigger",
	},
	{ID: "year3_living", Type: ItemText, Question: "Where are you living?", Subtitle: "Same question, bigger lens. Where did you end up?"},
	{ID: "year3_tuesday", Type: ItemText, Question: "What does a typical Tuesday look like?", Subtitle: "Go bigger than before."},
	{ID: "year3_working", Type: ItemText, Question: "What are you working on?", Subtitle: "Bolder. What did you actually build?"},
	{ID: "year3_feeling", Type: ItemText, Question: "How do you feel when you wake up?", Subtitle: "The emotion that greets you three years from now."},
	{
		Type:    ItemSectionBreak,
		Heading: "Now, uncensored.",
		Body:    "No edits. No 'but that's not realistic.' No qualifiers. Just the truth — the version you usually talk yourself out of.",
		CTA:     "Tell the truth",
	},
	{ID: "uncensored_build", Type: ItemText, Question: "If you knew you couldn't fail, what would you build or become?", Subtitle: "No editing. No 'but.' Just say it."},
	{ID: "uncensored_truth", Type: ItemText, Question: "What's the life you want but haven't let yourself say out loud yet?", Subtitle: "The one you edit before it reaches your mouth."},
}

var roadmapItems = []Item{
	{
		Type:    ItemSectionBreak,
		Heading: "Career Vehicle.",
		Body:    "Before you can build the path, you need to know what kind of work actually fits your life. What you have, what you want, and what the gap is.",
		CTA:     "Let's look",
	},
	{ID: "currentWork", Type: ItemText, Question: "What are you currently doing for money?", Subtitle: "Job title, freelance work, business — whatever pays right now."},
	{ID: "designedWork", Type: ItemText, Question: "If you could design your work from scratch, what would it look like?", Subtitle: "Not a job title — the actual shape of the work. What you do, how you do it, who for."},
	{ID: "remoteSkills", Type: ItemText, Question: "What skills do you already have that could earn remotely or independently?", Subtitle: "Things people would pay for. Skills you already have — not ones you plan to learn."},
	{ID: "workGap", Type: ItemText, Question: "What's the gap between where you are and that?", Subtitle: "Be specific — what exactly is missing or different?"},
	{
		Type:    ItemSectionBreak,
		Heading: "Financial Runway.",
		Body:    "Freedom isn't free — but it's probably closer than you think. Let's look at the actual numbers.",
		CTA:     "Show me the numbers",
	},
	{ID: "monthlyExpenses", Type: ItemCurrency, Question: "What are your monthly expenses?", Subtitle: "Total outgoings — rent, food, bills, everything."},
	{
		ID: "savingsRunway", Type: ItemPills,
		Question: "How many months of savings do you have right now?",
		Options:  []string{"0 months", "1–3 months", "3–6 months", "6–12 months", "12+ months"},
	},
	{ID: "freedomIncome", Type: ItemCurrency, Question: "What monthly income would feel like freedom?", Subtitle: "Not survival — the number where you feel genuinely free."},
	{
		Type:    ItemSectionBreak,
		Heading: "The first move.",
		Body:    "The gap closes one step at a time. Let's find yours.",
		CTA:     "Find my step",
	},
	{ID: "firstStep", Type: ItemText, Question: "What's the smallest possible step you could take this week toward your Point B?", Subtitle: "Not the whole plan. Just the one thing that would make this real."},
	{ID: "firstMoveBlocker", Type: ItemText, Question: "What's been stopping you from taking it?", Subtitle: "The real reason, not the polished one."},
}

var worldItems = []Item{
	{
		Type:    ItemSectionBreak,
		Heading: "Lifestyle Needs.",
		Body:    "The right place fits your actual life — not an Instagram fantasy. Let's figure out what kind of environment you actually thrive in.",
		CTA:     "Let's look",
	},
	{
		ID: "climate", Type: ItemPills,
		Question: "What climate do you thrive in?",
		Options:  []string{"Warm / Mediterranean", "Four seasons", "Tropical", "Cold / Nordic", "Don't care"},
	},
	{
		ID: "environment", Type: ItemPills,
		Question: "What kind of environment fits you?",
		Options:  []string{"Big city", "Mid-size city", "Small town", "Nature / rural", "Beach", "Mountains"},
	},
	{
		ID: "pace", Type: ItemPills,
		Question: "What pace of life do you want?",
		Options:  []string{"Fast and stimulating", "Balanced", "Slow and peaceful"},
	},
	{
		Type:    ItemSectionBreak,
		Heading: "Practical Requirements.",
		Body:    "Freedom has a budget. Let's look at the real constraints so we can find places that actually work.",
		CTA:     "Show me the numbers",
	},
	{ID: "monthlyBudget", Type: ItemCurrency, Question: "What's your realistic monthly budget for living abroad?"},
	{
		ID: "euTravel", Type: ItemPills,
		Question: "Do you need visa-free EU travel?",
		Options:  []string{"Yes", "No"},
	},
	{ID: "languages", Type: ItemText, Question: "What languages do you speak?"},
	{ID: "countriesList", Type: ItemText, Question: "Any countries already on your list?"},
	{
		Type:    ItemSectionBreak,
		Heading: "Freedom Priorities.",
		Body:    "Different places do different things well. What you care about most shapes where you should go.",
		CTA:     "Set my priorities",
	},
	{
		ID: "priorities", Type: ItemRank,
		Question: "Rank what matters most in a place to live.",
		Options:  []string{"Cost of living", "Safety", "Community", "Nature", "Culture", "Nightlife", "Healthcare", "Internet speed"},
	},
}

// stageItems holds the ordered item list for each of the six stages.
var stageItems = map[int][]Item{
	StageOnboarding: onboardingItems,
	StageBlocks:     blocksItems,
	StageIdentity:   identityItems,
	StagePointB:     pointBItems,
	StageRoadmap:    roadmapItems,
	StageWorld:      worldItems,
}

// ItemsForStage returns the ordered flow items for a stage, or nil for an
// unknown stage.
func ItemsForStage(stage int) []Item {
	return stageItems[stage]
}
