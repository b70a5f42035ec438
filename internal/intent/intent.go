// Package intent classifies single user utterances into conversational
// intents and extracts music-related entity mentions. Both operations are
// pure functions over one utterance; the dialogue layer owns all state.
package intent

import "strings"

// Intent is one conversational intent tag. Confidences are independent:
// an utterance may fire several intents at once.
type Intent string

const (
	Greeting          Intent = "greeting"
	MoodSharing       Intent = "moodSharing"
	AskingForRec      Intent = "askingForRecommendation"
	SpecifyingGenre   Intent = "specifyingGenre"
	SpecifyingActivity Intent = "specifyingActivity"
	Rejecting         Intent = "rejecting"
	Affirming         Intent = "affirming"
	Questioning       Intent = "questioning"
	Gratitude         Intent = "gratitude"
	Confused          Intent = "confused"
)

// order fixes the tie-break sequence for primary-intent selection.
var order = []Intent{
	Greeting, MoodSharing, AskingForRec, SpecifyingGenre, SpecifyingActivity,
	Rejecting, Affirming, Questioning, Gratitude, Confused,
}

// contextBoost is added (unclamped) to an intent when the previous agent
// utterance prompted for exactly that kind of answer.
const contextBoost = 0.3

// Classification holds the per-intent confidences for one utterance.
type Classification struct {
	Scores     map[Intent]float64 `json:"scores"`
	Primary    Intent             `json:"primaryIntent"`
	Confidence float64            `json:"confidence"`
}

// Classify scores the utterance against every intent's vocabulary. The
// previous agent utterance, when given, boosts mood/genre/activity answers
// that directly follow the matching prompt.
func Classify(utterance, prevAgentUtterance string) Classification {
	lower := strings.ToLower(strings.TrimSpace(utterance))
	scores := make(map[Intent]float64, len(order))

	for _, rule := range intentRules {
		if rule.matches(lower) {
			scores[rule.intent] = rule.confidence
		}
	}

	if prevAgentUtterance != "" {
		prev := strings.ToLower(prevAgentUtterance)
		if containsAny(prev, feelingsPrompts) {
			scores[MoodSharing] += contextBoost
		}
		if containsAny(prev, genrePrompts) {
			scores[SpecifyingGenre] += contextBoost
		}
		if containsAny(prev, activityPrompts) {
			scores[SpecifyingActivity] += contextBoost
		}
	}

	primary, confidence := primaryOf(scores)
	return Classification{Scores: scores, Primary: primary, Confidence: confidence}
}

// primaryOf picks the highest-confidence intent, breaking ties by the
// fixed table order. An utterance matching nothing has no primary intent.
func primaryOf(scores map[Intent]float64) (Intent, float64) {
	var primary Intent
	var best float64
	for _, in := range order {
		if score, ok := scores[in]; ok && score > best {
			primary = in
			best = score
		}
	}
	return primary, best
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
