// Package mood implements rule-based mood inference over a conversation
// transcript using keyword scoring, intensity modifiers, compound emotions,
// idioms, negation handling and escalation detection.
package mood

// Mood is one of the nine canonical emotional-state tags.
type Mood string

// Canonical moods. The order is fixed and used as the deterministic
// tie-break wherever two moods score equally.
const (
	Happy     Mood = "happy"
	Sad       Mood = "sad"
	Angry     Mood = "angry"
	Anxious   Mood = "anxious"
	Energetic Mood = "energetic"
	Calm      Mood = "calm"
	Tired     Mood = "tired"
	Bored     Mood = "bored"
	Neutral   Mood = "neutral"
)

// Canonical lists all moods in canonical (tie-break) order.
var Canonical = []Mood{Happy, Sad, Angry, Anxious, Energetic, Calm, Tired, Bored, Neutral}

// Valid reports whether m is one of the canonical moods.
func Valid(m Mood) bool {
	for _, c := range Canonical {
		if c == m {
			return true
		}
	}
	return false
}

// SecondaryMood is a runner-up mood that scored close to the dominant one.
type SecondaryMood struct {
	Mood  Mood    `json:"mood"`
	Score float64 `json:"score"`
}

// Analysis is the result of scoring a transcript. It is recomputed from
// scratch on every call; the scorer never updates a previous Analysis.
type Analysis struct {
	Dominant   Mood             `json:"dominantMood"`
	Confidence float64          `json:"confidence"`
	Scores     map[Mood]float64 `json:"scores"`
	Secondary  *SecondaryMood   `json:"secondaryMood,omitempty"`
}
