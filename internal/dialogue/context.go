// Package dialogue holds the per-session conversation state and the
// deterministic policy that picks the next conversational move.
package dialogue

import (
	"strings"

	"github.com/justestif/go-mood-dj/internal/intent"
	"github.com/justestif/go-mood-dj/internal/mood"
)

// Topic names the next conversational move. It doubles as the key into the
// response template pools.
type Topic string

const (
	TopicGreeting         Topic = "greeting"
	TopicMoodExploration  Topic = "moodExploration"
	TopicGenreQuestion    Topic = "genreQuestion"
	TopicActivityQuestion Topic = "activityQuestion"
	TopicRecommendation   Topic = "recommendation"
	TopicClarification    Topic = "clarification"
	TopicFollowUp         Topic = "followUp"
)

// Stage is the coarse conversation progress marker. It only moves forward.
type Stage string

const (
	StageInitial             Stage = "initial"
	StageMoodDetected        Stage = "moodDetected"
	StagePreferencesGathered Stage = "preferencesGathered"
	StageReady               Stage = "readyForRecommendations"
)

// Speaker identifies who produced a transcript turn, matching the labels
// the transcript display uses.
type Speaker string

const (
	SpeakerUser  Speaker = "You"
	SpeakerAgent Speaker = "AI"
)

// Turn is one transcript entry.
type Turn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// Preferences holds sticky user preferences gathered across turns.
type Preferences struct {
	Activity string `json:"activity,omitempty"`
}

// moodRecordThreshold is the minimum analysis confidence for a mood to be
// recorded on the context.
const moodRecordThreshold = 0.3

// topicUpdateThreshold is the minimum primary-intent confidence for the
// current topic to change.
const topicUpdateThreshold = 0.6

// Context is the mutable state of one conversation session. It is owned by
// exactly one session and must be constructed explicitly; nothing in this
// package keeps global state, so concurrent sessions never cross-talk.
type Context struct {
	CurrentTopic     Topic       `json:"currentTopic"`
	DetectedMoods    []mood.Mood `json:"detectedMoods"`
	MentionedGenres  []string    `json:"mentionedGenres"`
	MentionedArtists []string    `json:"mentionedArtists"`
	Stage            Stage       `json:"conversationStage"`
	Preferences      Preferences `json:"userPreferences"`
	History          []Turn      `json:"conversationHistory"`
	QuestionAsked    bool        `json:"questionAsked"`
	FollowUpTopics   []Topic     `json:"followUpTopics"`
}

// NewContext returns a fresh session context at the initial stage.
func NewContext() *Context {
	return &Context{
		CurrentTopic: TopicGreeting,
		Stage:        StageInitial,
	}
}

// Observe folds one analyzed user turn into the context: records the mood
// and entities, recomputes the question flag, updates the topic from the
// primary intent and advances the stage machine. Called once per turn,
// before the policy picks the next move and before the turn itself is
// appended to the history.
func (c *Context) Observe(analysis mood.Analysis, cls intent.Classification, ents intent.Entities) {
	if analysis.Confidence > moodRecordThreshold {
		c.recordMood(analysis.Dominant)
	}

	for _, g := range ents.Genres {
		c.MentionedGenres = appendAbsent(c.MentionedGenres, g)
	}
	for _, a := range ents.Artists {
		c.MentionedArtists = appendAbsent(c.MentionedArtists, a)
	}
	if len(ents.Activities) > 0 {
		c.Preferences.Activity = ents.Activities[0]
	}

	c.QuestionAsked = strings.HasSuffix(strings.TrimSpace(c.LastAgentText()), "?")

	c.updateTopic(cls)
	c.advanceStage(cls)
}

// recordMood prepends the mood so the list stays most-recent-first. A mood
// already on the list keeps its position.
func (c *Context) recordMood(m mood.Mood) {
	for _, existing := range c.DetectedMoods {
		if existing == m {
			return
		}
	}
	c.DetectedMoods = append([]mood.Mood{m}, c.DetectedMoods...)
}

// updateTopic maps a confident primary intent onto the next topic.
// Gratitude queues a follow-up instead of changing the topic.
func (c *Context) updateTopic(cls intent.Classification) {
	if cls.Confidence <= topicUpdateThreshold {
		return
	}
	switch cls.Primary {
	case intent.Greeting:
		c.CurrentTopic = TopicGreeting
	case intent.MoodSharing:
		c.CurrentTopic = TopicMoodExploration
	case intent.AskingForRec, intent.SpecifyingGenre:
		c.CurrentTopic = TopicRecommendation
	case intent.SpecifyingActivity:
		c.CurrentTopic = TopicActivityQuestion
	case intent.Confused:
		c.CurrentTopic = TopicClarification
	case intent.Gratitude:
		c.FollowUpTopics = append(c.FollowUpTopics, TopicFollowUp)
	}
}

// advanceStage runs the monotonic stage machine. Transitions may cascade
// within a single turn (a first utterance carrying both a mood and a genre
// reaches preferencesGathered immediately); the stage never regresses.
func (c *Context) advanceStage(cls intent.Classification) {
	hasPrefs := len(c.MentionedGenres) > 0 || len(c.MentionedArtists) > 0

	if c.Stage == StageInitial && len(c.DetectedMoods) > 0 {
		c.Stage = StageMoodDetected
	}
	if c.Stage == StageMoodDetected && len(c.DetectedMoods) > 0 && hasPrefs {
		c.Stage = StagePreferencesGathered
	}
	if c.Stage == StagePreferencesGathered && cls.Primary == intent.Affirming {
		c.Stage = StageReady
	}
}

// Append adds a transcript turn to the history.
func (c *Context) Append(speaker Speaker, text string) {
	c.History = append(c.History, Turn{Speaker: speaker, Text: text})
}

// UserUtterances returns the user side of the transcript in order, which
// is exactly what the mood scorer consumes.
func (c *Context) UserUtterances() []string {
	var out []string
	for _, t := range c.History {
		if t.Speaker == SpeakerUser {
			out = append(out, t.Text)
		}
	}
	return out
}

// UserTurnCount returns how many user turns the history holds.
func (c *Context) UserTurnCount() int {
	n := 0
	for _, t := range c.History {
		if t.Speaker == SpeakerUser {
			n++
		}
	}
	return n
}

// LastAgentText returns the most recent agent utterance, or "".
func (c *Context) LastAgentText() string {
	for i := len(c.History) - 1; i >= 0; i-- {
		if c.History[i].Speaker == SpeakerAgent {
			return c.History[i].Text
		}
	}
	return ""
}

// LatestMood returns the most recently detected mood, or "" when none has
// been recorded yet.
func (c *Context) LatestMood() mood.Mood {
	if len(c.DetectedMoods) == 0 {
		return ""
	}
	return c.DetectedMoods[0]
}

// Snapshot returns a read-only copy for external collaborators (e.g. the
// recommendation service uses mentioned genres and artists as hints).
func (c *Context) Snapshot() Context {
	out := *c
	out.DetectedMoods = append([]mood.Mood(nil), c.DetectedMoods...)
	out.MentionedGenres = append([]string(nil), c.MentionedGenres...)
	out.MentionedArtists = append([]string(nil), c.MentionedArtists...)
	out.History = append([]Turn(nil), c.History...)
	out.FollowUpTopics = append([]Topic(nil), c.FollowUpTopics...)
	return out
}

func appendAbsent(list []string, item string) []string {
	for _, existing := range list {
		if existing == item {
			return list
		}
	}
	return append(list, item)
}
