package intent

import "strings"

// intentRule binds one intent to its vocabulary and base confidence.
// Prefixes anchor at the start of the utterance, phrases match anywhere,
// and words must match a whole token.
type intentRule struct {
	intent     Intent
	confidence float64
	prefixes   []string
	phrases    []string
	words      []string
	question   bool
}

func (r intentRule) matches(lower string) bool {
	for _, p := range r.prefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	for _, p := range r.phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	if len(r.words) > 0 {
		for _, tok := range strings.Fields(strings.Map(stripPunct, lower)) {
			for _, w := range r.words {
				if tok == w {
					return true
				}
			}
		}
	}
	if r.question && isQuestion(lower) {
		return true
	}
	return false
}

func stripPunct(r rune) rune {
	switch r {
	case '.', ',', '!', '?', ';', ':':
		return ' '
	}
	return r
}

func isQuestion(lower string) bool {
	if strings.HasSuffix(strings.TrimSpace(lower), "?") {
		return true
	}
	for _, p := range []string{"what ", "how ", "why ", "when ", "where ", "who ", "which ", "can you", "could you", "do you"} {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

// intentRules is evaluated in full for every utterance; each matching rule
// sets its intent's base confidence independently of the others.
var intentRules = []intentRule{
	{
		intent:     Greeting,
		confidence: 0.9,
		prefixes:   []string{"hi", "hello", "hey", "good morning", "good afternoon", "good evening", "howdy"},
		phrases:    []string{"what's up"},
	},
	{
		intent:     MoodSharing,
		confidence: 0.8,
		phrases: []string{
			"i feel", "i'm feeling", "i am feeling", "feeling", "i've been",
			"makes me", "i'm so", "i am so", "in a mood", "my mood",
		},
	},
	{
		intent:     AskingForRec,
		confidence: 0.9,
		phrases: []string{
			"recommend", "suggestion", "suggest", "play me", "play something",
			"put on", "what should i listen", "any songs", "any music",
			"give me something to listen",
		},
	},
	{
		intent:     SpecifyingGenre,
		confidence: 0.8,
		phrases:    genreVocabulary,
	},
	{
		intent:     SpecifyingActivity,
		confidence: 0.7,
		phrases:    activityVocabulary,
	},
	{
		intent:     Rejecting,
		confidence: 0.8,
		words:      []string{"no", "nope", "nah"},
		phrases:    []string{"not that", "something else", "don't like", "not really", "not a fan", "skip that"},
	},
	{
		intent:     Affirming,
		confidence: 0.8,
		words:      []string{"yes", "yeah", "yep", "sure", "ok", "okay", "definitely", "perfect"},
		phrases:    []string{"sounds good", "that works", "go ahead", "please do", "why not", "let's do it"},
	},
	{
		intent:     Questioning,
		confidence: 0.7,
		question:   true,
	},
	{
		intent:     Gratitude,
		confidence: 0.9,
		phrases:    []string{"thank", "thanks", "appreciate", "cheers"},
	},
	{
		intent:     Confused,
		confidence: 0.8,
		words:      []string{"huh", "confused"},
		phrases: []string{
			"what do you mean", "don't understand", "come again",
			"didn't get that", "makes no sense", "i'm lost",
		},
	},
}

// Prompt phrases looked up in the previous agent utterance. Answering the
// matching prompt boosts the corresponding intent by contextBoost.
var (
	feelingsPrompts = []string{"how are you feeling", "how do you feel", "what's your mood", "how's your mood"}
	genrePrompts    = []string{"what genre", "what kind of music", "type of music", "which genre"}
	activityPrompts = []string{"what are you doing", "what are you up to", "what activity", "doing right now"}
)
