package mood

import (
	"regexp"
	"strings"
)

const (
	// negationWindow is how many tokens a negation reaches forward.
	negationWindow = 10

	// negationPenalty is subtracted from a mood negated within the window.
	negationPenalty = 1.5

	// rebalanceWeight is added to the implied mood after a negation.
	rebalanceWeight = 0.7

	// explicitDenialPenalty is the extra subtraction for "don't feel <mood>".
	explicitDenialPenalty = 2.0

	// escalationFactor boosts the two leading moods on an escalated turn.
	escalationFactor = 1.2

	// Dominant-mood thresholds below which the result falls back to neutral.
	minDominantScore = 0.5
	minConfidence    = 0.3

	// secondaryRatio is the fraction of the dominant score a runner-up
	// must reach to be reported as a secondary mood.
	secondaryRatio = 0.7
)

// explicitDenialPattern matches "don't/doesn't feel ... <mood adjective>"
// with up to 15 filler words between "feel" and the adjective.
var explicitDenialPattern = regexp.MustCompile(
	`(?:don't|doesn't)\s+feel\s+(?:[a-z']+\s+){0,15}?(happy|sad|angry|anxious|energetic|calm|tired|bored|neutral)\b`)

// keywordMoods is the reverse index from keyword to the moods it signals.
var keywordMoods = buildKeywordIndex()

func buildKeywordIndex() map[string][]Mood {
	idx := make(map[string][]Mood)
	for _, m := range Canonical {
		for _, kw := range moodKeywords[m] {
			idx[kw] = append(idx[kw], m)
		}
	}
	return idx
}

// Analyze scores the full transcript of user utterances and returns a fresh
// Analysis. It is a pure function: no state is kept between calls, and the
// whole transcript is rescored every time. Agent turns must already be
// filtered out by the caller.
func Analyze(utterances []string) Analysis {
	text := normalize(utterances)
	tokens := tokenize(text)

	scores := make(map[Mood]float64, len(Canonical))
	for _, m := range Canonical {
		scores[m] = 0
	}

	scoreKeywords(scores, tokens)
	scoreCompounds(scores, text)
	scoreIdioms(scores, text)
	scoreNegations(scores, tokens, text)
	applyEscalation(scores, utterances)

	dominant := argMax(scores)
	dominantScore := scores[dominant]

	confidence := 0.0
	if sum := sumAbs(scores); sum > 0 {
		confidence = dominantScore / sum
	}
	if confidence > 1 {
		confidence = 1
	}
	if confidence < 0 {
		confidence = 0
	}

	secondary := findSecondary(scores, dominant, dominantScore)

	// Weak or ambiguous signal falls back to neutral; the confidence value
	// computed above is reported unchanged.
	reported := dominant
	if dominantScore <= minDominantScore || confidence < minConfidence {
		reported = Neutral
	}

	return Analysis{
		Dominant:   reported,
		Confidence: confidence,
		Scores:     scores,
		Secondary:  secondary,
	}
}

// normalize lowercases the utterances and joins them with single spaces.
func normalize(utterances []string) string {
	parts := make([]string, 0, len(utterances))
	for _, u := range utterances {
		u = strings.TrimSpace(strings.ToLower(u))
		if u != "" {
			parts = append(parts, u)
		}
	}
	return strings.Join(parts, " ")
}

// tokenize splits normalized text into word tokens, keeping apostrophes so
// contractions like "don't" survive as single tokens.
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '\'' {
			return false
		}
		return true
	})
}

// scoreKeywords runs the keyword pass: each keyword occurrence contributes
// 1.0 to its mood, multiplied by the weight of an intensity modifier when
// one immediately precedes it.
func scoreKeywords(scores map[Mood]float64, tokens []string) {
	for i, tok := range tokens {
		moods, ok := keywordMoods[tok]
		if !ok {
			continue
		}
		contribution := 1.0
		if i > 0 {
			if w, ok := intensityModifiers[tokens[i-1]]; ok {
				contribution *= w
			}
		}
		for _, m := range moods {
			scores[m] += contribution
		}
	}
}

// scoreCompounds adds weight*compoundBoost for every compound-emotion
// phrase present in the text.
func scoreCompounds(scores map[Mood]float64, text string) {
	for _, c := range compoundEmotions {
		if !strings.Contains(text, c.phrase) {
			continue
		}
		for m, w := range c.weights {
			scores[m] += w * compoundBoost
		}
	}
}

// scoreIdioms applies the configured deltas for every idiom present.
func scoreIdioms(scores map[Mood]float64, text string) {
	for _, idiom := range contextualIdioms {
		if !strings.Contains(text, idiom.phrase) {
			continue
		}
		for m, d := range idiom.deltas {
			scores[m] += d
		}
	}
}

// scoreNegations handles both the token-window negation pass and the
// stricter explicit-denial pattern.
func scoreNegations(scores map[Mood]float64, tokens []string, text string) {
	for i, tok := range tokens {
		if !negationTokens[tok] {
			continue
		}
		end := i + 1 + negationWindow
		if end > len(tokens) {
			end = len(tokens)
		}
		negated := make(map[Mood]bool)
		for j := i + 1; j < end; j++ {
			for _, m := range keywordMoods[tokens[j]] {
				if negated[m] {
					continue
				}
				negated[m] = true
				scores[m] -= negationPenalty
				if target, ok := negationRebalance[m]; ok {
					scores[target] += rebalanceWeight
				}
			}
		}
	}

	for _, match := range explicitDenialPattern.FindAllStringSubmatch(text, -1) {
		scores[Mood(match[1])] -= explicitDenialPenalty
	}
}

// applyEscalation scans only the most recent utterance and, on the first
// escalation-vocabulary hit, boosts the two highest-scoring moods. Applied
// at most once per analysis and only when the transcript has at least two
// user utterances.
func applyEscalation(scores map[Mood]float64, utterances []string) {
	if len(utterances) < 2 {
		return
	}
	last := strings.ToLower(utterances[len(utterances)-1])
	for _, word := range escalationVocabulary {
		if !strings.Contains(last, word) {
			continue
		}
		first, second := topTwo(scores)
		scores[first] *= escalationFactor
		scores[second] *= escalationFactor
		return
	}
}

// argMax returns the highest-scoring mood, breaking ties by canonical order.
func argMax(scores map[Mood]float64) Mood {
	best := Canonical[0]
	for _, m := range Canonical[1:] {
		if scores[m] > scores[best] {
			best = m
		}
	}
	return best
}

// topTwo returns the two highest-scoring moods in canonical tie-break order.
func topTwo(scores map[Mood]float64) (Mood, Mood) {
	first := argMax(scores)
	second := Mood("")
	for _, m := range Canonical {
		if m == first {
			continue
		}
		if second == "" || scores[m] > scores[second] {
			second = m
		}
	}
	return first, second
}

func sumAbs(scores map[Mood]float64) float64 {
	var sum float64
	for _, s := range scores {
		if s < 0 {
			sum -= s
		} else {
			sum += s
		}
	}
	return sum
}

// findSecondary returns the best runner-up mood if it scored at least
// secondaryRatio of the pre-override dominant score. A zero or negative
// runner-up is never reported.
func findSecondary(scores map[Mood]float64, dominant Mood, dominantScore float64) *SecondaryMood {
	var best Mood
	found := false
	for _, m := range Canonical {
		if m == dominant {
			continue
		}
		if !found || scores[m] > scores[best] {
			best = m
			found = true
		}
	}
	if !found || scores[best] <= 0 || scores[best] < secondaryRatio*dominantScore {
		return nil
	}
	return &SecondaryMood{Mood: best, Score: scores[best]}
}
