package intent

import (
	"regexp"
	"strings"
)

// Entities holds the mentions extracted from a single utterance. All lists
// are deduplicated in first-seen order; the caller merges them into
// session-level sets.
type Entities struct {
	Genres     []string `json:"genres"`
	Activities []string `json:"activities"`
	TimesOfDay []string `json:"timesOfDay"`
	Artists    []string `json:"artists"`
}

// genreVocabulary is matched as substrings against the lowercased utterance.
var genreVocabulary = []string{
	"rock", "pop", "jazz", "classical", "hip hop", "hiphop", "rap",
	"electronic", "edm", "techno", "house", "indie", "folk", "country",
	"blues", "metal", "punk", "soul", "funk", "reggae", "r&b", "rnb",
	"disco", "ambient", "lofi", "lo-fi", "latin", "gospel", "acoustic",
}

var activityVocabulary = []string{
	"working", "studying", "running", "exercising", "workout", "cooking",
	"cleaning", "driving", "commuting", "reading", "relaxing", "gaming",
	"walking", "dancing", "meditating", "yoga", "partying", "sleeping",
	"focusing",
}

var timeOfDayVocabulary = []string{
	"late night", "early morning", "morning", "afternoon", "evening",
	"night", "midnight", "dawn", "dusk", "noon", "sunrise", "sunset",
	"tonight", "today",
}

// artistPattern captures a Title-Case word sequence after a trigger verb:
// "I love Tame Impala", "big fan of Miles Davis".
var artistPattern = regexp.MustCompile(
	`\b(?:like|love|enjoy|fan of|listen to)\s+((?:[A-Z][\w']*)(?:\s+[A-Z][\w']*)*)`)

// ExtractEntities scans one utterance for genre, activity, time-of-day and
// artist mentions. Pure function; the original casing is used only for
// artist detection.
func ExtractEntities(utterance string) Entities {
	lower := strings.ToLower(utterance)

	return Entities{
		Genres:     matchVocabulary(lower, genreVocabulary),
		Activities: matchVocabulary(lower, activityVocabulary),
		TimesOfDay: matchVocabulary(lower, timeOfDayVocabulary),
		Artists:    extractArtists(utterance),
	}
}

// matchVocabulary returns vocabulary terms present in the text as
// substrings, deduplicated in first-seen (text-position) order.
func matchVocabulary(lower string, vocabulary []string) []string {
	type hit struct {
		term string
		pos  int
	}
	var hits []hit
	seen := make(map[string]bool)
	for _, term := range vocabulary {
		pos := strings.Index(lower, term)
		if pos < 0 || seen[term] {
			continue
		}
		seen[term] = true
		hits = append(hits, hit{term: term, pos: pos})
	}

	// Insertion sort by position keeps first-seen order in the utterance.
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].pos < hits[j-1].pos; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}

	var out []string
	for _, h := range hits {
		out = append(out, h.term)
	}
	return out
}

func extractArtists(utterance string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range artistPattern.FindAllStringSubmatch(utterance, -1) {
		name := strings.TrimSpace(m[1])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
