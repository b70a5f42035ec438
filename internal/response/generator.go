// Package response renders dialogue topics into text via randomized
// template selection and placeholder substitution. All randomness flows
// through an injected source so behavior is reproducible in tests.
package response

import (
	"math/rand"
	"strings"

	"github.com/justestif/go-mood-dj/internal/dialogue"
)

// Enhancer gating thresholds and turn counts.
const (
	acknowledgmentMinTurns = 3
	enthusiasmMinTurns     = 5
	commonGateChance       = 0.7
	enthusiasmGateChance   = 0.8
)

// Generator renders responses for one session. Not safe for concurrent
// use; each session owns its own Generator, like it owns its Context.
type Generator struct {
	rng *rand.Rand
}

// New creates a Generator drawing from the given random source. Tests pass
// a fixed-seed rand.New(rand.NewSource(n)) to pin the choices.
func New(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Respond renders the topic into a response string: an optional enhancer
// prefix, a uniformly chosen topic template, and placeholder substitution
// from the session context.
func (g *Generator) Respond(topic dialogue.Topic, ctx *dialogue.Context) string {
	pool, ok := templates[topic]
	if !ok || len(pool) == 0 {
		pool = templates[dialogue.TopicClarification]
	}
	text := pool[g.rng.Intn(len(pool))]

	if enhancer := g.pickEnhancer(ctx); enhancer != "" {
		text = enhancer + " " + text
	}

	return g.substitute(text, topic, ctx)
}

// pickEnhancer gates each enhancer pool independently, merges the eligible
// pools and draws one phrase uniformly from the union. Returns "" when no
// pool passed its gate.
func (g *Generator) pickEnhancer(ctx *dialogue.Context) string {
	turns := ctx.UserTurnCount()

	var union []string
	if turns > acknowledgmentMinTurns && g.rng.Float64() > commonGateChance {
		union = append(union, acknowledgmentEnhancers...)
	}
	if turns > enthusiasmMinTurns && g.rng.Float64() > enthusiasmGateChance {
		union = append(union, enthusiasmEnhancers...)
	}
	if len(ctx.DetectedMoods) > 0 && g.rng.Float64() > commonGateChance {
		union = append(union, moodReflectionEnhancers...)
	}
	if len(ctx.MentionedGenres) > 1 && g.rng.Float64() > commonGateChance {
		union = append(union, genreRangeEnhancers...)
	}

	if len(union) == 0 {
		return ""
	}
	return union[g.rng.Intn(len(union))]
}

// Conclude renders a session wrap-up. Genre- and artist-aware templates
// are pooled alongside the base set, not chosen hierarchically, so a rich
// session naturally skews toward the richer farewells.
func (g *Generator) Conclude(ctx *dialogue.Context) string {
	pool := append([]string(nil), conclusionTemplates...)
	if len(ctx.MentionedGenres) > 0 {
		pool = append(pool, conclusionGenreTemplates...)
	}
	if len(ctx.MentionedArtists) > 0 {
		pool = append(pool, conclusionArtistTemplates...)
	}
	return g.substitute(pool[g.rng.Intn(len(pool))], "", ctx)
}

// substitute fills {mood}, {genre}, {activity} and {artist} from the
// context, with literal fallbacks when nothing was gathered yet.
func (g *Generator) substitute(text string, topic dialogue.Topic, ctx *dialogue.Context) string {
	moodValue := string(ctx.LatestMood())
	if moodValue == "" {
		moodValue = moodFallback[topic]
		if moodValue == "" {
			moodValue = defaultMoodFallback
		}
	}

	genre := "music"
	if len(ctx.MentionedGenres) > 0 {
		genre = ctx.MentionedGenres[0]
	}

	activity := "listening"
	if ctx.Preferences.Activity != "" {
		activity = ctx.Preferences.Activity
	}

	artist := "your favorites"
	if len(ctx.MentionedArtists) > 0 {
		artist = ctx.MentionedArtists[0]
	}

	return strings.NewReplacer(
		"{mood}", moodValue,
		"{genre}", genre,
		"{activity}", activity,
		"{artist}", artist,
	).Replace(text)
}
