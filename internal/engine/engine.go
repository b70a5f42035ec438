// Package engine wires the mood scorer, intent classifier, entity
// extractor, dialogue policy and response generator into the per-turn
// conversation pipeline. One Engine serves exactly one session; the host
// constructs it explicitly and serializes turns.
package engine

import (
	"math/rand"

	"github.com/justestif/go-mood-dj/internal/dialogue"
	"github.com/justestif/go-mood-dj/internal/intent"
	"github.com/justestif/go-mood-dj/internal/mood"
	"github.com/justestif/go-mood-dj/internal/response"
)

// Engine runs the conversation pipeline for a single session.
type Engine struct {
	ctx *dialogue.Context
	gen *response.Generator
}

// Result is everything one user turn produced. The mood analysis is handed
// to the recommendation collaborator; the response text goes to speech
// synthesis and the transcript display.
type Result struct {
	Response string                `json:"response"`
	Topic    dialogue.Topic        `json:"topic"`
	Analysis mood.Analysis         `json:"analysis"`
	Intents  intent.Classification `json:"intents"`
	Entities intent.Entities       `json:"entities"`
}

// New creates an Engine with a fresh dialogue context. The random source
// drives template and enhancer selection only; pass a fixed seed for
// reproducible conversations.
func New(rng *rand.Rand) *Engine {
	return &Engine{
		ctx: dialogue.NewContext(),
		gen: response.New(rng),
	}
}

// Turn processes one user utterance: classify its intents, extract
// entities, rescore the mood over the whole transcript, fold everything
// into the context, pick the next move and render the reply. Purely
// computational; it never fails, degrading to neutral mood and
// clarification topics on degenerate input.
func (e *Engine) Turn(utterance string) Result {
	cls := intent.Classify(utterance, e.ctx.LastAgentText())
	ents := intent.ExtractEntities(utterance)

	// The scorer always recomputes over every user utterance so far,
	// including this one; agent turns are excluded.
	transcript := append(e.ctx.UserUtterances(), utterance)
	analysis := mood.Analyze(transcript)

	e.ctx.Observe(analysis, cls, ents)
	topic := e.ctx.NextMove()
	reply := e.gen.Respond(topic, e.ctx)

	e.ctx.Append(dialogue.SpeakerUser, utterance)
	e.ctx.Append(dialogue.SpeakerAgent, reply)

	return Result{
		Response: reply,
		Topic:    topic,
		Analysis: analysis,
		Intents:  cls,
		Entities: ents,
	}
}

// Conclude renders a session wrap-up line from the gathered context.
func (e *Engine) Conclude() string {
	return e.gen.Conclude(e.ctx)
}

// Snapshot exposes a read-only copy of the session state for external
// collaborators.
func (e *Engine) Snapshot() dialogue.Context {
	return e.ctx.Snapshot()
}
