package web

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/justestif/go-mood-dj/internal/db"
	"github.com/justestif/go-mood-dj/internal/dialogue"
	"github.com/justestif/go-mood-dj/internal/engine"
	"github.com/justestif/go-mood-dj/internal/mood"
	"github.com/justestif/go-mood-dj/internal/music"
)

const (
	defaultRecommendLimit = 10
	maxRecommendLimit     = 50
)

// ConversationStore persists conversation records.
// Satisfied by *db.ConversationRepository; tests substitute a fake.
type ConversationStore interface {
	Create(ctx context.Context, conv *db.Conversation) error
	Get(ctx context.Context, id uuid.UUID) (*db.Conversation, error)
	Touch(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TurnStore persists transcript turns.
// Satisfied by *db.TurnRepository; tests substitute a fake.
type TurnStore interface {
	Append(ctx context.Context, turn *db.ConversationTurn) error
	List(ctx context.Context, conversationID uuid.UUID) ([]db.ConversationTurn, error)
}

// Handlers contains the JSON API handlers.
type Handlers struct {
	sessions    *SessionStore
	recommender music.Recommender
	provider    string

	// conversations and turns are optional; when nil, sessions live only
	// in memory and the transcript endpoint reports not found.
	conversations ConversationStore
	turns         TurnStore
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(sessions *SessionStore, recommender music.Recommender, provider string, conversations ConversationStore, turns TurnStore) *Handlers {
	return &Handlers{
		sessions:      sessions,
		recommender:   recommender,
		provider:      provider,
		conversations: conversations,
		turns:         turns,
	}
}

type conversationResponse struct {
	ID        uuid.UUID `json:"id"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateConversation starts a new session (POST /api/conversations).
func (h *Handlers) CreateConversation(w http.ResponseWriter, r *http.Request) {
	conv := h.sessions.Create(h.provider)

	if h.conversations != nil {
		record := &db.Conversation{
			ID:        conv.ID,
			Provider:  conv.Provider,
			CreatedAt: conv.CreatedAt,
			UpdatedAt: conv.CreatedAt,
		}
		if err := h.conversations.Create(r.Context(), record); err != nil {
			log.Printf("persisting conversation %s: %v", conv.ID, err)
		}
	}

	writeJSON(w, http.StatusCreated, conversationResponse{
		ID:        conv.ID,
		Provider:  conv.Provider,
		CreatedAt: conv.CreatedAt,
	})
}

type turnRequest struct {
	Text string `json:"text"`
}

// PostTurn processes one user utterance (POST /api/conversations/{id}/turns).
func (h *Handlers) PostTurn(w http.ResponseWriter, r *http.Request) {
	conv := h.conversationFromRequest(w, r)
	if conv == nil {
		return
	}

	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	conv.Lock()
	result := conv.Engine.Turn(req.Text)
	conv.Unlock()

	if h.turns != nil {
		h.persistTurns(r, conv, req.Text, result)
	}

	writeJSON(w, http.StatusOK, result)
}

// GetConversation returns the session state (GET /api/conversations/{id}).
func (h *Handlers) GetConversation(w http.ResponseWriter, r *http.Request) {
	conv := h.conversationFromRequest(w, r)
	if conv == nil {
		return
	}

	conv.Lock()
	snapshot := conv.Engine.Snapshot()
	conv.Unlock()

	writeJSON(w, http.StatusOK, snapshot)
}

type recommendationsResponse struct {
	Mood    mood.Mood     `json:"mood"`
	Genre   string        `json:"genre,omitempty"`
	Message string        `json:"message"`
	Tracks  []music.Track `json:"tracks"`
}

// GetRecommendations returns tracks for the session's detected mood
// (GET /api/conversations/{id}/recommendations).
func (h *Handlers) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	conv := h.conversationFromRequest(w, r)
	if conv == nil {
		return
	}

	limit := defaultRecommendLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxRecommendLimit {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and "+strconv.Itoa(maxRecommendLimit))
			return
		}
		limit = n
	}

	conv.Lock()
	snapshot := conv.Engine.Snapshot()
	message := conv.Engine.Conclude()
	conv.Unlock()

	m := latestMood(snapshot)
	genre := ""
	if len(snapshot.MentionedGenres) > 0 {
		genre = snapshot.MentionedGenres[0]
	}

	tracks, err := h.recommender.Recommend(r.Context(), m, limit, genre)
	if err != nil {
		log.Printf("recommending for conversation %s: %v", conv.ID, err)
		writeError(w, http.StatusBadGateway, "recommendation provider unavailable")
		return
	}

	writeJSON(w, http.StatusOK, recommendationsResponse{
		Mood:    m,
		Genre:   genre,
		Message: message,
		Tracks:  tracks,
	})
}

type transcriptTurn struct {
	Seq        int       `json:"seq"`
	Speaker    string    `json:"speaker"`
	Text       string    `json:"text"`
	Mood       *string   `json:"mood,omitempty"`
	Confidence *float64  `json:"confidence,omitempty"`
	Topic      *string   `json:"topic,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type transcriptResponse struct {
	ID        uuid.UUID        `json:"id"`
	Provider  string           `json:"provider"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
	Turns     []transcriptTurn `json:"turns"`
}

// GetTranscript returns the persisted transcript for a conversation
// (GET /api/conversations/{id}/turns). Unlike the live endpoints it reads
// straight from the database, so ended and expired sessions stay
// inspectable.
func (h *Handlers) GetTranscript(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid conversation ID")
		return
	}

	if h.conversations == nil || h.turns == nil {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}

	conv, err := h.conversations.Get(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}
	if err != nil {
		log.Printf("loading conversation %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "loading conversation failed")
		return
	}

	turns, err := h.turns.List(r.Context(), id)
	if err != nil {
		log.Printf("loading turns for %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "loading transcript failed")
		return
	}

	out := make([]transcriptTurn, len(turns))
	for i, t := range turns {
		out[i] = transcriptTurn{
			Seq:        t.Seq,
			Speaker:    t.Speaker,
			Text:       t.Text,
			Mood:       t.Mood,
			Confidence: t.Confidence,
			Topic:      t.Topic,
			CreatedAt:  t.CreatedAt,
		}
	}

	writeJSON(w, http.StatusOK, transcriptResponse{
		ID:        conv.ID,
		Provider:  conv.Provider,
		CreatedAt: conv.CreatedAt,
		UpdatedAt: conv.UpdatedAt,
		Turns:     out,
	})
}

type endResponse struct {
	Conclusion string `json:"conclusion"`
}

// EndConversation closes a session (DELETE /api/conversations/{id}).
func (h *Handlers) EndConversation(w http.ResponseWriter, r *http.Request) {
	conv := h.conversationFromRequest(w, r)
	if conv == nil {
		return
	}

	conv.Lock()
	conclusion := conv.Engine.Conclude()
	conv.Unlock()

	h.sessions.Delete(conv.ID)

	// Ending a conversation removes its persisted record as well; turns
	// go with it via the cascade.
	if h.conversations != nil {
		if err := h.conversations.Delete(r.Context(), conv.ID); err != nil && !errors.Is(err, db.ErrNotFound) {
			log.Printf("deleting conversation %s: %v", conv.ID, err)
		}
	}

	writeJSON(w, http.StatusOK, endResponse{Conclusion: conclusion})
}

// conversationFromRequest resolves the {id} URL parameter to a live
// conversation, writing the error response itself on failure.
func (h *Handlers) conversationFromRequest(w http.ResponseWriter, r *http.Request) *Conversation {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid conversation ID")
		return nil
	}

	conv := h.sessions.Get(id)
	if conv == nil {
		writeError(w, http.StatusNotFound, "conversation not found")
		return nil
	}
	return conv
}

// persistTurns writes the user and agent turns to the database.
// Persistence failures are logged, not surfaced; the conversation
// continues in memory.
func (h *Handlers) persistTurns(r *http.Request, conv *Conversation, userText string, result engine.Result) {
	now := time.Now()
	moodStr := string(result.Analysis.Dominant)
	conf := result.Analysis.Confidence
	topic := string(result.Topic)

	userTurn := &db.ConversationTurn{
		ConversationID: conv.ID,
		Speaker:        string(dialogue.SpeakerUser),
		Text:           userText,
		Mood:           &moodStr,
		Confidence:     &conf,
		Topic:          &topic,
		CreatedAt:      now,
	}
	agentTurn := &db.ConversationTurn{
		ConversationID: conv.ID,
		Speaker:        string(dialogue.SpeakerAgent),
		Text:           result.Response,
		CreatedAt:      now,
	}

	ctx := r.Context()
	if err := h.turns.Append(ctx, userTurn); err != nil {
		log.Printf("persisting user turn for %s: %v", conv.ID, err)
		return
	}
	if err := h.turns.Append(ctx, agentTurn); err != nil {
		log.Printf("persisting agent turn for %s: %v", conv.ID, err)
		return
	}
	if h.conversations == nil {
		return
	}
	if err := h.conversations.Touch(ctx, conv.ID); err != nil && !errors.Is(err, db.ErrNotFound) {
		log.Printf("touching conversation %s: %v", conv.ID, err)
	}
}

// latestMood pulls the newest detected mood from a snapshot, defaulting
// to neutral when nothing has been detected yet.
func latestMood(snapshot dialogue.Context) mood.Mood {
	if len(snapshot.DetectedMoods) == 0 {
		return mood.Neutral
	}
	return snapshot.DetectedMoods[0]
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// Ensure the pgx repositories satisfy the store interfaces.
var (
	_ ConversationStore = (*db.ConversationRepository)(nil)
	_ TurnStore         = (*db.TurnRepository)(nil)
)
