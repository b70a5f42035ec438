package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/justestif/go-mood-dj/internal/db"
	"github.com/justestif/go-mood-dj/internal/mood"
	"github.com/justestif/go-mood-dj/internal/music"
)

// fakeRecommender returns canned tracks and records the last request.
type fakeRecommender struct {
	lastMood  mood.Mood
	lastLimit int
	lastGenre string
	tracks    []music.Track
	err       error
}

func (f *fakeRecommender) Recommend(ctx context.Context, m mood.Mood, limit int, genre string) ([]music.Track, error) {
	f.lastMood = m
	f.lastLimit = limit
	f.lastGenre = genre
	if f.err != nil {
		return nil, f.err
	}
	return f.tracks, nil
}

func newTestServer(rec music.Recommender) *Server {
	return NewServer(ServerConfig{
		Addr:        "127.0.0.1:0",
		Provider:    music.ProviderSpotify,
		Recommender: rec,
	})
}

func createConversation(t *testing.T, srv *Server) string {
	t.Helper()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/conversations", nil)
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("create conversation status = %d, want %d", rr.Code, http.StatusCreated)
	}

	var resp struct {
		ID       string `json:"id"`
		Provider string `json:"provider"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding create response: %v", err)
	}
	if resp.ID == "" {
		t.Fatal("create response has empty ID")
	}
	if resp.Provider != music.ProviderSpotify {
		t.Errorf("provider = %q, want %q", resp.Provider, music.ProviderSpotify)
	}
	return resp.ID
}

func postTurn(t *testing.T, srv *Server, id, text string) map[string]json.RawMessage {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"text": text})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/conversations/"+id+"/turns", bytes.NewReader(body))
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("post turn status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var result map[string]json.RawMessage
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding turn response: %v", err)
	}
	return result
}

func TestConversationLifecycle(t *testing.T) {
	srv := newTestServer(&fakeRecommender{})
	id := createConversation(t, srv)

	result := postTurn(t, srv, id, "Hi there!")
	var response string
	if err := json.Unmarshal(result["response"], &response); err != nil {
		t.Fatalf("decoding response field: %v", err)
	}
	if response == "" {
		t.Error("turn response is empty")
	}

	// Session state reflects the turn.
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/conversations/"+id, nil)
	srv.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("get conversation status = %d", rr.Code)
	}
	var snapshot struct {
		History []struct {
			Speaker string `json:"speaker"`
			Text    string `json:"text"`
		} `json:"conversationHistory"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &snapshot); err != nil {
		t.Fatalf("decoding snapshot: %v", err)
	}
	if len(snapshot.History) != 2 {
		t.Errorf("history has %d turns, want 2", len(snapshot.History))
	}

	// Ending the conversation removes it.
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/conversations/"+id, nil)
	srv.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("end conversation status = %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/conversations/"+id, nil)
	srv.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("get after end status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestGetRecommendations(t *testing.T) {
	rec := &fakeRecommender{
		tracks: []music.Track{{ID: "t1", Name: "Night Drive", Artist: "Synth Duo"}},
	}
	srv := newTestServer(rec)
	id := createConversation(t, srv)

	postTurn(t, srv, id, "I'm feeling really anxious about work")
	postTurn(t, srv, id, "Some calm jazz would help")

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/conversations/"+id+"/recommendations?limit=5", nil)
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("recommendations status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Mood    string        `json:"mood"`
		Genre   string        `json:"genre"`
		Message string        `json:"message"`
		Tracks  []music.Track `json:"tracks"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding recommendations: %v", err)
	}

	if resp.Mood != string(mood.Anxious) {
		t.Errorf("mood = %q, want %q", resp.Mood, mood.Anxious)
	}
	if resp.Genre != "jazz" {
		t.Errorf("genre = %q, want jazz", resp.Genre)
	}
	if resp.Message == "" {
		t.Error("message is empty")
	}
	if len(resp.Tracks) != 1 || resp.Tracks[0].ID != "t1" {
		t.Errorf("tracks = %+v", resp.Tracks)
	}
	if rec.lastLimit != 5 {
		t.Errorf("recommender limit = %d, want 5", rec.lastLimit)
	}
}

func TestGetRecommendations_DefaultsToNeutral(t *testing.T) {
	rec := &fakeRecommender{}
	srv := newTestServer(rec)
	id := createConversation(t, srv)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/conversations/"+id+"/recommendations", nil)
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("recommendations status = %d", rr.Code)
	}
	if rec.lastMood != mood.Neutral {
		t.Errorf("mood = %q, want neutral for fresh conversation", rec.lastMood)
	}
	if rec.lastLimit != defaultRecommendLimit {
		t.Errorf("limit = %d, want default %d", rec.lastLimit, defaultRecommendLimit)
	}
}

func TestPostTurn_Validation(t *testing.T) {
	srv := newTestServer(&fakeRecommender{})
	id := createConversation(t, srv)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"blank text", `{"text": "   "}`},
		{"missing text", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/conversations/"+id+"/turns", bytes.NewReader([]byte(tt.body)))
			srv.Handler().ServeHTTP(rr, req)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestUnknownConversation(t *testing.T) {
	srv := newTestServer(&fakeRecommender{})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/conversations/not-a-uuid", nil)
	srv.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("malformed ID status = %d, want %d", rr.Code, http.StatusBadRequest)
	}

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/conversations/00000000-0000-0000-0000-000000000000", nil)
	srv.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown ID status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(&fakeRecommender{})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	srv.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("healthz status = %d, want %d", rr.Code, http.StatusOK)
	}
}

// fakeConversationStore and fakeTurnStore are in-memory stand-ins for the
// pgx repositories.
type fakeConversationStore struct {
	mu    sync.Mutex
	convs map[uuid.UUID]db.Conversation
}

func newFakeConversationStore() *fakeConversationStore {
	return &fakeConversationStore{convs: make(map[uuid.UUID]db.Conversation)}
}

func (f *fakeConversationStore) Create(_ context.Context, conv *db.Conversation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.convs[conv.ID] = *conv
	return nil
}

func (f *fakeConversationStore) Get(_ context.Context, id uuid.UUID) (*db.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	conv, ok := f.convs[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &conv, nil
}

func (f *fakeConversationStore) Touch(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	conv, ok := f.convs[id]
	if !ok {
		return db.ErrNotFound
	}
	conv.UpdatedAt = time.Now()
	f.convs[id] = conv
	return nil
}

func (f *fakeConversationStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.convs[id]; !ok {
		return db.ErrNotFound
	}
	delete(f.convs, id)
	return nil
}

type fakeTurnStore struct {
	mu    sync.Mutex
	turns map[uuid.UUID][]db.ConversationTurn
}

func newFakeTurnStore() *fakeTurnStore {
	return &fakeTurnStore{turns: make(map[uuid.UUID][]db.ConversationTurn)}
}

func (f *fakeTurnStore) Append(_ context.Context, turn *db.ConversationTurn) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := *turn
	t.Seq = len(f.turns[turn.ConversationID])
	f.turns[turn.ConversationID] = append(f.turns[turn.ConversationID], t)
	return nil
}

func (f *fakeTurnStore) List(_ context.Context, conversationID uuid.UUID) ([]db.ConversationTurn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]db.ConversationTurn(nil), f.turns[conversationID]...), nil
}

func newPersistingTestServer(rec music.Recommender) (*Server, *fakeConversationStore, *fakeTurnStore) {
	srv := newTestServer(rec)
	convs := newFakeConversationStore()
	turns := newFakeTurnStore()
	srv.handlers.conversations = convs
	srv.handlers.turns = turns
	return srv, convs, turns
}

func getTranscript(t *testing.T, srv *Server, id string) (int, transcriptResponse) {
	t.Helper()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/conversations/"+id+"/turns", nil)
	srv.Handler().ServeHTTP(rr, req)

	var resp transcriptResponse
	if rr.Code == http.StatusOK {
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decoding transcript: %v", err)
		}
	}
	return rr.Code, resp
}

func TestGetTranscript(t *testing.T) {
	srv, _, _ := newPersistingTestServer(&fakeRecommender{})
	id := createConversation(t, srv)

	postTurn(t, srv, id, "I'm feeling really anxious about work")

	code, resp := getTranscript(t, srv, id)
	if code != http.StatusOK {
		t.Fatalf("transcript status = %d, want %d", code, http.StatusOK)
	}
	if resp.ID.String() != id {
		t.Errorf("transcript ID = %s, want %s", resp.ID, id)
	}
	if resp.Provider != music.ProviderSpotify {
		t.Errorf("provider = %q, want %q", resp.Provider, music.ProviderSpotify)
	}
	if len(resp.Turns) != 2 {
		t.Fatalf("transcript has %d turns, want 2", len(resp.Turns))
	}

	user, agent := resp.Turns[0], resp.Turns[1]
	if user.Seq != 0 || agent.Seq != 1 {
		t.Errorf("turn seqs = %d, %d, want 0, 1", user.Seq, agent.Seq)
	}
	if user.Speaker != "You" || agent.Speaker != "AI" {
		t.Errorf("speakers = %q, %q", user.Speaker, agent.Speaker)
	}
	if user.Text != "I'm feeling really anxious about work" {
		t.Errorf("user text = %q", user.Text)
	}
	if user.Mood == nil || *user.Mood != string(mood.Anxious) {
		t.Errorf("user turn mood = %v, want anxious", user.Mood)
	}
	if user.Confidence == nil || *user.Confidence <= 0.3 {
		t.Errorf("user turn confidence = %v, want > 0.3", user.Confidence)
	}
	if user.Topic == nil || *user.Topic == "" {
		t.Errorf("user turn topic = %v, want set", user.Topic)
	}
	if agent.Mood != nil || agent.Confidence != nil || agent.Topic != nil {
		t.Error("agent turn should carry no mood annotations")
	}
}

func TestGetTranscript_UnknownConversation(t *testing.T) {
	srv, _, _ := newPersistingTestServer(&fakeRecommender{})

	code, _ := getTranscript(t, srv, uuid.NewString())
	if code != http.StatusNotFound {
		t.Errorf("unknown ID status = %d, want %d", code, http.StatusNotFound)
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/conversations/not-a-uuid/turns", nil)
	srv.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("malformed ID status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestGetTranscript_PersistenceDisabled(t *testing.T) {
	srv := newTestServer(&fakeRecommender{})
	id := createConversation(t, srv)

	code, _ := getTranscript(t, srv, id)
	if code != http.StatusNotFound {
		t.Errorf("transcript status without persistence = %d, want %d", code, http.StatusNotFound)
	}
}

func TestEndConversation_DeletesPersistedRecord(t *testing.T) {
	srv, convs, _ := newPersistingTestServer(&fakeRecommender{})
	id := createConversation(t, srv)
	postTurn(t, srv, id, "Hi there!")

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/conversations/"+id, nil)
	srv.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("end conversation status = %d", rr.Code)
	}

	if len(convs.convs) != 0 {
		t.Errorf("persisted record not deleted, %d remaining", len(convs.convs))
	}

	code, _ := getTranscript(t, srv, id)
	if code != http.StatusNotFound {
		t.Errorf("transcript after end status = %d, want %d", code, http.StatusNotFound)
	}
}
