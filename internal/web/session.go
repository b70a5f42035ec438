// Package web provides the HTTP API for the mood DJ conversation service.
package web

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/justestif/go-mood-dj/internal/engine"
)

const sessionTTL = 24 * time.Hour

// Conversation is one live dialogue session. Turns are serialized through
// the mutex; the engine itself is single-session by design.
type Conversation struct {
	ID        uuid.UUID
	Provider  string
	Engine    *engine.Engine
	CreatedAt time.Time

	mu         sync.Mutex
	lastActive time.Time
}

// Lock serializes turn processing for this conversation.
func (c *Conversation) Lock() { c.mu.Lock() }

// Unlock releases the turn lock.
func (c *Conversation) Unlock() { c.mu.Unlock() }

// touch records activity, extending the session's lifetime.
func (c *Conversation) touch() {
	c.mu.Lock()
	c.lastActive = time.Now()
	c.mu.Unlock()
}

// SessionStore manages live conversations in memory.
type SessionStore struct {
	mu            sync.RWMutex
	conversations map[uuid.UUID]*Conversation
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		conversations: make(map[uuid.UUID]*Conversation),
	}
}

// Create starts a new conversation with its own engine and random source.
func (s *SessionStore) Create(provider string) *Conversation {
	now := time.Now()
	conv := &Conversation{
		ID:         uuid.New(),
		Provider:   provider,
		Engine:     engine.New(rand.New(rand.NewSource(now.UnixNano()))),
		CreatedAt:  now,
		lastActive: now,
	}

	s.mu.Lock()
	s.conversations[conv.ID] = conv
	s.mu.Unlock()

	return conv
}

// Get retrieves a conversation by ID, or nil if unknown or expired.
func (s *SessionStore) Get(id uuid.UUID) *Conversation {
	s.mu.RLock()
	conv, ok := s.conversations[id]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	conv.mu.Lock()
	expired := time.Since(conv.lastActive) > sessionTTL
	conv.mu.Unlock()
	if expired {
		s.Delete(id)
		return nil
	}

	conv.touch()
	return conv
}

// Delete removes a conversation by ID.
func (s *SessionStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	delete(s.conversations, id)
	s.mu.Unlock()
}

// Len returns the number of live conversations.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}
