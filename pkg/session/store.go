package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wayfarer-ai/wayfarer/pkg/events"
	"github.com/wayfarer-ai/wayfarer/pkg/models"
)

// Store is the process-wide registry of research sessions. Sessions are
// never evicted — a deliberate limitation of the in-memory design;
// production hardening would add TTL-based cleanup.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create allocates a fresh session in running status and registers it.
func (st *Store) Create(prefs models.TripPreferences) *Session {
	sess := &Session{
		ID:        uuid.New().String(),
		Prefs:     prefs,
		CreatedAt: time.Now(),
		Events:    events.NewChannel(),
		results:   make(map[string]string),
		status:    StatusRunning,
	}

	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()

	return sess
}

// Get retrieves a session by ID.
func (st *Store) Get(sessionID string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	sess, ok := st.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session not found: %s", sessionID)
	}
	return sess, nil
}

// Len reports the number of registered sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
