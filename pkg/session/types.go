// Package session holds the in-memory state of research runs: the
// mutex-guarded session record and the process-wide store keyed by ID.
package session

import (
	"sync"
	"time"

	"github.com/wayfarer-ai/wayfarer/pkg/events"
	"github.com/wayfarer-ai/wayfarer/pkg/models"
)

// Status represents the lifecycle state of a research session.
// A session transitions running→complete or running→error exactly once
// and never reverts.
type Status string

const (
	StatusRunning  Status = "running"
	StatusComplete Status = "complete"
	StatusError    Status = "error"
)

// PhaseResult pairs a phase identifier with its finished document.
type PhaseResult struct {
	PhaseID  string
	Markdown string
}

// Session is the unit of orchestration state for one research run.
//
// The background worker is the sole writer of results, total searches,
// status, and the Q&A system prompt; chat turns write only the chat
// history. All mutations happen under the session mutex so concurrent
// readers never observe a torn update. Sessions live for the process
// lifetime — there is no eviction.
type Session struct {
	ID        string
	Prefs     models.TripPreferences
	CreatedAt time.Time

	// Events is this session's ordered event queue. The worker publishes,
	// the stream handler drains. Thread-safe on its own; not covered by mu.
	Events *events.Channel

	mu             sync.RWMutex
	results        map[string]string // phase ID → markdown
	completedOrder []string          // insertion order = completion order
	totalSearches  int
	status         Status
	qaSystemPrompt string

	chatMu sync.Mutex // serializes Q&A turns for this session
	chat   []models.ChatMessage
}

// Snapshot is an immutable copy of the queryable session state.
type Snapshot struct {
	ID            string                 `json:"session_id"`
	Status        Status                 `json:"status"`
	Results       map[string]string      `json:"results"`
	TotalSearches int                    `json:"total_searches"`
	Prefs         models.TripPreferences `json:"prefs"`
}

// RecordPhaseResult stores a finished phase document and adds its lookup
// count to the running total.
func (s *Session) RecordPhaseResult(phaseID, markdown string, searches int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.results[phaseID]; !exists {
		s.completedOrder = append(s.completedOrder, phaseID)
	}
	s.results[phaseID] = markdown
	s.totalSearches += searches
}

// AddSearches adds lookups to the running total without recording a result.
// Used for failed phases, whose lookups were still executed and streamed as
// search events; successful phases account for theirs through
// RecordPhaseResult.
func (s *Session) AddSearches(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalSearches += n
}

// CompletedResults returns the finished phases in completion order.
func (s *Session) CompletedResults() []PhaseResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]PhaseResult, 0, len(s.completedOrder))
	for _, id := range s.completedOrder {
		out = append(out, PhaseResult{PhaseID: id, Markdown: s.results[id]})
	}
	return out
}

// MarkComplete transitions running→complete and installs the Q&A system
// prompt. A terminal session is never transitioned again.
func (s *Session) MarkComplete(qaSystemPrompt string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusRunning {
		return
	}
	s.status = StatusComplete
	s.qaSystemPrompt = qaSystemPrompt
}

// MarkError transitions running→error. A terminal session is never
// transitioned again.
func (s *Session) MarkError() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusRunning {
		return
	}
	s.status = StatusError
}

// Status returns the current lifecycle state.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// TotalSearches returns the running lookup total across all phases.
func (s *Session) TotalSearches() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalSearches
}

// QASystemPrompt returns the Q&A system instruction. Empty until the
// session completes.
func (s *Session) QASystemPrompt() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.qaSystemPrompt
}

// Snapshot returns a consistent copy of the queryable state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make(map[string]string, len(s.results))
	for id, md := range s.results {
		results[id] = md
	}
	return Snapshot{
		ID:            s.ID,
		Status:        s.status,
		Results:       results,
		TotalSearches: s.totalSearches,
		Prefs:         s.Prefs,
	}
}

// LockChat serializes Q&A turns for this session. Concurrent turns would
// interleave their history appends; the chat service holds this lock for
// the duration of a turn.
func (s *Session) LockChat() { s.chatMu.Lock() }

// UnlockChat releases the Q&A turn lock.
func (s *Session) UnlockChat() { s.chatMu.Unlock() }

// ChatHistory returns a copy of the persisted Q&A conversation.
func (s *Session) ChatHistory() []models.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ChatMessage, len(s.chat))
	copy(out, s.chat)
	return out
}

// AppendChatExchange persists one completed Q&A turn: the user's question
// and the final answer. Intermediate tool exchanges never land here.
func (s *Session) AppendChatExchange(question, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chat = append(s.chat,
		models.ChatMessage{Role: models.ChatRoleUser, Content: question},
		models.ChatMessage{Role: models.ChatRoleAssistant, Content: answer},
	)
}
