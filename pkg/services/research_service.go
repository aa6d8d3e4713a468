package services

import (
	"context"
	"log/slog"

	"github.com/wayfarer-ai/wayfarer/pkg/models"
	"github.com/wayfarer-ai/wayfarer/pkg/research"
	"github.com/wayfarer-ai/wayfarer/pkg/session"
)

// ResearchService starts research runs and exposes session state to the
// transport layer.
type ResearchService struct {
	sessions *session.Store
	runner   *research.Runner
}

// NewResearchService creates a new ResearchService.
func NewResearchService(sessions *session.Store, runner *research.Runner) *ResearchService {
	return &ResearchService{sessions: sessions, runner: runner}
}

// Start registers a fresh running session and hands it to a dedicated
// background worker. It returns immediately — no phase work happens on the
// caller's goroutine. The worker publishes into the session's own event
// channel.
//
// The worker deliberately does not inherit the caller's context: a research
// run outlives the HTTP request that started it, and cancellation of
// running sessions is unsupported.
func (s *ResearchService) Start(prefs models.TripPreferences) *session.Session {
	prefs.ApplyDefaults()
	sess := s.sessions.Create(prefs)

	slog.Info("Research session started",
		"session_id", sess.ID, "destination", prefs.Destination, "days", prefs.Days)

	go s.runner.Run(context.Background(), sess, sess.Events)
	return sess
}

// Get returns the live session record.
func (s *ResearchService) Get(sessionID string) (*session.Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Results returns a consistent snapshot of a session's queryable state.
// Partial results are readable while the run is still in flight.
func (s *ResearchService) Results(sessionID string) (session.Snapshot, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return session.Snapshot{}, ErrSessionNotFound
	}
	return sess.Snapshot(), nil
}
