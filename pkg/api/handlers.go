package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wayfarer-ai/wayfarer/pkg/events"
	"github.com/wayfarer-ai/wayfarer/pkg/export"
	"github.com/wayfarer-ai/wayfarer/pkg/models"
	"github.com/wayfarer-ai/wayfarer/pkg/services"
	"github.com/wayfarer-ai/wayfarer/pkg/session"
)

// StartResearch handles POST /api/research. It validates the trip
// preferences, starts a background research run, and returns the session
// identifier immediately.
func (s *Server) StartResearch(c *gin.Context) {
	var prefs models.TripPreferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := s.research.Start(prefs)
	c.JSON(http.StatusOK, gin.H{"session_id": sess.ID})
}

// StreamResearch handles GET /api/research/:id/stream. It relays the
// session's events as SSE in production order, emitting heartbeats while
// the worker is quiet, and closes after research_complete.
func (s *Server) StreamResearch(c *gin.Context) {
	sess, err := s.research.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		ev, ok := sess.Events.Receive(s.cfg.Research.HeartbeatInterval)
		if !ok {
			// Quiet channel: if the run already ended there is nothing more
			// to deliver, otherwise keep the connection alive.
			if sess.Status() != session.StatusRunning {
				return false
			}
			c.SSEvent(string(events.TypeHeartbeat), "")
			return true
		}

		c.SSEvent(string(ev.Type), ev.Payload)
		return ev.Type != events.TypeResearchComplete
	})
}

// GetResults handles GET /api/research/:id/results.
func (s *Server) GetResults(c *gin.Context) {
	snap, err := s.research.Results(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         snap.Status,
		"results":        snap.Results,
		"total_searches": snap.TotalSearches,
		"prefs":          snap.Prefs,
	})
}

// Chat handles POST /api/research/:id/chat.
func (s *Server) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := s.chat.Answer(c.Request.Context(), c.Param("id"), req.Question)
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	case errors.Is(err, services.ErrResearchNotComplete):
		c.JSON(http.StatusConflict, gin.H{"error": "Research not yet complete"})
		return
	case services.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.ChatResponse{Answer: answer})
}

// DownloadPlan handles GET /api/research/:id/download. Partial result sets
// are exportable; an empty one is a caller error.
func (s *Server) DownloadPlan(c *gin.Context) {
	snap, err := s.research.Results(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	doc, err := export.Render(snap.Prefs, snap.Results, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No results yet"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(doc.Content))
}
