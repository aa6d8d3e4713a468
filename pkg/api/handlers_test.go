package api

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-ai/wayfarer/pkg/agent"
	"github.com/wayfarer-ai/wayfarer/pkg/config"
	"github.com/wayfarer-ai/wayfarer/pkg/events"
	"github.com/wayfarer-ai/wayfarer/pkg/models"
	"github.com/wayfarer-ai/wayfarer/pkg/research"
	"github.com/wayfarer-ai/wayfarer/pkg/services"
	"github.com/wayfarer-ai/wayfarer/pkg/session"
)

// fixedLLM answers every request with the same canned text.
type fixedLLM struct {
	text string
	err  error
}

func (f *fixedLLM) Generate(context.Context, *agent.GenerateInput) (*agent.LLMResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &agent.LLMResponse{Text: f.text, StopReason: "stop"}, nil
}

func (f *fixedLLM) Close() error { return nil }

type apiFixture struct {
	server *Server
	store  *session.Store
}

func newAPIFixture(t *testing.T, llm agent.LLMClient) *apiFixture {
	t.Helper()
	cfg := config.Default()
	cfg.Research.HeartbeatInterval = 20 * time.Millisecond

	store := session.NewStore()
	tools := agent.NewStubToolExecutor([]agent.ToolDefinition{{Name: "web_search"}})
	runner := research.NewRunner(llm, tools, cfg.Research)
	researchSvc := services.NewResearchService(store, runner)
	chatSvc := services.NewChatService(store, llm, tools, cfg.Research)

	return &apiFixture{
		server: NewServer(cfg, researchSvc, chatSvc),
		store:  store,
	}
}

func (f *apiFixture) request(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	return rec
}

// completedSession registers a session with recorded results in terminal
// complete state, with its event channel already drained to the terminal
// event.
func (f *apiFixture) completedSession(prefs models.TripPreferences) *session.Session {
	sess := f.store.Create(prefs)
	sess.RecordPhaseResult("flights", "## Flights research", 2)
	sess.RecordPhaseResult("hotels", "## Hotels research", 1)
	sess.MarkComplete("You are a travel assistant.")
	return sess
}

func TestHealth(t *testing.T) {
	f := newAPIFixture(t, &fixedLLM{text: "ok"})

	rec := f.request(t, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestStartResearch(t *testing.T) {
	f := newAPIFixture(t, &fixedLLM{text: "## Section"})

	rec := f.request(t, http.MethodPost, "/api/research", `{"destination": "Lisbon", "days": 4}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body["session_id"])

	sess, err := f.store.Get(body["session_id"])
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", sess.Prefs.Destination)

	// The worker runs off-request and eventually finishes every phase.
	assert.Eventually(t, func() bool {
		return sess.Status() == session.StatusComplete
	}, 5*time.Second, 10*time.Millisecond)
}

func TestStartResearch_MissingDestination(t *testing.T) {
	f := newAPIFixture(t, &fixedLLM{text: "ok"})

	rec := f.request(t, http.MethodPost, "/api/research", `{"days": 4}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetResults(t *testing.T) {
	f := newAPIFixture(t, &fixedLLM{text: "ok"})

	t.Run("unknown session", func(t *testing.T) {
		rec := f.request(t, http.MethodGet, "/api/research/missing/results", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("partial results while running", func(t *testing.T) {
		sess := f.store.Create(models.TripPreferences{Destination: "Kyoto"})
		sess.RecordPhaseResult("flights", "## Flights", 3)

		rec := f.request(t, http.MethodGet, "/api/research/"+sess.ID+"/results", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Status        string            `json:"status"`
			Results       map[string]string `json:"results"`
			TotalSearches int               `json:"total_searches"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "running", body.Status)
		assert.Equal(t, "## Flights", body.Results["flights"])
		assert.Equal(t, 3, body.TotalSearches)
	})
}

func TestChat(t *testing.T) {
	f := newAPIFixture(t, &fixedLLM{text: "Visit Belém early."})

	t.Run("unknown session", func(t *testing.T) {
		rec := f.request(t, http.MethodPost, "/api/research/missing/chat", `{"question": "hi"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("research still running", func(t *testing.T) {
		sess := f.store.Create(models.TripPreferences{Destination: "Lisbon"})
		rec := f.request(t, http.MethodPost, "/api/research/"+sess.ID+"/chat", `{"question": "hi"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("empty question", func(t *testing.T) {
		sess := f.completedSession(models.TripPreferences{Destination: "Lisbon"})
		rec := f.request(t, http.MethodPost, "/api/research/"+sess.ID+"/chat", `{"question": ""}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("answered", func(t *testing.T) {
		sess := f.completedSession(models.TripPreferences{Destination: "Lisbon"})
		rec := f.request(t, http.MethodPost, "/api/research/"+sess.ID+"/chat", `{"question": "What should I see?"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var body models.ChatResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Visit Belém early.", body.Answer)
	})
}

func TestDownloadPlan(t *testing.T) {
	f := newAPIFixture(t, &fixedLLM{text: "ok"})

	t.Run("unknown session", func(t *testing.T) {
		rec := f.request(t, http.MethodGet, "/api/research/missing/download", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("no results yet", func(t *testing.T) {
		sess := f.store.Create(models.TripPreferences{Destination: "Lisbon"})
		rec := f.request(t, http.MethodGet, "/api/research/"+sess.ID+"/download", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rendered plan", func(t *testing.T) {
		sess := f.completedSession(models.TripPreferences{Destination: "Lisbon"})
		rec := f.request(t, http.MethodGet, "/api/research/"+sess.ID+"/download", "")
		require.Equal(t, http.StatusOK, rec.Code)

		assert.Contains(t, rec.Header().Get("Content-Type"), "text/markdown")
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
		assert.Contains(t, rec.Body.String(), "# Complete Trip Plan: Lisbon")
		assert.Contains(t, rec.Body.String(), "## Flights research")
	})
}

func TestStreamResearch(t *testing.T) {
	f := newAPIFixture(t, &fixedLLM{text: "ok"})

	// SSE streaming needs a live connection; the recorder does not
	// implement CloseNotify.
	srv := httptest.NewServer(f.server.Handler())
	defer srv.Close()

	t.Run("unknown session", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/research/missing/stream")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("relays events and closes after terminal event", func(t *testing.T) {
		sess := f.store.Create(models.TripPreferences{Destination: "Lisbon"})
		sess.Events.Publish(events.Event{
			Type:    events.TypePhaseStart,
			Payload: events.PhaseStartPayload{PhaseID: "flights", PhaseIndex: 0, Title: "Flights & Travel Options"},
		})
		sess.Events.Publish(events.Event{
			Type:    events.TypePhaseComplete,
			Payload: events.PhaseCompletePayload{PhaseID: "flights", Searches: 2, Markdown: "## Flights"},
		})
		sess.Events.Publish(events.Event{
			Type:    events.TypeResearchComplete,
			Payload: events.ResearchCompletePayload{TotalSearches: 2},
		})
		sess.MarkComplete("prompt")

		resp, err := http.Get(srv.URL + "/api/research/" + sess.ID + "/stream")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		body := string(raw)
		assert.Contains(t, body, "event:phase_start")
		assert.Contains(t, body, "event:phase_complete")
		assert.Contains(t, body, "event:research_complete")
		assert.Less(t,
			strings.Index(body, "phase_start"),
			strings.Index(body, "research_complete"))
	})

	t.Run("emits heartbeats while the run is quiet", func(t *testing.T) {
		sess := f.store.Create(models.TripPreferences{Destination: "Lisbon"})

		resp, err := http.Get(srv.URL + "/api/research/" + sess.ID + "/stream")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		// Running session, empty channel: the stream must stay open and
		// deliver heartbeats at the configured interval.
		reader := bufio.NewReader(resp.Body)
		sawHeartbeat := false
		for i := 0; i < 50 && !sawHeartbeat; i++ {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if strings.Contains(line, "event:heartbeat") {
				sawHeartbeat = true
			}
		}
		require.True(t, sawHeartbeat, "no heartbeat arrived on the quiet stream")

		// The run ends; the terminal event is still delivered and the
		// stream closes cleanly.
		sess.Events.Publish(events.Event{
			Type:    events.TypeResearchComplete,
			Payload: events.ResearchCompletePayload{TotalSearches: 0},
		})
		sess.MarkComplete("prompt")

		rest, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Contains(t, string(rest), "event:research_complete")
	})

	t.Run("closes on quiet channel after run ends", func(t *testing.T) {
		sess := f.store.Create(models.TripPreferences{Destination: "Lisbon"})
		sess.MarkError()

		done := make(chan error, 1)
		go func() {
			resp, err := http.Get(srv.URL + "/api/research/" + sess.ID + "/stream")
			if err == nil {
				_, err = io.ReadAll(resp.Body)
				resp.Body.Close()
			}
			done <- err
		}()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("stream did not close after the run ended")
		}
	})
}

func TestCORSMiddleware(t *testing.T) {
	f := newAPIFixture(t, &fixedLLM{text: "ok"})

	t.Run("allowed origin preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/health", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()
		f.server.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unknown origin gets no CORS headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		f.server.Handler().ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestSecurityHeaders(t *testing.T) {
	f := newAPIFixture(t, &fixedLLM{text: "ok"})

	rec := f.request(t, http.MethodGet, "/api/health", "")
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestChat_GatewayErrorStillAnswers(t *testing.T) {
	f := newAPIFixture(t, &fixedLLM{err: errors.New("gateway down")})
	sess := f.completedSession(models.TripPreferences{Destination: "Lisbon"})

	rec := f.request(t, http.MethodPost, "/api/research/"+sess.ID+"/chat", `{"question": "hi"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Answer, "gateway down")
}
