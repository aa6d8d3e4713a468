package research

import (
	"context"
	"log/slog"

	"github.com/wayfarer-ai/wayfarer/pkg/agent"
	"github.com/wayfarer-ai/wayfarer/pkg/agent/controller"
	"github.com/wayfarer-ai/wayfarer/pkg/config"
	"github.com/wayfarer-ai/wayfarer/pkg/events"
	"github.com/wayfarer-ai/wayfarer/pkg/search"
	"github.com/wayfarer-ai/wayfarer/pkg/session"
)

// Runner executes a session's full phase sequence. One Runner is shared by
// all sessions; per-run state lives on the session itself.
type Runner struct {
	llm        agent.LLMClient
	tools      agent.ToolExecutor
	cfg        config.ResearchConfig
	catalog    []PhaseDefinition
	controller *controller.IteratingController
}

// NewRunner creates a runner over the standard phase catalog.
func NewRunner(llm agent.LLMClient, tools agent.ToolExecutor, cfg config.ResearchConfig) *Runner {
	return &Runner{
		llm:        llm,
		tools:      tools,
		cfg:        cfg,
		catalog:    Catalog(),
		controller: controller.NewIteratingController(),
	}
}

// Catalog returns the runner's phase catalog.
func (r *Runner) Catalog() []PhaseDefinition {
	out := make([]PhaseDefinition, len(r.catalog))
	copy(out, r.catalog)
	return out
}

// Run drives every phase strictly in catalog order, publishing lifecycle
// events to sink and recording results on the session. A single phase's
// failure is reported and skipped, never fatal to the run. After the last
// phase the session is marked complete — regardless of individual phase
// outcomes — and the terminal research_complete event is published.
//
// Run is designed to execute on a dedicated worker goroutine; it blocks
// until the sequence finishes.
func (r *Runner) Run(ctx context.Context, sess *session.Session, sink events.Sink) {
	log := slog.With("session_id", sess.ID, "destination", sess.Prefs.Destination)
	log.Info("Research run starting", "phases", len(r.catalog))

	for i, phase := range r.catalog {
		sink.Publish(events.Event{
			Type: events.TypePhaseStart,
			Payload: events.PhaseStartPayload{
				PhaseID:    phase.ID,
				PhaseIndex: i,
				Title:      phase.Title,
			},
		})

		result := r.runPhase(ctx, sess, phase, sink)
		if result.Status != agent.ExecutionStatusCompleted {
			log.Warn("Phase failed", "phase_id", phase.ID, "error", result.Err)
			// Lookups executed before the failure were already streamed as
			// search events; keep the grand total consistent with them.
			sess.AddSearches(result.ToolCalls)
			sink.Publish(events.Event{
				Type: events.TypePhaseError,
				Payload: events.PhaseErrorPayload{
					PhaseID: phase.ID,
					Error:   result.Err.Error(),
				},
			})
			continue
		}

		sess.RecordPhaseResult(phase.ID, result.FinalText, result.ToolCalls)
		sink.Publish(events.Event{
			Type: events.TypePhaseComplete,
			Payload: events.PhaseCompletePayload{
				PhaseID:  phase.ID,
				Searches: result.ToolCalls,
				Markdown: result.FinalText,
			},
		})
		log.Info("Phase complete", "phase_id", phase.ID, "searches", result.ToolCalls)
	}

	qaPrompt := BuildQASystemPrompt(sess.Prefs, sess.CompletedResults(), r.cfg.QAContextChars)
	sess.MarkComplete(qaPrompt)

	total := sess.TotalSearches()
	sink.Publish(events.Event{
		Type:    events.TypeResearchComplete,
		Payload: events.ResearchCompletePayload{TotalSearches: total},
	})
	log.Info("Research run complete", "total_searches", total)
}

// runPhase executes one phase through the agentic loop. The phase's
// instruction embeds excerpts of all previously completed phases, so it
// must only be built once those phases have finished.
func (r *Runner) runPhase(ctx context.Context, sess *session.Session, phase PhaseDefinition, sink events.Sink) *agent.ExecutionResult {
	userMsg := buildPhaseUserMessage(sess.Prefs, sess.CompletedResults(), r.cfg.PrevResultExcerptChars)

	searches := 0
	execCtx := &agent.ExecutionContext{
		SessionID:    sess.ID,
		SystemPrompt: phase.SystemPrompt,
		InitialMessages: []agent.ConversationMessage{
			{Role: agent.RoleUser, Content: userMsg},
		},
		Config: agent.LoopConfig{
			MaxIterations: r.cfg.MaxIterations,
			MaxToolCalls:  r.cfg.MaxSearches,
			MaxTokens:     PhaseMaxTokens(r.cfg, phase.ID, sess.Prefs.Days),
		},
		LLMClient:    r.llm,
		ToolExecutor: r.tools,
		OnToolCall: func(call agent.ToolCall, count int) {
			searches = count
			sink.Publish(events.Event{
				Type: events.TypeSearch,
				Payload: events.SearchPayload{
					PhaseID: phase.ID,
					Query:   search.ParseQuery(call),
					Count:   count,
				},
			})
		},
	}

	result, err := r.controller.Run(ctx, execCtx)
	if err != nil {
		return &agent.ExecutionResult{
			Status:    agent.ExecutionStatusFailed,
			ToolCalls: searches,
			Err:       err,
		}
	}
	return result
}
