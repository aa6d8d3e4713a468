package services

import (
	"context"
	"log/slog"

	"github.com/wayfarer-ai/wayfarer/pkg/agent"
	"github.com/wayfarer-ai/wayfarer/pkg/agent/controller"
	"github.com/wayfarer-ai/wayfarer/pkg/config"
	"github.com/wayfarer-ai/wayfarer/pkg/models"
	"github.com/wayfarer-ai/wayfarer/pkg/session"
)

// ChatService answers follow-up questions against a completed session's
// accumulated research, one turn at a time.
type ChatService struct {
	sessions   *session.Store
	llm        agent.LLMClient
	tools      agent.ToolExecutor
	cfg        config.ResearchConfig
	controller *controller.IteratingController
}

// NewChatService creates a new ChatService.
func NewChatService(sessions *session.Store, llm agent.LLMClient, tools agent.ToolExecutor, cfg config.ResearchConfig) *ChatService {
	return &ChatService{
		sessions:   sessions,
		llm:        llm,
		tools:      tools,
		cfg:        cfg,
		controller: controller.NewIteratingController(),
	}
}

// Answer runs one Q&A turn: validate preconditions, run the agentic loop
// over a copy of the persisted history extended with the question, and
// persist exactly the question and the final answer. The loop's tool
// exchanges stay out of the persisted history.
//
// A gateway failure is reported as the turn's answer text rather than an
// error, preserving conversation continuity.
func (s *ChatService) Answer(ctx context.Context, sessionID, question string) (string, error) {
	if question == "" {
		return "", NewValidationError("question", "required")
	}

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return "", ErrSessionNotFound
	}
	if sess.Status() != session.StatusComplete {
		return "", ErrResearchNotComplete
	}

	// One turn at a time per session: concurrent turns would interleave
	// their history appends.
	sess.LockChat()
	defer sess.UnlockChat()

	history := sess.ChatHistory()
	messages := make([]agent.ConversationMessage, 0, len(history)+1)
	for _, m := range history {
		messages = append(messages, agent.ConversationMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}
	messages = append(messages, agent.ConversationMessage{
		Role:    agent.RoleUser,
		Content: question,
	})

	result, err := s.controller.Run(ctx, &agent.ExecutionContext{
		SessionID:       sess.ID,
		SystemPrompt:    sess.QASystemPrompt(),
		InitialMessages: messages,
		Config: agent.LoopConfig{
			MaxIterations: s.cfg.QAMaxIterations,
			MaxToolCalls:  agent.Unbounded,
			MaxTokens:     s.cfg.QAMaxTokens,
		},
		LLMClient:    s.llm,
		ToolExecutor: s.tools,
	})
	if err != nil {
		return "", err
	}

	if result.Status != agent.ExecutionStatusCompleted {
		slog.Warn("Chat turn failed, answering with error text",
			"session_id", sess.ID, "error", result.Err)
	}

	sess.AppendChatExchange(question, result.FinalText)
	return result.FinalText, nil
}

// History returns a copy of a session's persisted Q&A conversation.
func (s *ChatService) History(sessionID string) ([]models.ChatMessage, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	return sess.ChatHistory(), nil
}
