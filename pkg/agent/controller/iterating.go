// Package controller implements the multi-turn tool-calling loop that
// drives a single agentic run against the model gateway.
package controller

import (
	"context"
	"log/slog"

	"github.com/wayfarer-ai/wayfarer/pkg/agent"
)

// toolBudgetExceededMsg is returned for tool calls requested after the
// lookup budget is spent. The model is asked to conclude with what it has.
const toolBudgetExceededMsg = "Search limit reached. Please compile your final response using the information gathered so far."

// IteratingController implements the bounded tool-use loop.
// Tool calls arrive as structured ToolCall values on the response.
// Completion signal: a response without any ToolCalls.
type IteratingController struct{}

// NewIteratingController creates a new iterating controller.
func NewIteratingController() *IteratingController {
	return &IteratingController{}
}

// Run executes the loop against execCtx. A gateway failure is terminal for
// the run and surfaces as a failed ExecutionResult, never as a Go error and
// never retried. The returned result always carries the number of lookups
// actually executed.
func (c *IteratingController) Run(ctx context.Context, execCtx *agent.ExecutionContext) (*agent.ExecutionResult, error) {
	cfg := execCtx.Config
	messages := make([]agent.ConversationMessage, len(execCtx.InitialMessages))
	copy(messages, execCtx.InitialMessages)

	tools := execCtx.ToolExecutor.ListTools()
	callsUsed := 0
	var lastResp *agent.LLMResponse

	for iteration := 0; iteration < cfg.MaxIterations; iteration++ {
		resp, err := execCtx.LLMClient.Generate(ctx, &agent.GenerateInput{
			SessionID:    execCtx.SessionID,
			SystemPrompt: execCtx.SystemPrompt,
			Messages:     messages,
			Tools:        tools,
			MaxTokens:    cfg.MaxTokens,
		})
		if err != nil {
			slog.Warn("Model gateway call failed, terminating run",
				"session_id", execCtx.SessionID, "iteration", iteration+1, "error", err)
			return failedResult(err, callsUsed), nil
		}
		lastResp = resp

		// No tool calls — this is the final answer.
		if len(resp.ToolCalls) == 0 {
			return &agent.ExecutionResult{
				Status:    agent.ExecutionStatusCompleted,
				FinalText: resp.Text,
				ToolCalls: callsUsed,
			}, nil
		}

		messages = append(messages, agent.ConversationMessage{
			Role:      agent.RoleAssistant,
			Content:   resp.Text,
			ToolCalls: resp.ToolCalls,
		})

		// Budget already spent but the model still wants tools: refuse every
		// pending request, then make one final call with tool use disabled
		// and accept whatever comes back.
		if budgetExhausted(cfg, callsUsed) {
			for _, tc := range resp.ToolCalls {
				messages = append(messages, budgetExceededResult(tc))
			}
			return c.concludeWithoutTools(ctx, execCtx, messages, callsUsed)
		}

		// Execute the round's requests. All results are appended before the
		// next model call; correlation is by the call's own ID. Requests
		// past the cap inside the batch get budget-exceeded error results
		// so the executed count never overshoots the cap.
		for _, tc := range resp.ToolCalls {
			if budgetExhausted(cfg, callsUsed) {
				messages = append(messages, budgetExceededResult(tc))
				continue
			}
			callsUsed++
			if execCtx.OnToolCall != nil {
				execCtx.OnToolCall(tc, callsUsed)
			}
			messages = append(messages, executeToolCall(ctx, execCtx, tc))
		}
	}

	// Round limit reached without a terminal answer — exit with the last
	// response's text. It may still be requesting tools; that is accepted.
	if lastResp == nil {
		return failedResult(errNoIterations, callsUsed), nil
	}
	return &agent.ExecutionResult{
		Status:    agent.ExecutionStatusCompleted,
		FinalText: lastResp.Text,
		ToolCalls: callsUsed,
	}, nil
}

// concludeWithoutTools performs the single post-budget call. Tool use is
// not offered, so the model can only answer in text.
func (c *IteratingController) concludeWithoutTools(
	ctx context.Context,
	execCtx *agent.ExecutionContext,
	messages []agent.ConversationMessage,
	callsUsed int,
) (*agent.ExecutionResult, error) {
	resp, err := execCtx.LLMClient.Generate(ctx, &agent.GenerateInput{
		SessionID:    execCtx.SessionID,
		SystemPrompt: execCtx.SystemPrompt,
		Messages:     messages,
		Tools:        nil,
		MaxTokens:    execCtx.Config.MaxTokens,
	})
	if err != nil {
		return failedResult(err, callsUsed), nil
	}
	return &agent.ExecutionResult{
		Status:    agent.ExecutionStatusCompleted,
		FinalText: resp.Text,
		ToolCalls: callsUsed,
	}, nil
}

func budgetExhausted(cfg agent.LoopConfig, callsUsed int) bool {
	return cfg.MaxToolCalls != agent.Unbounded && callsUsed >= cfg.MaxToolCalls
}
