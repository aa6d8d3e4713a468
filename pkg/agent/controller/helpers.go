package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/wayfarer-ai/wayfarer/pkg/agent"
)

var errNoIterations = errors.New("loop configured with zero iterations")

// failedResult wraps a gateway failure as a terminal run result. The text is
// error-flavored markdown so it can stand in for a phase result or a chat
// answer without breaking the surrounding document.
func failedResult(err error, callsUsed int) *agent.ExecutionResult {
	return &agent.ExecutionResult{
		Status:    agent.ExecutionStatusFailed,
		FinalText: fmt.Sprintf("*Error: %v*", err),
		ToolCalls: callsUsed,
		Err:       err,
	}
}

// executeToolCall dispatches one tool call and shapes the result message.
// Executor failures become error-tagged tool results rather than aborting
// the run.
func executeToolCall(ctx context.Context, execCtx *agent.ExecutionContext, tc agent.ToolCall) agent.ConversationMessage {
	result, err := execCtx.ToolExecutor.Execute(ctx, tc)
	if err != nil {
		return agent.ConversationMessage{
			Role:       agent.RoleTool,
			Content:    fmt.Sprintf("tool execution failed: %v", err),
			ToolCallID: tc.ID,
			ToolName:   tc.Name,
			IsError:    true,
		}
	}
	return agent.ConversationMessage{
		Role:       agent.RoleTool,
		Content:    result.Content,
		ToolCallID: tc.ID,
		ToolName:   tc.Name,
		IsError:    result.IsError,
	}
}

// budgetExceededResult builds the error tool result for a request that
// arrived after the lookup budget was spent.
func budgetExceededResult(tc agent.ToolCall) agent.ConversationMessage {
	return agent.ConversationMessage{
		Role:       agent.RoleTool,
		Content:    toolBudgetExceededMsg,
		ToolCallID: tc.ID,
		ToolName:   tc.Name,
		IsError:    true,
	}
}
