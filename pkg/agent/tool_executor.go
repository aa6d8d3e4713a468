package agent

import (
	"context"
	"fmt"
)

// ToolExecutor abstracts tool execution for the iteration controller.
type ToolExecutor interface {
	// Execute runs a single tool call and returns the result.
	// The result content is always a string (tool output or error message).
	Execute(ctx context.Context, call ToolCall) (*ToolResult, error)

	// ListTools returns the tool definitions offered to the model.
	ListTools() []ToolDefinition
}

// ToolResult is the output of a tool execution.
type ToolResult struct {
	CallID  string // matches ToolCall.ID
	Name    string
	Content string
	IsError bool
}

// StubToolExecutor returns canned responses for testing.
// The real lookup-backed implementation is in pkg/search.
type StubToolExecutor struct {
	tools []ToolDefinition
}

// NewStubToolExecutor creates a stub executor with the given definitions.
func NewStubToolExecutor(tools []ToolDefinition) *StubToolExecutor {
	return &StubToolExecutor{tools: tools}
}

func (s *StubToolExecutor) Execute(_ context.Context, call ToolCall) (*ToolResult, error) {
	return &ToolResult{
		CallID:  call.ID,
		Name:    call.Name,
		Content: fmt.Sprintf("[stub] Tool %q called with args: %s", call.Name, call.Arguments),
	}, nil
}

func (s *StubToolExecutor) ListTools() []ToolDefinition { return s.tools }
