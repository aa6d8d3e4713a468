package controller

import (
	"context"
	"fmt"

	"github.com/wayfarer-ai/wayfarer/pkg/agent"
)

type mockLLMResponse struct {
	resp *agent.LLMResponse
	err  error
}

// mockLLMClient is a test mock for agent.LLMClient.
// NOTE: Not safe for concurrent use — callCount and capturedInputs are
// mutated without synchronization. Fine while the controller calls Generate
// sequentially (which it does).
type mockLLMClient struct {
	responses      []mockLLMResponse
	callCount      int
	capturedInputs []*agent.GenerateInput
}

func (m *mockLLMClient) Generate(_ context.Context, input *agent.GenerateInput) (*agent.LLMResponse, error) {
	idx := m.callCount
	m.callCount++
	m.capturedInputs = append(m.capturedInputs, input)

	if idx >= len(m.responses) {
		return nil, fmt.Errorf("no more mock responses (call %d)", idx+1)
	}

	r := m.responses[idx]
	if r.err != nil {
		return nil, r.err
	}
	return r.resp, nil
}

func (m *mockLLMClient) Close() error { return nil }

func textResponse(text string) mockLLMResponse {
	return mockLLMResponse{resp: &agent.LLMResponse{Text: text, StopReason: "stop"}}
}

func toolCallResponse(text string, calls ...agent.ToolCall) mockLLMResponse {
	return mockLLMResponse{resp: &agent.LLMResponse{Text: text, ToolCalls: calls, StopReason: "tool_calls"}}
}

func searchCall(id, query string) agent.ToolCall {
	return agent.ToolCall{
		ID:        id,
		Name:      "web_search",
		Arguments: fmt.Sprintf(`{"query":%q}`, query),
	}
}

// recordingToolExecutor records executed calls and returns canned content.
type recordingToolExecutor struct {
	tools    []agent.ToolDefinition
	executed []agent.ToolCall
	content  string
	err      error
}

func newRecordingToolExecutor() *recordingToolExecutor {
	return &recordingToolExecutor{
		tools:   []agent.ToolDefinition{{Name: "web_search", Description: "test search"}},
		content: "search result",
	}
}

func (m *recordingToolExecutor) Execute(_ context.Context, call agent.ToolCall) (*agent.ToolResult, error) {
	m.executed = append(m.executed, call)
	if m.err != nil {
		return nil, m.err
	}
	return &agent.ToolResult{CallID: call.ID, Name: call.Name, Content: m.content}, nil
}

func (m *recordingToolExecutor) ListTools() []agent.ToolDefinition { return m.tools }

func newTestExecCtx(llm agent.LLMClient, toolExec agent.ToolExecutor, cfg agent.LoopConfig) *agent.ExecutionContext {
	return &agent.ExecutionContext{
		SessionID:    "test-session",
		SystemPrompt: "You are a test research agent.",
		InitialMessages: []agent.ConversationMessage{
			{Role: agent.RoleUser, Content: "Research the destination."},
		},
		Config:       cfg,
		LLMClient:    llm,
		ToolExecutor: toolExec,
	}
}
