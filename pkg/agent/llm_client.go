// Package agent defines the contracts shared by the iteration controller:
// the model gateway, the tool executor, and the conversation types that
// flow between them.
package agent

import "context"

// LLMClient is the gateway to the conversational model. Implementations
// wrap a concrete provider (see pkg/llm); tests use a scripted client.
type LLMClient interface {
	// Generate sends a conversation to the model and returns its response.
	// Transport or provider failures are returned as errors and are never
	// retried here.
	Generate(ctx context.Context, input *GenerateInput) (*LLMResponse, error)

	// Close releases the underlying connection. No-op for stateless clients.
	Close() error
}

// GenerateInput is a single model invocation.
type GenerateInput struct {
	SessionID    string
	SystemPrompt string
	Messages     []ConversationMessage
	Tools        []ToolDefinition // nil = tool use not permitted
	MaxTokens    int
	Temperature  float32
}

// ConversationMessage is one turn of a model conversation.
type ConversationMessage struct {
	Role       string     // "user", "assistant", "tool"
	Content    string
	ToolCalls  []ToolCall // for assistant messages requesting tool use
	ToolCallID string     // for tool result messages
	ToolName   string     // for tool result messages
	IsError    bool       // tool result carries an error (e.g. budget exceeded)
}

// Message role constants.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolDefinition describes a tool offered to the model.
type ToolDefinition struct {
	Name             string
	Description      string
	ParametersSchema string // JSON Schema
}

// ToolCall is the model's request to invoke a tool, correlated by ID.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string // JSON
}

// LLMResponse is the model's reply to a Generate call.
type LLMResponse struct {
	Text       string
	ToolCalls  []ToolCall
	StopReason string
}
