package agent

// LoopConfig bounds a single agentic run. The two call sites (phase research
// and Q&A) carry different values, so nothing here is a package constant.
type LoopConfig struct {
	// MaxIterations is the maximum number of model round-trips.
	MaxIterations int

	// MaxToolCalls caps the number of lookups actually executed.
	// Zero means unbounded (bounded implicitly by MaxIterations).
	MaxToolCalls int

	// MaxTokens is the per-call output budget forwarded to the gateway.
	MaxTokens int
}

// Unbounded marks a LoopConfig field as having no cap.
const Unbounded = 0

// ExecutionContext carries the dependencies and inputs for one agentic run.
// Created per phase by the research runner, and per turn by the chat service.
type ExecutionContext struct {
	SessionID    string
	SystemPrompt string

	// InitialMessages seed the conversation. The controller grows its own
	// copy; callers never see the intermediate tool exchanges.
	InitialMessages []ConversationMessage

	Config LoopConfig

	LLMClient    LLMClient
	ToolExecutor ToolExecutor

	// OnToolCall, when non-nil, is invoked for every tool call actually
	// executed, with the call and the running count (1-based). Used by the
	// research runner to surface lookups as stream events.
	OnToolCall func(call ToolCall, count int)
}

// ExecutionStatus is the terminal status of an agentic run.
type ExecutionStatus string

const (
	ExecutionStatusCompleted ExecutionStatus = "completed"
	ExecutionStatusFailed    ExecutionStatus = "failed"
)

// ExecutionResult is returned by the iteration controller. A gateway failure
// yields Status failed with an error-flavored FinalText rather than a Go
// error, so callers can choose between surfacing the failure (phase_error)
// and preserving conversational continuity (Q&A).
type ExecutionResult struct {
	Status    ExecutionStatus
	FinalText string
	ToolCalls int // lookups actually executed
	Err       error
}
