// Package events defines the research event stream: the kinds a session
// worker produces, their payload shapes, the sink indirection that decouples
// the producer from transport, and the per-session ordered channel a
// streaming consumer drains.
//
// Events for a single session form one strictly-ordered queue, not a
// broadcast topic: exactly one producer (the session's worker) and one
// consumer (the stream handler). The terminal event is always
// research_complete; heartbeat may appear at any point before it and
// carries no payload.
package events

// Type identifies the kind of a research event.
type Type string

const (
	TypePhaseStart       Type = "phase_start"
	TypeSearch           Type = "search"
	TypePhaseComplete    Type = "phase_complete"
	TypePhaseError       Type = "phase_error"
	TypeResearchComplete Type = "research_complete"
	TypeHeartbeat        Type = "heartbeat"
)

// Event is a tagged record pushed into a session's channel.
type Event struct {
	Type    Type `json:"type"`
	Payload any  `json:"payload,omitempty"`
}

// PhaseStartPayload announces that a phase began.
type PhaseStartPayload struct {
	PhaseID    string `json:"phase_id"`
	PhaseIndex int    `json:"phase_index"`
	Title      string `json:"title"`
}

// SearchPayload reports one lookup issued during a phase, with the running
// per-phase count.
type SearchPayload struct {
	PhaseID string `json:"phase_id"`
	Query   string `json:"query"`
	Count   int    `json:"count"`
}

// PhaseCompletePayload carries a phase's finished document and lookup count.
type PhaseCompletePayload struct {
	PhaseID  string `json:"phase_id"`
	Searches int    `json:"searches"`
	Markdown string `json:"markdown"`
}

// PhaseErrorPayload reports a phase failure. The run continues to the next
// phase; this is informational, not terminal.
type PhaseErrorPayload struct {
	PhaseID string `json:"phase_id"`
	Error   string `json:"error"`
}

// ResearchCompletePayload is the terminal event of every run, carrying the
// grand total of lookups across all phases.
type ResearchCompletePayload struct {
	TotalSearches int `json:"total_searches"`
}
