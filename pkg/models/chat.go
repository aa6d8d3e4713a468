package models

// ChatRole identifies the author of a persisted chat message.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one entry in a session's persisted Q&A history.
// Intermediate tool exchanges from the agent loop are never persisted;
// only the final question and answer of each turn appear here.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// ChatRequest is the request body for a follow-up question.
type ChatRequest struct {
	Question string `json:"question" binding:"required"`
}

// ChatResponse is the response body for a completed Q&A turn.
type ChatResponse struct {
	Answer string `json:"answer"`
}
