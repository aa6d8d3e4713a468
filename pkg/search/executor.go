// Package search provides the web lookup tool offered to research agents.
//
// The default executor does not reach the network: it answers every query
// with a knowledge-elicitation acknowledgment so the model compiles results
// from what it already knows. A live search API (Tavily, SerpAPI, Bing)
// drops in behind the same agent.ToolExecutor interface.
package search

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wayfarer-ai/wayfarer/pkg/agent"
)

// ToolName is the canonical name of the lookup tool.
const ToolName = "web_search"

// queryArgs is the JSON argument shape of a web_search call.
type queryArgs struct {
	Query string `json:"query"`
}

// Definition returns the web_search tool descriptor offered to the model.
func Definition() agent.ToolDefinition {
	return agent.ToolDefinition{
		Name: ToolName,
		Description: "Search the web for current, real-time information. " +
			"Use this to find flights, hotels, prices, reviews, " +
			"rental services, local rules, attractions, and any " +
			"travel-related information. Returns relevant web results.",
		ParametersSchema: `{"type":"object","properties":{"query":{"type":"string","description":"The search query to look up on the web."}},"required":["query"]}`,
	}
}

// ParseQuery extracts the query string from a web_search tool call.
// Malformed arguments yield an empty query, not an error.
func ParseQuery(call agent.ToolCall) string {
	var args queryArgs
	if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
		return ""
	}
	return args.Query
}

// Executor implements agent.ToolExecutor for the web_search tool.
type Executor struct{}

// NewExecutor creates the default (offline) lookup executor.
func NewExecutor() *Executor { return &Executor{} }

func (e *Executor) ListTools() []agent.ToolDefinition {
	return []agent.ToolDefinition{Definition()}
}

func (e *Executor) Execute(_ context.Context, call agent.ToolCall) (*agent.ToolResult, error) {
	query := ParseQuery(call)
	return &agent.ToolResult{
		CallID: call.ID,
		Name:   call.Name,
		Content: fmt.Sprintf(
			"Web search executed for: %q. "+
				"Please provide the most detailed, current, and accurate information "+
				"you have about this topic, including specific names, prices, URLs, "+
				"ratings, and addresses where applicable.", query),
	}, nil
}
