// Package llm binds the agent.LLMClient contract to an OpenAI-compatible
// chat-completions endpoint with native tool calling.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/sashabaranov/go-openai"

	"github.com/wayfarer-ai/wayfarer/pkg/agent"
)

// Options configures the OpenAI-compatible client.
type Options struct {
	APIKey      string
	BaseURL     string // empty = api.openai.com
	Model       string
	Temperature float32
}

// Client implements agent.LLMClient over the chat-completions API.
type Client struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewClient creates a gateway client from options.
func NewClient(opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("llm: API key not configured")
	}
	if opts.Model == "" {
		return nil, fmt.Errorf("llm: model not configured")
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	slog.Info("Model gateway client configured", "model", opts.Model, "base_url", cfg.BaseURL)

	return &Client{
		client:      openai.NewClientWithConfig(cfg),
		model:       opts.Model,
		temperature: opts.Temperature,
	}, nil
}

// Generate implements agent.LLMClient. Failures are returned as-is; the
// iteration controller owns the retry (never) and recovery policy.
func (c *Client) Generate(ctx context.Context, input *agent.GenerateInput) (*agent.LLMResponse, error) {
	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: buildMessages(input),
		Tools:    buildTools(input.Tools),
	}
	if input.MaxTokens > 0 {
		req.MaxCompletionTokens = input.MaxTokens
	}
	if input.Temperature != 0 {
		req.Temperature = input.Temperature
	} else if c.temperature != 0 {
		req.Temperature = c.temperature
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	choice := resp.Choices[0]
	out := &agent.LLMResponse{
		Text:       choice.Message.Content,
		StopReason: string(choice.FinishReason),
	}
	for _, tc := range choice.Message.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, agent.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return out, nil
}

// Close implements agent.LLMClient. The HTTP client holds no resources.
func (c *Client) Close() error { return nil }

// buildMessages converts the conversation to wire format. The system prompt
// always leads; tool results map to role "tool" with their correlation ID.
func buildMessages(input *agent.GenerateInput) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, len(input.Messages)+1)
	if input.SystemPrompt != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: input.SystemPrompt,
		})
	}

	for _, m := range input.Messages {
		switch m.Role {
		case agent.RoleAssistant:
			msg := openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: m.Content,
			}
			for _, tc := range m.ToolCalls {
				msg.ToolCalls = append(msg.ToolCalls, openai.ToolCall{
					ID:   tc.ID,
					Type: openai.ToolTypeFunction,
					Function: openai.FunctionCall{
						Name:      tc.Name,
						Arguments: tc.Arguments,
					},
				})
			}
			msgs = append(msgs, msg)
		case agent.RoleTool:
			msgs = append(msgs, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    m.Content,
				ToolCallID: m.ToolCallID,
				Name:       m.ToolName,
			})
		default:
			msgs = append(msgs, openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleUser,
				Content: m.Content,
			})
		}
	}
	return msgs
}

// buildTools converts tool definitions to wire format. Nil in, nil out —
// a nil Tools field disables tool use for the call.
func buildTools(defs []agent.ToolDefinition) []openai.Tool {
	if len(defs) == 0 {
		return nil
	}
	tools := make([]openai.Tool, 0, len(defs))
	for _, d := range defs {
		tools = append(tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        d.Name,
				Description: d.Description,
				Parameters:  json.RawMessage(d.ParametersSchema),
			},
		})
	}
	return tools
}
