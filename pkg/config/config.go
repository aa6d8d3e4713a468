// Package config loads service configuration: defaults, an optional YAML
// file merged over them, and environment overrides for secrets and ports.
package config

import "time"

// Config is the root configuration for the service.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	LLM      LLMConfig      `yaml:"llm"`
	Research ResearchConfig `yaml:"research"`
}

// ServerConfig holds HTTP-facing settings.
type ServerConfig struct {
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LLMConfig holds model gateway settings. The API key is env-only and never
// read from YAML.
type LLMConfig struct {
	APIKey      string  `yaml:"-"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
}

// ResearchConfig bounds the orchestration engine. The two agentic call
// sites (phase research and Q&A) are configured independently.
type ResearchConfig struct {
	// Phase research loop bounds.
	MaxIterations int `yaml:"max_iterations"`
	MaxSearches   int `yaml:"max_searches"`

	// Q&A loop bounds. Lookups per turn are unbounded (zero), bounded
	// implicitly by the iteration count.
	QAMaxIterations int `yaml:"qa_max_iterations"`
	QAMaxTokens     int `yaml:"qa_max_tokens"`

	// Prompt assembly limits.
	PrevResultExcerptChars int `yaml:"prev_result_excerpt_chars"`
	QAContextChars         int `yaml:"qa_context_chars"`

	// Per-phase output budgets. The itinerary and hotels phases scale with
	// trip duration between the floor and their ceilings; all other phases
	// use the floor as a flat budget.
	PhaseTokensFloor      int `yaml:"phase_tokens_floor"`
	ItineraryTokensPerDay int `yaml:"itinerary_tokens_per_day"`
	ItineraryTokensCap    int `yaml:"itinerary_tokens_cap"`
	HotelsTokensPerDay    int `yaml:"hotels_tokens_per_day"`
	HotelsTokensCap       int `yaml:"hotels_tokens_cap"`

	// HeartbeatInterval bounds a single stream read; on expiry the consumer
	// emits a heartbeat event. Parsed from the YAML "heartbeat" duration
	// string.
	HeartbeatInterval time.Duration `yaml:"-"`
	Heartbeat         string        `yaml:"heartbeat"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8080",
			AllowedOrigins: []string{
				"http://localhost:5173",
				"http://127.0.0.1:5173",
			},
		},
		LLM: LLMConfig{
			Model:       "gpt-4o",
			Temperature: 0.7,
		},
		Research: ResearchConfig{
			MaxIterations:          5,
			MaxSearches:            10,
			QAMaxIterations:        8,
			QAMaxTokens:            4096,
			PrevResultExcerptChars: 2000,
			QAContextChars:         6000,
			PhaseTokensFloor:       8000,
			ItineraryTokensPerDay:  2000,
			ItineraryTokensCap:     32000,
			HotelsTokensPerDay:     500,
			HotelsTokensCap:        16000,
			HeartbeatInterval:      time.Second,
			Heartbeat:              "1s",
		},
	}
}
