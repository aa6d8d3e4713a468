package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// Load returns ready-to-use configuration: built-in defaults, overridden by
// the YAML file at path (missing file is fine), overridden by environment
// variables for deploy-specific values.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		fileCfg, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		if fileCfg != nil {
			if err := mergo.Merge(cfg, fileCfg, mergo.WithOverride); err != nil {
				return nil, fmt.Errorf("failed to merge config file: %w", err)
			}
			slog.Info("Loaded configuration file", "path", path)
		}
	}

	applyEnvOverrides(cfg)

	if err := normalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile parses the YAML config file. A missing file returns (nil, nil)
// so defaults apply unchanged.
func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Info("No configuration file, using defaults", "path", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// applyEnvOverrides maps deploy-time environment variables onto the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("FRONTEND_URL"); v != "" {
		cfg.Server.AllowedOrigins = append(cfg.Server.AllowedOrigins, v)
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
}

// normalize parses string fields into their runtime representations and
// validates bounds.
func normalize(cfg *Config) error {
	if cfg.Research.Heartbeat != "" {
		d, err := time.ParseDuration(cfg.Research.Heartbeat)
		if err != nil {
			return fmt.Errorf("invalid research.heartbeat %q: %w", cfg.Research.Heartbeat, err)
		}
		cfg.Research.HeartbeatInterval = d
	}
	if cfg.Research.MaxIterations < 1 {
		return fmt.Errorf("research.max_iterations must be at least 1, got %d", cfg.Research.MaxIterations)
	}
	if cfg.Research.QAMaxIterations < 1 {
		return fmt.Errorf("research.qa_max_iterations must be at least 1, got %d", cfg.Research.QAMaxIterations)
	}
	return nil
}
