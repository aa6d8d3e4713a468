// Wayfarer server — orchestrates multi-phase AI travel research, streams
// progress to clients, and answers follow-up questions.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/wayfarer-ai/wayfarer/pkg/api"
	"github.com/wayfarer-ai/wayfarer/pkg/config"
	"github.com/wayfarer-ai/wayfarer/pkg/llm"
	"github.com/wayfarer-ai/wayfarer/pkg/research"
	"github.com/wayfarer-ai/wayfarer/pkg/search"
	"github.com/wayfarer-ai/wayfarer/pkg/services"
	"github.com/wayfarer-ai/wayfarer/pkg/session"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	configPath := flag.String("config",
		getEnv("CONFIG_FILE", "./wayfarer.yaml"),
		"Path to configuration file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Warn("Could not load .env file, continuing with existing environment", "error", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	slog.Info("Starting wayfarer", "http_port", cfg.Server.Port, "model", cfg.LLM.Model)

	llmClient, err := llm.NewClient(llm.Options{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
	})
	if err != nil {
		slog.Error("Failed to initialize model gateway client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := llmClient.Close(); err != nil {
			slog.Error("Error closing model gateway client", "error", err)
		}
	}()

	searchExecutor := search.NewExecutor()
	sessions := session.NewStore()
	runner := research.NewRunner(llmClient, searchExecutor, cfg.Research)

	researchService := services.NewResearchService(sessions, runner)
	chatService := services.NewChatService(sessions, llmClient, searchExecutor, cfg.Research)
	slog.Info("Services initialized", "phases", len(runner.Catalog()))

	httpServer := api.NewServer(cfg, researchService, chatService)

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Server.Port
		slog.Info("HTTP server listening", "addr", addr)
		if err := httpServer.Start(addr); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigCh:
		slog.Info("Shutdown signal received", "signal", sig)
	case err := <-errCh:
		slog.Error("Server error triggered shutdown", "error", err)
	}

	// In-flight research workers are not awaited: sessions are
	// process-scoped and unfinished runs do not survive restarts.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
