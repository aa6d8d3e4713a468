// Package api exposes the research service over HTTP: session start,
// server-sent event streaming, results queries, follow-up chat, and plan
// download.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wayfarer-ai/wayfarer/pkg/config"
	"github.com/wayfarer-ai/wayfarer/pkg/services"
)

// Server is the HTTP server over the service layer.
type Server struct {
	cfg      *config.Config
	research *services.ResearchService
	chat     *services.ChatService
	engine   *gin.Engine
	httpSrv  *http.Server
}

// NewServer creates the API server and registers its routes.
func NewServer(cfg *config.Config, research *services.ResearchService, chat *services.ChatService) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		cfg:      cfg,
		research: research,
		chat:     chat,
		engine:   engine,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.Use(corsMiddleware(s.cfg.Server.AllowedOrigins))
	s.engine.Use(securityHeaders())

	api := s.engine.Group("/api")
	api.GET("/health", s.Health)
	api.POST("/research", s.StartResearch)
	api.GET("/research/:id/stream", s.StreamResearch)
	api.GET("/research/:id/results", s.GetResults)
	api.POST("/research/:id/chat", s.Chat)
	api.GET("/research/:id/download", s.DownloadPlan)
}

// Handler returns the underlying HTTP handler (used by tests).
func (s *Server) Handler() http.Handler { return s.engine }

// Start begins serving on addr. Blocks until the server stops.
func (s *Server) Start(addr string) error {
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s.httpSrv.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// Health handles GET /api/health.
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
