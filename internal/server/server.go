// Package server runs the HTTP side of the process: health and readiness
// probes, tool status, and optionally the streamable HTTP MCP endpoint.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Kiran1689/storyblok-mcp-server/internal/config"
	"github.com/Kiran1689/storyblok-mcp-server/internal/logger"
	"github.com/Kiran1689/storyblok-mcp-server/internal/tools"
)

// ShutdownTimeout bounds graceful shutdown once the run context is done.
const ShutdownTimeout = 5 * time.Second

// MCPPath is where the streamable HTTP transport is mounted.
const MCPPath = "/mcp"

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Uptime    string `json:"uptime"`
}

// ReadyResponse represents the readiness check response
type ReadyResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Tools     int    `json:"tools"`
}

// ToolHealthSummary counts tools by lifecycle status.
type ToolHealthSummary struct {
	Total      int `json:"total"`
	Active     int `json:"active"`
	Loaded     int `json:"loaded"`
	Registered int `json:"registered"`
	Error      int `json:"error"`
	Disabled   int `json:"disabled"`
}

type ToolHealthDetail struct {
	Name         string   `json:"name"`
	Status       string   `json:"status"`
	Description  string   `json:"description"`
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
	ErrorMessage string   `json:"error_message,omitempty"`
}

// ToolsHealthResponse is served on /tools/health.
type ToolsHealthResponse struct {
	Status    string                      `json:"status"`
	Timestamp string                      `json:"timestamp"`
	Summary   ToolHealthSummary           `json:"summary"`
	Tools     map[string]ToolHealthDetail `json:"tools"`
	Registry  tools.RegistryHealth        `json:"registry"`
}

// ToolStatusSource is the part of the tool registry the probes read.
type ToolStatusSource interface {
	tools.ToolLister
	Health() tools.RegistryHealth
}

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	logger       *logger.Logger
	config       *config.Config
	router       chi.Router
	toolRegistry ToolStatusSource
	startTime    time.Time
}

// New builds the server. mcpHandler is mounted on /mcp when non-nil.
func New(cfg *config.Config, log *logger.Logger, registry ToolStatusSource, mcpHandler http.Handler) *Server {
	s := &Server{
		logger:       log,
		config:       cfg,
		toolRegistry: registry,
		startTime:    time.Now(),
	}
	s.router = s.routes(mcpHandler)
	s.httpServer = &http.Server{
		Addr:           cfg.Server.Addr(),
		Handler:        s.router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       log.StdLogger(slog.LevelError),
	}
	return s
}

func (s *Server) routes(mcpHandler http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if origins := s.corsOrigins(); len(origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Mcp-Session-Id", "Mcp-Protocol-Version"},
			ExposedHeaders: []string{"Mcp-Session-Id"},
			MaxAge:         300,
		}))
	}

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Get("/tools/health", s.handleToolsHealth)
	if mcpHandler != nil {
		r.Handle(MCPPath, mcpHandler)
	}
	return r
}

func (s *Server) corsOrigins() []string {
	var origins []string
	for _, origin := range s.config.Server.CORSAllowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			return []string{"*"}
		}
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is done, then shuts down within ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down http server")
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("health check requested", "remote_addr", r.RemoteAddr)

	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   s.config.Logger.Service,
		Version:   s.config.Logger.Version,
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
	})
}

// handleReady reports ready once the tool registry is running.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("readiness check requested", "remote_addr", r.RemoteAddr)

	response := ReadyResponse{
		Status:    "ready",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   s.config.Logger.Service,
		Version:   s.config.Logger.Version,
	}
	code := http.StatusOK
	if s.toolRegistry == nil {
		response.Status = "not_ready"
		code = http.StatusServiceUnavailable
	} else {
		health := s.toolRegistry.Health()
		response.Tools = health.ActiveTools
		if health.Status == "stopped" {
			response.Status = "not_ready"
			code = http.StatusServiceUnavailable
		}
	}
	s.writeJSON(w, code, response)
}

func (s *Server) handleToolsHealth(w http.ResponseWriter, r *http.Request) {
	if s.toolRegistry == nil {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	list := s.toolRegistry.List()
	registryHealth := s.toolRegistry.Health()
	summary := s.buildToolHealthSummary(list)

	details := make(map[string]ToolHealthDetail, len(list))
	for _, info := range list {
		detail := ToolHealthDetail{
			Name:         info.Name,
			Status:       string(info.Status),
			Description:  info.Description,
			Version:      info.Version,
			Capabilities: info.Capabilities,
		}
		if info.Status == tools.ToolStatusError {
			detail.ErrorMessage = "tool failed to load or validate"
		}
		details[info.Name] = detail
	}

	s.writeJSON(w, http.StatusOK, ToolsHealthResponse{
		Status:    s.determineToolsOverallHealth(summary, registryHealth),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Summary:   summary,
		Tools:     details,
		Registry:  registryHealth,
	})
}

func (s *Server) buildToolHealthSummary(list []tools.ToolInfo) ToolHealthSummary {
	summary := ToolHealthSummary{Total: len(list)}
	for _, info := range list {
		switch info.Status {
		case tools.ToolStatusActive:
			summary.Active++
		case tools.ToolStatusLoaded:
			summary.Loaded++
		case tools.ToolStatusRegistered:
			summary.Registered++
		case tools.ToolStatusError:
			summary.Error++
		case tools.ToolStatusDisabled:
			summary.Disabled++
		}
	}
	return summary
}

func (s *Server) determineToolsOverallHealth(summary ToolHealthSummary, registryHealth tools.RegistryHealth) string {
	switch {
	case registryHealth.Status == "stopped":
		return "stopped"
	case summary.Error > 0:
		return "degraded"
	case summary.Total > 0 && summary.Active == 0:
		return "degraded"
	default:
		return "healthy"
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to marshal response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}
