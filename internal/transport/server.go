// Package transport exposes the compression services over HTTP.
//
//   - POST /api/compress        - compress one uploaded PDF or ZIP
//   - GET  /api/stats           - compression totals
//   - GET  /api/history         - most recent compression jobs
//   - GET  /api/preferences     - current compression preferences
//   - PUT  /api/preferences     - change preferences (X-Admin-Key)
//   - GET  /health, GET /ready  - probes
//   - GET  /                    - browser UI
package transport

import (
	"encoding/json"
	"io/fs"
	"log/slog"
	"net/http"

	"kleincompress/internal/common"
	"kleincompress/internal/config"
)

// Server routes HTTP requests to the domain services
type Server struct {
	config   *config.Config
	logger   *slog.Logger
	services Services
	mux      *http.ServeMux
}

// NewServer creates the HTTP handler. assets holds the browser UI and
// may be nil.
func NewServer(cfg *config.Config, services Services, assets fs.FS) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config:   cfg,
		logger:   logger,
		services: services,
		mux:      http.NewServeMux(),
	}
	s.registerRoutes(assets)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) registerRoutes(assets fs.FS) {
	// Health check (no auth required)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /ready", s.handleReady)

	// Any method is routed here so non-POST requests get a JSON 405
	s.mux.HandleFunc("/api/compress", s.handleCompress)

	s.mux.HandleFunc("GET /api/stats", s.handleStats)
	s.mux.HandleFunc("GET /api/history", s.handleHistory)
	s.mux.HandleFunc("GET /api/preferences", s.handleGetPreferences)
	s.mux.HandleFunc("PUT /api/preferences", s.withAdmin(s.handleUpdatePreferences))

	// Method-less so it does not conflict with /api/compress
	if assets != nil {
		s.mux.Handle("/", http.FileServerFS(assets))
	}
}

// withAdmin requires the configured admin key. An empty key rejects
// every request.
func (s *Server) withAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get("X-Admin-Key")
		if apiKey == "" || apiKey != s.config.Server.AdminKey {
			s.jsonError(w, common.MsgUnauthorized, http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.services.Database == nil {
		s.jsonResponse(w, map[string]string{"status": "ready"}, http.StatusOK)
		return
	}
	if err := s.services.Database.PingContext(r.Context()); err != nil {
		s.logger.Warn("Readiness check failed", "error", err)
		s.jsonError(w, "database not ready", http.StatusServiceUnavailable)
		return
	}
	s.jsonResponse(w, map[string]string{"status": "ready"}, http.StatusOK)
}

// Helper functions

func (s *Server) jsonResponse(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Debug("Failed to write JSON response", "error", err)
	}
}

func (s *Server) jsonError(w http.ResponseWriter, message string, status int) {
	s.jsonResponse(w, ErrorResponse{Error: message}, status)
}
