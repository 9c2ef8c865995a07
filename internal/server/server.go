// Package server provides the HTTP server for the GestureKit engine.
package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/astralplayer/gesturekit/internal/engine"
	"github.com/astralplayer/gesturekit/internal/server/api"
	"github.com/astralplayer/gesturekit/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Engine    *engine.Engine
}

// Server represents the HTTP server for the GestureKit application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Engine != nil {
		eventsHandler := api.NewEventsHandler(s.config.Engine)
		s.mux.Handle("/api/events", eventsHandler)

		recordingHandler := api.NewRecordingHandler(s.config.Engine, s.config.Store)
		s.mux.Handle("/api/recording", recordingHandler)

		stateHandler := NewStateHandler(s.config.Engine)
		s.mux.Handle("/api/state", stateHandler)
	}

	if s.config.Store != nil && s.config.Engine != nil {
		gestureHandler := api.NewGestureHandler(s.config.Store, s.config.Engine)
		bindHandler := api.NewBindHandler(s.config.Store, s.config.Engine)
		samplesHandler := api.NewSamplesHandler(s.config.Store, s.config.Engine)

		// Route /api/gestures/{id}/bind and /api/gestures/{id}/samples
		// to their handlers, everything else under the prefix to the
		// gesture handler.
		gestureRouter := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case strings.HasSuffix(r.URL.Path, "/bind"):
				bindHandler.ServeHTTP(w, r)
			case strings.HasSuffix(r.URL.Path, "/samples"):
				samplesHandler.ServeHTTP(w, r)
			default:
				gestureHandler.ServeHTTP(w, r)
			}
		})

		s.mux.Handle("/api/gestures", gestureRouter)
		s.mux.Handle("/api/gestures/", gestureRouter)

		mappingHandler := api.NewMappingHandler(s.config.Store, s.config.Engine)
		s.mux.Handle("/api/mappings", mappingHandler)
		s.mux.Handle("/api/mappings/", mappingHandler)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}
	if s.config.Engine != nil {
		response["metrics"] = s.config.Engine.Metrics()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
