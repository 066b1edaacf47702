package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// WebSocket route
	mux.HandleFunc("/ws", s.app.WSHandler.HandleWebSocket)

	// API routes - Analysis pipeline
	mux.HandleFunc("/api/analysis", s.app.AnalysisHandler.TriggerHandler) // POST - trigger analysis run

	// API routes - Jobs
	mux.HandleFunc("/api/jobs", s.app.JobHandler.ListJobsHandler)
	mux.HandleFunc("/api/jobs/", s.handleJobRoutes) // GET /api/jobs/{id}

	// API routes - Signals
	mux.HandleFunc("/api/signals", s.app.SignalHandler.ListSignalsHandler)

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// handleJobRoutes routes /api/jobs/{id} requests
func (s *Server) handleJobRoutes(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	if r.Method == "GET" && len(path) > len("/api/jobs/") {
		s.app.JobHandler.GetJobHandler(w, r)
		return
	}

	if r.Method == "GET" && strings.TrimSuffix(path, "/") == "/api/jobs" {
		s.app.JobHandler.ListJobsHandler(w, r)
		return
	}

	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}
