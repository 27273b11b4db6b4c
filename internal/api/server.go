// Package api exposes the progression engine over HTTP: state and catalog
// reads, task and job mutations, cycle runs, and data export/import.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zero2one-app/zero2one/internal/app/notify"
	"github.com/zero2one-app/zero2one/internal/app/session"
)

// Server is the HTTP API server.
type Server struct {
	session        *session.Session
	feed           *notify.Feed
	version        string
	metricsEnabled bool
}

// NewServer creates an API server over a session and its notification feed.
func NewServer(s *session.Session, feed *notify.Feed, version string) *Server {
	return &Server{session: s, feed: feed, version: version}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"version": s.version,
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)

		r.Get("/tasks", s.handleListTasks)
		r.Post("/tasks", s.handleCreateTask)
		r.Post("/tasks/{category}/{id}/complete", s.handleCompleteTask)
		r.Delete("/tasks/{category}/{id}", s.handleRemoveTask)

		r.Get("/events", s.handleEvents)
		r.Get("/penalties", s.handlePenalties)
		r.Get("/achievements", s.handleAchievements)
		r.Get("/chains", s.handleChains)

		r.Get("/jobs", s.handleJobs)
		r.Post("/jobs/accept", s.handleAcceptJob)

		r.Get("/notifications", s.handleNotifications)
		r.Post("/notifications/{id}/shown", s.handleNotificationShown)

		r.Post("/cycle", s.handleCycle)

		r.Get("/export", s.handleExport)
		r.Post("/import", s.handleImport)
		r.Post("/reset", s.handleReset)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}
