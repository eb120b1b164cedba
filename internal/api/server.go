// Package api provides the moodmap HTTP server: journal records, the mood
// summary, ad-hoc text analysis and the location permission gate.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/moodmap/moodmap/internal/app/journal"
	"github.com/moodmap/moodmap/internal/domain"
	"github.com/moodmap/moodmap/internal/logging"
)

// Version is reported by /api/version. Overridden at build time.
var Version = "0.1.0"

// Server is the moodmap HTTP API server.
type Server struct {
	journal        *journal.Journal
	log            logging.Logger
	metricsEnabled bool
	timeout        time.Duration
}

// NewServer creates a new API server over j.
func NewServer(j *journal.Journal, log logging.Logger) *Server {
	if log == nil {
		log = logging.Discard()
	}
	return &Server{journal: j, log: log, timeout: 30 * time.Second}
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
	r.Use(middleware.Timeout(s.timeout))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": Version,
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/records", s.handleListRecords)
		r.Post("/records", s.handleCreateRecord)
		r.Delete("/records/{id}", s.handleDeleteRecord)

		r.Get("/summary", s.handleSummary)
		r.Post("/analyze", s.handleAnalyze)

		r.Get("/location", s.handleGetLocation)
		r.Post("/location", s.handleSetLocation)
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
func writeError(w http.ResponseWriter, status int, errType, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    errType,
		},
	})
}

// writeDomainError maps a journal error onto a status code.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, errType := classifyError(err)
	if status >= http.StatusInternalServerError {
		s.log.Error(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()), "error", err)
	}
	writeError(w, status, errType, err.Error())
}

func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidCoordinate),
		errors.Is(err, domain.ErrEmptyDescription):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden, "permission_denied"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, "invalid_transition"
	case errors.Is(err, domain.ErrPersistence):
		return http.StatusInternalServerError, "persistence_error"
	default:
		return http.StatusInternalServerError, "error"
	}
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
