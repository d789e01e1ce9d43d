// Package server exposes timestamp resolution and age reporting over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mvnage/mvnage/pkg/libyear"
	"github.com/mvnage/mvnage/pkg/maven"
)

// maxReportCoordinates bounds a single report request; each coordinate can
// cost up to the full fallback-chain latency.
const maxReportCoordinates = 500

// Server holds the chi router and its dependencies.
type Server struct {
	resolver libyear.Resolver
	workers  int
	router   chi.Router
	logger   *log.Logger
}

// New creates a Server and registers all routes. A nil logger falls back to
// the package default.
func New(resolver libyear.Resolver, workers int, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		resolver: resolver,
		workers:  workers,
		router:   chi.NewRouter(),
		logger:   logger,
	}
	s.registerRoutes()
	return s
}

// Router returns the chi router (for mounting or testing).
func (s *Server) Router() chi.Router {
	return s.router
}

func (s *Server) registerRoutes() {
	r := s.router
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/api/health", s.handleHealth)
	r.Get("/api/timestamp", s.handleTimestamp)
	r.Post("/api/report", s.handleReport)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}

// --- Response helpers ---

type envelope struct {
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Error: msg})
}

// --- Handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type timestampResponse struct {
	Coordinate   string    `json:"coordinate"`
	TimestampMS  int64     `json:"timestamp_ms"`
	LastModified time.Time `json:"last_modified"`
	AgeYears     float64   `json:"age_years"`
}

func (s *Server) handleTimestamp(w http.ResponseWriter, r *http.Request) {
	coord, err := maven.ParseCoordinate(r.URL.Query().Get("coordinate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ts, err := s.resolver.LastModified(r.Context(), coord)
	if err != nil {
		s.logger.Warn("resolution failed", "coordinate", coord.String(), "error", err)
		status := http.StatusBadGateway
		if errors.Is(err, maven.ErrNotFound) {
			status = http.StatusNotFound
		}
		writeError(w, status, err.Error())
		return
	}

	released := time.UnixMilli(ts).UTC()
	writeJSON(w, http.StatusOK, timestampResponse{
		Coordinate:   coord.String(),
		TimestampMS:  ts,
		LastModified: released,
		AgeYears:     libyear.AgeYears(released, time.Now()),
	})
}

type reportRequest struct {
	Coordinates []string `json:"coordinates"`
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Coordinates) == 0 {
		writeError(w, http.StatusBadRequest, "no coordinates given")
		return
	}
	if len(req.Coordinates) > maxReportCoordinates {
		writeError(w, http.StatusBadRequest, "too many coordinates")
		return
	}

	coords := make([]maven.Coordinate, 0, len(req.Coordinates))
	for _, raw := range req.Coordinates {
		coord, err := maven.ParseCoordinate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		coords = append(coords, coord)
	}

	rep := libyear.Run(r.Context(), s.resolver, coords, libyear.Options{Workers: s.workers})
	writeJSON(w, http.StatusOK, rep)
}
