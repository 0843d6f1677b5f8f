// Package server exposes draw statistics over a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/drawstat/internal/model"
	"github.com/verte-zerg/drawstat/internal/source"
	"github.com/verte-zerg/drawstat/internal/stats"
)

// Loader produces the draw table for a request.
type Loader func(ctx context.Context) (model.DrawTable, error)

// Server serves statistics computed from a freshly loaded table per request.
type Server struct {
	router  *chi.Mux
	load    Loader
	columns []string
	log     *logrus.Logger
}

// New creates a Server. An empty columns list means the five main numbers.
func New(load Loader, columns []string, log *logrus.Logger) *Server {
	if len(columns) == 0 {
		columns = model.MainColumns
	}
	if log == nil {
		log = logrus.New()
	}
	s := &Server{
		router:  chi.NewRouter(),
		load:    load,
		columns: columns,
		log:     log,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.requestLogger)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/frequencies", s.handleFrequencies)
		r.Get("/summary", s.handleSummary)
		r.Get("/hot", s.handleHot)
		r.Get("/cold", s.handleCold)
		r.Get("/trend", s.handleTrend)
		r.Get("/duplicates", s.handleDuplicates)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start).String(),
			"request_id": middleware.GetReqID(r.Context()),
		}).Debug("request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleFrequencies(w http.ResponseWriter, r *http.Request) {
	_, columns, freqs, ok := s.frequencies(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"columns":     columns,
		"total":       freqs.Total(),
		"frequencies": stats.SortedByNumber(freqs),
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	table, _, freqs, ok := s.frequencies(w, r)
	if !ok {
		return
	}
	summary, err := stats.Summarize(freqs)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"draws":   table.Len(),
		"summary": summary,
	})
}

func (s *Server) handleHot(w http.ResponseWriter, r *http.Request) {
	s.handleRanking(w, r, stats.TopN)
}

func (s *Server) handleCold(w http.ResponseWriter, r *http.Request) {
	s.handleRanking(w, r, stats.BottomN)
}

func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request, rank func(model.FrequencyMap, int) ([]int, error)) {
	n := stats.DefaultTopN
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, fmt.Errorf("%w: n must be an integer", source.ErrMalformed))
			return
		}
		n = parsed
	}
	_, _, freqs, ok := s.frequencies(w, r)
	if !ok {
		return
	}
	numbers, err := rank(freqs, n)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"numbers": numbers})
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	numbers, err := source.ParseNumbers(r.URL.Query().Get("numbers"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	_, _, freqs, ok := s.frequencies(w, r)
	if !ok {
		return
	}
	score, err := stats.TrendScore(numbers, freqs)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"numbers":     numbers,
		"trend_score": score,
	})
}

func (s *Server) handleDuplicates(w http.ResponseWriter, r *http.Request) {
	table, err := s.load(r.Context())
	if err != nil {
		s.writeLoadError(w, err)
		return
	}
	dups, err := stats.FindDuplicateCombinations(table)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"duplicates": dups})
}

// frequencies loads the table and counts the columns named by the columns
// query parameter, falling back to the configured columns.
func (s *Server) frequencies(w http.ResponseWriter, r *http.Request) (model.DrawTable, []string, model.FrequencyMap, bool) {
	table, err := s.load(r.Context())
	if err != nil {
		s.writeLoadError(w, err)
		return model.DrawTable{}, nil, nil, false
	}
	columns := s.columns
	if raw := r.URL.Query().Get("columns"); strings.TrimSpace(raw) != "" {
		columns = parseColumns(raw)
	}
	freqs, err := stats.ComputeFrequencies(table, columns)
	if err != nil {
		s.writeError(w, err)
		return model.DrawTable{}, nil, nil, false
	}
	return table, columns, freqs, true
}

func parseColumns(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (s *Server) writeLoadError(w http.ResponseWriter, err error) {
	s.log.WithError(err).Error("failed to load draws")
	s.writeJSON(w, http.StatusBadGateway, map[string]string{"error": "failed to load draws"})
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, stats.ErrInvalidInput), errors.Is(err, source.ErrMalformed):
		status = http.StatusBadRequest
	case errors.Is(err, stats.ErrInvalidState):
		status = http.StatusUnprocessableEntity
	default:
		s.log.WithError(err).Error("request failed")
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Warn("failed to write response")
	}
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.WithField("addr", addr).Info("serving draw statistics")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
