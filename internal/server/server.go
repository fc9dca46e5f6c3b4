// Package server provides the read-only HTTP JSON API over the insight engine.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jonathan/brand-insights/internal/insights"
	"github.com/jonathan/brand-insights/internal/loader"
	"github.com/jonathan/brand-insights/internal/server/middleware"
	"github.com/jonathan/brand-insights/internal/server/ratelimit"
	"github.com/jonathan/brand-insights/internal/types"
	"github.com/sirupsen/logrus"
)

// Config holds server configuration
type Config struct {
	Port        int
	DataDir     string
	Roster      types.Roster
	Options     insights.Options
	CORSOrigins []string
	RateLimit   *ratelimit.Config // nil uses the limiter defaults
}

// Server represents the HTTP server
type Server struct {
	cfg         Config
	log         logrus.FieldLogger
	httpServer  *http.Server
	router      *chi.Mux
	rateLimiter *ratelimit.Limiter

	engine   atomic.Pointer[insights.Engine]
	reloadMu sync.Mutex
	lastErr  atomic.Pointer[error]
}

// New creates a server and loads the dataset once. A failed initial load is fatal.
func New(cfg Config, log logrus.FieldLogger) (*Server, error) {
	s := &Server{
		cfg:         cfg,
		log:         log,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
	}

	if err := s.Reload(); err != nil {
		s.rateLimiter.Stop()
		return nil, err
	}

	s.router = s.routes()
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

func (s *Server) routes() *chi.Mux {
	origins := s.cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(s.log))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "X-Dataset-Version"},
		MaxAge:         300,
	}))
	r.Use(middleware.RateLimit(s.rateLimiter, s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/dataset", s.handleDataset)
		r.Get("/metrics", s.handleMetrics)
		r.Get("/overview", s.handleOverview)
		r.Get("/paths", s.handlePaths)
		r.Get("/action-plan", s.handleActionPlan)
		r.Get("/seasonality", s.handleSeasonality)
		r.Get("/strategy", s.handleStrategy)
		r.Get("/report", s.handleReport)

		r.Route("/brands/{brand}", func(r chi.Router) {
			r.Get("/profile", s.handleBrandProfile)
			r.Get("/seasonality", s.handleSeasonality)
		})
	})
	return r
}

// Handler returns the server's routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Engine returns the engine serving requests, or nil before the first successful load.
func (s *Server) Engine() *insights.Engine {
	return s.engine.Load()
}

// Reload loads the data directory and swaps in a fresh engine, which drops
// every memoized result. On failure the previous engine keeps serving.
func (s *Server) Reload() error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	ds, err := loader.Load(s.cfg.DataDir, s.cfg.Roster, s.log)
	if err != nil {
		s.lastErr.Store(&err)
		s.log.WithError(err).WithField("data_dir", s.cfg.DataDir).Error("failed to load dataset")
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	prev := s.engine.Swap(insights.NewEngine(ds, s.cfg.Options, s.log))
	s.lastErr.Store(nil)

	entry := s.log.WithField("version", ds.Version)
	if prev != nil && prev.Version() == ds.Version {
		entry.Debug("dataset unchanged")
		return nil
	}
	entry.Info("dataset loaded")
	return nil
}

// LastError returns the error of the most recent failed reload, or nil.
func (s *Server) LastError() error {
	if p := s.lastErr.Load(); p != nil {
		return *p
	}
	return nil
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.httpServer.Addr).Info("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	defer s.rateLimiter.Stop()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

// Close releases background resources without serving.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		middleware.Logger(r, s.log).WithError(err).Error("failed to encode JSON response")
	}
}

// errorResponse writes an error JSON response with the status derived from err.
func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	s.jsonResponse(w, r, HTTPStatus(err), map[string]string{"error": err.Error()})
}
