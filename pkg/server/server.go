// Package server exposes the folding engine over a stateless JSON HTTP API.
//
// Every request carries its full fold sequence; nothing is stored between
// requests except rendered artifacts in the pipeline cache.
//
//	GET  /healthz
//	GET  /api/v1/catalog          ?fold=v:left:1.5&fold=h:up:1.5 marks legal folds
//	POST /api/v1/simulate         {"folds": [...], "punches": [...]}
//	POST /api/v1/render           one step in one format, raw bytes
//	POST /api/v1/trace            fold-history graph as DOT or SVG
//	GET  /api/v1/quiz             ?seed=&min=&max=
//	POST /api/v1/quiz/grade       {"folds": [...], "punch": "x,y", "guess": [...]}
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/holepunch/pkg/catalog"
	"github.com/matzehuels/holepunch/pkg/pipeline"
	"github.com/matzehuels/holepunch/pkg/quiz"
)

const (
	// DefaultAddr is the listen address when none is configured.
	DefaultAddr = ":8080"

	// DefaultMaxBodyBytes bounds request bodies.
	DefaultMaxBodyBytes = 64 << 10

	shutdownTimeout = 10 * time.Second
)

// Config holds HTTP server configuration.
type Config struct {
	Addr           string
	RequestTimeout time.Duration
	MaxBodyBytes   int64

	// Quiz bounds questions served by /api/v1/quiz.
	Quiz quiz.Options
}

// Server serves the HTTP API.
type Server struct {
	router  chi.Router
	runner  *pipeline.Runner
	catalog catalog.Catalog
	logger  *log.Logger
	cfg     Config
}

// New builds a server. A nil menu uses the built-in catalogue.
func New(runner *pipeline.Runner, menu catalog.Catalog, cfg Config, logger *log.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if menu == nil {
		menu = catalog.Default()
	}
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	cfg.Quiz.Catalog = menu

	s := &Server{
		router:  chi.NewRouter(),
		runner:  runner,
		catalog: menu,
		logger:  logger,
		cfg:     cfg,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	if s.cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.cfg.RequestTimeout))
	}

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Post("/simulate", s.handleSimulate)
		r.Post("/render", s.handleRender)
		r.Post("/trace", s.handleTrace)
		r.Get("/quiz", s.handleQuiz)
		r.Post("/quiz/grade", s.handleGrade)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody("NOT_FOUND", "no route for "+r.Method+" "+r.URL.Path))
	})
}

// Handler returns the root handler, e.g. for httptest.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", httpServer.Addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("server stopped gracefully")
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
