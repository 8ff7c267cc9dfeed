package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/LumenBytes/vidlens-cli/internal/config"
	"github.com/LumenBytes/vidlens-cli/internal/dataset"
)

// Server exposes the cleaned record set as a small dashboard API. The record
// set is loaded once at startup and never mutated; every handler is a pure
// read over it.
type Server struct {
	cfg     *config.Global
	dataset string
	rows    int
	records []dataset.VideoRecord
	clean   dataset.CleanSummary
	logger  *log.Logger
	router  chi.Router
	httpSrv *http.Server
}

// New constructs the dashboard server with base middleware and routes.
func New(cfg *config.Global, name string, rows int, records []dataset.VideoRecord, clean dataset.CleanSummary, logger *log.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		cfg:     cfg,
		dataset: name,
		rows:    rows,
		records: records,
		clean:   clean,
		logger:  logger,
		router:  r,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/", s.handleIndex)
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Get("/groups", s.handleGroups)
		r.Get("/correlation", s.handleCorrelation)
		r.Get("/videos/top", s.handleTopVideos)
	})
}

// Start boots the HTTP server and blocks until it stops or ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:         ":" + s.cfg.ServerPort,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.cfg.ServerReadTimeoutS) * time.Second,
		WriteTimeout: time.Duration(s.cfg.ServerWriteTimeoutS) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.ServerIdleTimeoutS) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	s.logger.Printf("dashboard: serving %s (%d records) on :%s", s.dataset, len(s.records), s.cfg.ServerPort)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpSrv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
