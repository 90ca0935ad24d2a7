// Package server exposes the journal and its statistics over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/julianstephens/moodlit/internal/config"
	"github.com/julianstephens/moodlit/internal/journal"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/models"
)

// Persister reports the outcome of the last journal save.
type Persister interface {
	Err() error
}

type Server struct {
	cfg       *config.Config
	journal   *journal.Store
	settings  models.Settings
	loc       *time.Location
	persister Persister
	router    chi.Router
	today     func() models.Date
}

type Option func(*Server)

// WithPersister lets /healthz report failed saves.
func WithPersister(p Persister) Option {
	return func(s *Server) {
		s.persister = p
	}
}

func New(cfg *config.Config, j *journal.Store, settings models.Settings, opts ...Option) (*Server, error) {
	loc, err := settings.Location()
	if err != nil {
		return nil, err
	}
	s := &Server{
		cfg:      cfg,
		journal:  j,
		settings: settings,
		loc:      loc,
	}
	s.today = func() models.Date { return models.Today(s.loc) }
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(s.corsOptions()))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/moods", s.handleListMoods)
		r.Post("/moods", s.handleCreateMood)
		r.Delete("/moods/{id}", s.handleDeleteMood)

		r.Get("/stats/daily", s.handleDaily)
		r.Get("/stats/buckets", s.handleBuckets)
		r.Get("/stats/summary", s.handleSummary)

		r.Get("/export", s.handleExport)
	})
	return r
}

// corsOptions allows only the configured origins. An empty list would make
// the cors package allow every origin, so it is turned into a deny-all.
func (s *Server) corsOptions() cors.Options {
	opts := cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowOriginFunc = func(r *http.Request, origin string) bool { return false }
	}
	return opts
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down, giving in-flight requests up to the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpSrv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	stopped := make(chan struct{})
	defer close(stopped)

	shutdownDone := make(chan error, 1)
	go func() {
		select {
		case <-ctx.Done():
		case <-stopped:
			return
		}
		timeout := s.cfg.ShutdownTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		shutdownDone <- httpSrv.Shutdown(shutdownCtx)
	}()

	logger.Info("HTTP server listening", "addr", ln.Addr().String())
	err := httpSrv.Serve(ln)
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-shutdownDone; err != nil {
		return err
	}
	logger.Info("HTTP server stopped")
	return nil
}
