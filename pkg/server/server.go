package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tichlinh-png/trace-worksheet/pkg/cache"
	"github.com/tichlinh-png/trace-worksheet/pkg/pipeline"
)

// Defaults for [Config].
const (
	DefaultAddr            = ":8080"
	DefaultRequestTimeout  = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxBodyBytes    = 64 << 20
	DefaultMaxEntries      = 500
)

// Config configures a [Server]. Zero fields take the defaults above.
type Config struct {
	Addr            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
	MaxEntries      int
	ShareTTL        time.Duration
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.MaxEntries <= 0 {
		c.MaxEntries = DefaultMaxEntries
	}
	if c.ShareTTL <= 0 {
		c.ShareTTL = cache.TTLShare
	}
}

// Server serves the worksheet API.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	store  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger
	router chi.Router
}

// New creates a server. runner renders worksheets and store holds created
// ones. A bounded in-memory store must not be the runner's cache, or
// rendered artifacts with longer TTLs push created worksheets out. A nil
// keyer uses [cache.DefaultKeyer].
func New(cfg Config, runner *pipeline.Runner, store cache.Cache, keyer cache.Keyer, logger *log.Logger) *Server {
	cfg.setDefaults()
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if store == nil {
		store = cache.NewMemoryCache(0)
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		cfg:    cfg,
		runner: runner,
		store:  store,
		keyer:  keyer,
		logger: logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Route("/worksheets", func(r chi.Router) {
			r.Post("/", s.handleCreate)
			r.Get("/{id}", s.handleView)
			r.Get("/{id}/download", s.handleDownload)
		})
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on cfg.Addr until ctx is cancelled, then shuts down gracefully,
// letting in-flight requests finish within the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is like Run but accepts connections on ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("shutdown failed", "error", err)
		return err
	}
	if err := <-errCh; err != nil {
		return err
	}
	s.logger.Info("shutdown complete")
	return nil
}
