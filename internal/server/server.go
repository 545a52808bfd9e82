// Where: internal/server/server.go
// What: The explicit HTTP server instance and its lifecycle.
// Why: Construct routing once at startup and shut down cleanly on cancellation.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

const (
	defaultReadHeaderTimeout = 5 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
)

// Config holds listener settings.
type Config struct {
	Listen          string
	MetricsListen   string
	ShutdownTimeout time.Duration
}

// Server serves the page on one listener and, optionally, metrics on another.
type Server struct {
	cfg     Config
	logger  zerolog.Logger
	metrics *Metrics
	handler http.Handler
}

// New wires the router: GET (and HEAD) on "/" only. Anything else gets the
// router's 404 or 405.
func New(cfg Config, gatherer Gatherer, renderer Renderer, metrics *Metrics, logger zerolog.Logger) *Server {
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	router := mux.NewRouter()
	router.Handle("/", metrics.Instrument(withRecovery(pageHandler{gatherer: gatherer, renderer: renderer}))).
		Methods(http.MethodGet, http.MethodHead)

	return &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		handler: withLogging(logger, router),
	}
}

// Handler returns the fully wrapped page handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured addresses and serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Listen, err)
	}
	var metricsLn net.Listener
	if s.cfg.MetricsListen != "" && s.metrics != nil {
		metricsLn, err = net.Listen("tcp", s.cfg.MetricsListen)
		if err != nil {
			_ = ln.Close()
			return fmt.Errorf("listen on %s: %w", s.cfg.MetricsListen, err)
		}
	}
	return s.Serve(ctx, ln, metricsLn)
}

// Serve serves on the given listeners until ctx is canceled or a listener
// fails. metricsLn may be nil; it is closed unused when the server has no metrics.
func (s *Server) Serve(ctx context.Context, ln, metricsLn net.Listener) error {
	servers := []*http.Server{s.newHTTPServer(s.handler)}
	listeners := []net.Listener{ln}
	if metricsLn != nil && s.metrics == nil {
		s.logger.Warn().Str("addr", metricsLn.Addr().String()).Msg("metrics disabled; closing listener")
		_ = metricsLn.Close()
	}
	if metricsLn != nil && s.metrics != nil {
		metricsRouter := mux.NewRouter()
		metricsRouter.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
		servers = append(servers, s.newHTTPServer(metricsRouter))
		listeners = append(listeners, metricsLn)
	}

	errCh := make(chan error, len(servers))
	for i, srv := range servers {
		s.logger.Info().Str("addr", listeners[i].Addr().String()).Msg("listening")
		go func(srv *http.Server, ln net.Listener) {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}(srv, listeners[i])
	}

	var serveErr error
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("shutting down")
	case serveErr = <-errCh:
		s.logger.Error().Err(serveErr).Msg("listener failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil && serveErr == nil {
			serveErr = fmt.Errorf("shutdown: %w", err)
		}
	}
	return serveErr
}

func (s *Server) newHTTPServer(handler http.Handler) *http.Server {
	return &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
	}
}
