package server

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/planner-sync/internal/config"
	"github.com/MKhiriev/planner-sync/internal/handler"
	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/internal/workers"
)

type server struct {
	httpServer      *httpServer
	workers         *workers.Workers
	shutdownTimeout time.Duration
	logger          *logger.Logger
}

// NewServer builds the HTTP server over handlers. bgWorkers run for the
// lifetime of the server; nil means none.
func NewServer(handlers *handler.Handlers, bgWorkers *workers.Workers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}
	if bgWorkers == nil {
		bgWorkers = workers.NewWorkers()
	}

	return &server{
		httpServer:      newHTTPServer(handlers.HTTP.Init(), cfg),
		workers:         bgWorkers,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}, nil
}

func (s *server) RunServer(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(
		ctx,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	ln, err := s.httpServer.listen()
	if err != nil {
		return fmt.Errorf("error listening on %s: %w", s.httpServer.server.Addr, err)
	}

	workersDone := make(chan error, 1)
	go func() { workersDone <- s.workers.Run(ctx) }()

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("address", ln.Addr().String()).Msg("launching HTTP server")
		serveErr <- s.httpServer.serve(ln)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("termination requested, shutting down")
	case runErr = <-serveErr:
		s.logger.Err(runErr).Msg("HTTP server stopped unexpectedly")
		stop()
	}

	shutdownCtx := context.Background()
	if s.shutdownTimeout > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(shutdownCtx, s.shutdownTimeout)
		defer cancel()
	}
	if err = s.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = err
	}

	if err = <-workersDone; err != nil {
		s.logger.Err(err).Msg("background worker failed")
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return runErr
}

func (s *server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP server Shutdown: %w", err)
	}
	return nil
}
