package server

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MKhiriev/zero-waste-market/internal/config"
	"github.com/MKhiriev/zero-waste-market/internal/handler"
	"github.com/MKhiriev/zero-waste-market/internal/logger"
	"github.com/MKhiriev/zero-waste-market/internal/workers"
)

type server struct {
	httpServer *httpServer
	workers    *workers.Workers

	// quit is closed by Shutdown.
	quit     chan struct{}
	quitOnce sync.Once

	logger *logger.Logger
}

func NewServer(handlers *handler.Handlers, background *workers.Workers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil {
		return nil, errNoServersAreCreated
	}
	if background == nil {
		background = workers.NewWorkers()
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		workers:    background,
		quit:       make(chan struct{}),
		logger:     logger,
	}, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	listener, err := net.Listen("tcp", s.httpServer.server.Addr)
	if err != nil {
		s.logger.Err(err).Str("address", s.httpServer.server.Addr).Msg("error listening")
		return
	}

	if err = s.run(ctx, listener); err != nil {
		s.logger.Err(err).Msg("error running server")
	}
}

// Shutdown stops a running server. It is safe to call before RunServer.
func (s *server) Shutdown() {
	s.quitOnce.Do(func() { close(s.quit) })
}

// run serves on l and runs the workers until ctx is done or serving fails,
// then shuts everything down and waits for the workers to return.
func (s *server) run(ctx context.Context, l net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.quit:
			cancel()
		case <-ctx.Done():
		}
	}()

	workersDone := make(chan struct{})
	go func() {
		defer close(workersDone)
		s.workers.Run(ctx)
	}()

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("address", l.Addr().String()).Msg("Launching HTTP server")
		serveErr <- s.httpServer.Serve(l)
	}()

	var err error
	select {
	case <-ctx.Done():
		s.httpServer.Shutdown(context.WithoutCancel(ctx))
		err = <-serveErr
	case err = <-serveErr:
		if err != nil {
			err = fmt.Errorf("error serving HTTP: %w", err)
		}
	}

	cancel()
	<-workersDone
	s.logger.Info().Msg("server Shutdown gracefully")

	return err
}
