package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/zero-waste-market/internal/config"
	"github.com/MKhiriev/zero-waste-market/internal/logger"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

type httpServer struct {
	server *http.Server
	logger *logger.Logger
}

// newHTTPServer bounds reads and writes by the request timeout. Writes get
// an extra second so that chi's timeout middleware can still answer.
func newHTTPServer(handler http.Handler, cfg config.Server, logger *logger.Logger) *httpServer {
	srv := &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	if cfg.RequestTimeout > 0 {
		srv.ReadTimeout = cfg.RequestTimeout
		srv.WriteTimeout = cfg.RequestTimeout + time.Second
	}

	return &httpServer{server: srv, logger: logger}
}

// Serve accepts connections on l until Shutdown. A clean shutdown is not an
// error.
func (h *httpServer) Serve(l net.Listener) error {
	if err := h.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server Serve: %w", err)
	}
	return nil
}

func (h *httpServer) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Err(err).Msg("HTTP server Shutdown")
	}
}
