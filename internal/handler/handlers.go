package handler

import (
	"github.com/MKhiriev/zero-waste-market/internal/config"
	"github.com/MKhiriev/zero-waste-market/internal/handler/http"
	"github.com/MKhiriev/zero-waste-market/internal/logger"
	"github.com/MKhiriev/zero-waste-market/internal/ratelimit"
	"github.com/MKhiriev/zero-waste-market/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, limiter *ratelimit.Limiter, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, limiter, cfg, logger),
	}, nil
}
