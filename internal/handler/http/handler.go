package http

import (
	"time"

	"github.com/MKhiriev/zero-waste-market/internal/config"
	"github.com/MKhiriev/zero-waste-market/internal/logger"
	"github.com/MKhiriev/zero-waste-market/internal/ratelimit"
	"github.com/MKhiriev/zero-waste-market/internal/service"
)

type Handler struct {
	services *service.Services

	// limiter is consulted for every /api request before authentication. A
	// nil limiter admits all requests.
	limiter *ratelimit.Limiter
	metrics *Metrics

	trustForwardedFor bool
	production        bool
	requestTimeout    time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, limiter *ratelimit.Limiter, cfg *config.StructuredConfig, log *logger.Logger) *Handler {
	log.Info().Msg("http handler created")
	return &Handler{
		services:          services,
		limiter:           limiter,
		metrics:           NewMetrics(),
		trustForwardedFor: cfg.RateLimit.TrustForwardedFor,
		production:        logger.IsProduction(cfg.App.Environment),
		requestTimeout:    cfg.Server.RequestTimeout,
		logger:            log,
	}
}
