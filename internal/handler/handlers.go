package handler

import (
	"github.com/MKhiriev/planner-sync/internal/config"
	"github.com/MKhiriev/planner-sync/internal/handler/http"
	"github.com/MKhiriev/planner-sync/internal/limiter"
	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/internal/service"
	"github.com/MKhiriev/planner-sync/internal/tracing"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, rateLimiter *limiter.FixedWindow, tracer *tracing.Tracer, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, rateLimiter, tracer, cfg, logger),
	}, nil
}
