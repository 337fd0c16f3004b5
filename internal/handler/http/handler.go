package http

import (
	"time"

	"github.com/MKhiriev/planner-sync/internal/config"
	"github.com/MKhiriev/planner-sync/internal/limiter"
	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/internal/service"
	"github.com/MKhiriev/planner-sync/internal/tracing"
)

type Handler struct {
	services *service.Services
	limiter  *limiter.FixedWindow
	tracer   *tracing.Tracer

	minSecretKeyLength int
	maxBodyBytes       int64
	requestTimeout     time.Duration

	logger *logger.Logger
}

// NewHandler builds the HTTP handler. The rate limiter is owned by the
// caller so that a janitor can evict its expired windows.
func NewHandler(services *service.Services, rateLimiter *limiter.FixedWindow, tracer *tracing.Tracer, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:           services,
		limiter:            rateLimiter,
		tracer:             tracer,
		minSecretKeyLength: cfg.Auth.MinSecretKeyLength,
		maxBodyBytes:       cfg.Server.MaxBodyBytes,
		requestTimeout:     cfg.Server.RequestTimeout,
		logger:             logger,
	}
}
