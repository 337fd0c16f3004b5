package service

import (
	"context"
	"time"

	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/internal/store"
	"github.com/MKhiriev/planner-sync/models"
)

const healthPingTimeout = 2 * time.Second

type healthService struct {
	documents store.DocumentStore
	now       func() time.Time

	logger *logger.Logger
}

func NewHealthService(documents store.DocumentStore, logger *logger.Logger) HealthService {
	return &healthService{
		documents: documents,
		now:       time.Now,
		logger:    logger,
	}
}

// Health never fails: an unreachable store turns the status to degraded.
func (h *healthService) Health(ctx context.Context) models.HealthResponse {
	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()

	resp := models.HealthResponse{
		Status:    HealthStatusOK,
		Database:  DatabaseConnected,
		Timestamp: h.now().UTC(),
	}

	if err := h.documents.Ping(ctx); err != nil {
		h.logger.Warn().Err(err).Str("func", "healthService.Health").Msg("document store is unreachable")
		resp.Status = HealthStatusDegraded
		resp.Database = DatabaseDisconnected
	}

	return resp
}
