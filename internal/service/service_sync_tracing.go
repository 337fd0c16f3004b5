package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/MKhiriev/planner-sync/internal/tracing"
	"github.com/MKhiriev/planner-sync/models"
)

// SyncTracingService records one span per sync operation with the versions
// involved. The secret key is never put on a span.
type SyncTracingService struct {
	inner  SyncService
	tracer *tracing.Tracer
}

func NewSyncTracingService(tracer *tracing.Tracer) SyncServiceWrapper {
	return &SyncTracingService{tracer: tracer}
}

func (s *SyncTracingService) GetData(ctx context.Context, secretKey string) (resp models.DataResponse, err error) {
	ctx, span := s.tracer.Start(ctx, "sync.get_data")
	defer func() {
		span.SetAttributes(
			attribute.Bool("sync.exists", resp.Exists),
			attribute.Int64("sync.server_version", resp.Version),
		)
		tracing.EndSpan(span, err)
	}()

	return s.inner.GetData(ctx, secretKey)
}

func (s *SyncTracingService) Push(ctx context.Context, secretKey string, req models.PushRequest) (resp models.PushResponse, err error) {
	ctx, span := s.tracer.Start(ctx, "sync.push")
	span.SetAttributes(
		attribute.Int64("sync.client_version", req.ClientVersion),
		attribute.Int("sync.payload_bytes", len(req.Data)),
	)
	defer func() {
		span.SetAttributes(attribute.Int64("sync.server_version", resp.Version))
		tracing.EndSpan(span, err)
	}()

	return s.inner.Push(ctx, secretKey, req)
}

func (s *SyncTracingService) Pull(ctx context.Context, secretKey string, req models.PullRequest) (resp models.PullResponse, err error) {
	ctx, span := s.tracer.Start(ctx, "sync.pull")
	span.SetAttributes(attribute.Int64("sync.client_version", req.ClientVersion))
	defer func() {
		span.SetAttributes(
			attribute.Int64("sync.server_version", resp.Version),
			attribute.Bool("sync.conflict", resp.HasConflict),
		)
		tracing.EndSpan(span, err)
	}()

	return s.inner.Pull(ctx, secretKey, req)
}

func (s *SyncTracingService) Delete(ctx context.Context, secretKey string) (resp models.DeleteResponse, err error) {
	ctx, span := s.tracer.Start(ctx, "sync.delete")
	defer func() { tracing.EndSpan(span, err) }()

	return s.inner.Delete(ctx, secretKey)
}

func (s *SyncTracingService) Wrap(wrapped SyncService) SyncService {
	s.inner = wrapped
	return s
}
