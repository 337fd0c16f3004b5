// Package tracing configures the OpenTelemetry tracer provider of the sync
// server and offers span helpers for HTTP requests and document store calls.
package tracing

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/planner-sync/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// TracerName is the instrumentation scope of every span.
const TracerName = "github.com/MKhiriev/planner-sync"

// Exporter names accepted in config.Tracing.Exporter.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Tracer wraps an OpenTelemetry tracer and its provider.
type Tracer struct {
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
}

// Nop returns a tracer whose spans are discarded.
func Nop() *Tracer {
	return &Tracer{tracer: noop.NewTracerProvider().Tracer(TracerName)}
}

// New builds a tracer from cfg. A disabled config yields [Nop]. out receives
// stdout exporter output; nil means os.Stdout.
func New(ctx context.Context, cfg config.Tracing, version string, out io.Writer) (*Tracer, error) {
	if !cfg.Enabled {
		return Nop(), nil
	}

	exporter, err := createExporter(ctx, cfg, out)
	if err != nil {
		return nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(version),
		),
		resource.WithHost(),
		resource.WithTelemetrySDK(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	otel.SetTracerProvider(provider)

	return &Tracer{
		tracer:   provider.Tracer(TracerName, trace.WithInstrumentationVersion(version)),
		provider: provider,
	}, nil
}

func createExporter(ctx context.Context, cfg config.Tracing, out io.Writer) (sdktrace.SpanExporter, error) {
	switch cfg.Exporter {
	case ExporterStdout:
		var opts []stdouttrace.Option
		if out != nil {
			opts = append(opts, stdouttrace.WithWriter(out))
		}
		return stdouttrace.New(opts...)

	case ExporterOTLP:
		return otlptracehttp.New(ctx,
			otlptracehttp.WithInsecure(),
			otlptracehttp.WithEndpoint(cfg.OTLPEndpoint),
		)

	default:
		return nil, fmt.Errorf("unsupported exporter type: %s", cfg.Exporter)
	}
}

// Shutdown flushes pending spans and stops the provider.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t.provider != nil {
		return t.provider.Shutdown(ctx)
	}
	return nil
}

// Start starts a new span with the given name.
func (t *Tracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, opts...)
}

// StartServerSpan starts the span of an inbound HTTP request, continuing a
// trace propagated by the caller's headers.
func (t *Tracer) StartServerSpan(ctx context.Context, carrier propagation.TextMapCarrier, method, route string) (context.Context, trace.Span) {
	ctx = otel.GetTextMapPropagator().Extract(ctx, carrier)
	return t.tracer.Start(ctx, method+" "+route,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("http.route", route),
		),
	)
}

// StartStoreSpan starts a span around one document store operation.
func (t *Tracer) StartStoreSpan(ctx context.Context, operation string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "store."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("db.operation.name", operation)),
	)
}

// EndSpan records err, if any, and ends span.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// SetStatusCode annotates an HTTP server span with the response status.
func SetStatusCode(span trace.Span, status int) {
	span.SetAttributes(attribute.Int("http.response.status_code", status))
	if status >= 500 {
		span.SetStatus(codes.Error, fmt.Sprintf("status %d", status))
	}
}
