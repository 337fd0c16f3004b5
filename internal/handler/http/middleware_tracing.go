package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/propagation"

	"github.com/MKhiriev/planner-sync/internal/tracing"
)

// withTracing opens a server span per request, continuing any trace the
// caller propagated, and records the final status code.
func (h *Handler) withTracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.tracer == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx, span := h.tracer.StartServerSpan(r.Context(), propagation.HeaderCarrier(r.Header), r.Method, r.URL.Path)
		defer span.End()

		tw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(tw, r.WithContext(ctx))

		// the matched pattern is only known once routing is done
		if rctx := chi.RouteContext(ctx); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				span.SetName(r.Method + " " + pattern)
			}
		}

		status := tw.status
		if status == 0 {
			status = http.StatusOK
		}
		tracing.SetStatusCode(span, status)
	})
}
