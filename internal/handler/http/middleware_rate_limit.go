// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/planner-sync/internal/limiter"
	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/internal/utils"
	"github.com/MKhiriev/planner-sync/models"
)

// withRateLimit counts every request against a fixed window keyed by the
// raw x-secret-key header, or by the client IP when the header is absent.
// It runs before authentication, so unauthenticated callers are limited too.
func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get(secretKeyHeader)
		if key == "" {
			key = "ip:" + utils.ClientIP(r)
		}

		allowed, retryIn := h.limiter.Allow(key)
		if !allowed {
			retryAfter := limiter.RetryAfterSeconds(retryIn)
			logger.FromRequest(r).Warn().
				Int("retry_after", retryAfter).
				Str("func", "*Handler.withRateLimit").
				Msg("rate limit exceeded")

			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			utils.WriteJSON(w, models.ErrorResponse{Error: "Too many requests", RetryAfter: retryAfter}, http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
