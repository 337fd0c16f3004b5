// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod returns the router's MethodNotAllowed handler.
//
// Chi answers 405 when a path exists but the method is not handled. The sync
// API hides route existence instead: such requests get the same 404 JSON
// body as unknown routes. The allowed methods of the path, found by walking
// the full (nested) route tree, are only logged.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var allowed []string
		_ = chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			if strings.TrimSuffix(route, "/") == strings.TrimSuffix(r.URL.Path, "/") {
				allowed = append(allowed, method)
			}
			return nil
		})

		logger.FromRequest(r).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Strs("allowed", allowed).
			Msg("method not allowed")

		writeError(w, r, errRouteNotFound)
	}
}
