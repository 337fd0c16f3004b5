package http

import "net/http"

// withCORS allows browser clients on any origin, which is how the planner
// web build reaches a self-hosted sync server. Preflight requests are
// answered directly.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Content-Encoding, "+secretKeyHeader+", "+traceIDHeader)
		h.Set("Access-Control-Expose-Headers", traceIDHeader+", Retry-After")

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
