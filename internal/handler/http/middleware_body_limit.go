package http

import (
	"net/http"
)

// withBodyLimit rejects bodies larger than maxBodyBytes. A declared
// Content-Length is checked up front; chunked bodies are capped with
// http.MaxBytesReader and fail while being decoded.
func (h *Handler) withBodyLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.maxBodyBytes <= 0 || r.Body == nil {
			next.ServeHTTP(w, r)
			return
		}

		if r.ContentLength > h.maxBodyBytes {
			writeError(w, r, errBodyTooLarge)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
		next.ServeHTTP(w, r)
	})
}
