package http

import (
	"net/http"

	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/internal/utils"
)

// secretKeyHeader is the only credential of the sync API.
const secretKeyHeader = "x-secret-key"

// secretKeyAuth rejects a request with 401 unless x-secret-key is present
// and at least minSecretKeyLength long. On success the key is stored in the
// request context under [utils.SecretKeyCtxKey]; it is used as the storage
// partition key, never hashed or looked up.
func (h *Handler) secretKeyAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secretKey := r.Header.Get(secretKeyHeader)
		if secretKey == "" || len(secretKey) < h.minSecretKeyLength {
			logger.FromRequest(r).Warn().
				Str("key", logger.MaskSecret(secretKey)).
				Str("func", "*Handler.secretKeyAuth").
				Msg("rejected secret key")
			writeError(w, r, errInvalidSecretKey)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithSecretKey(r.Context(), secretKey)))
	})
}
