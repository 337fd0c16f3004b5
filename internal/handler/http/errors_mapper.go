package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/internal/service"
	"github.com/MKhiriev/planner-sync/internal/store"
	"github.com/MKhiriev/planner-sync/internal/utils"
)

// internalServerError is the only message a 5xx answer ever carries.
const internalServerError = "Internal server error"

type errorStatus struct {
	status  int
	message string
}

var errorStatusMap = map[error]errorStatus{
	errInvalidSecretKey: {http.StatusUnauthorized, "Invalid or missing secret key"},
	errTooManyRequests:  {http.StatusTooManyRequests, "Too many requests"},
	errInvalidJSON:      {http.StatusBadRequest, "Invalid JSON"},
	errInvalidGzip:      {http.StatusBadRequest, "Invalid gzip data"},
	errBodyTooLarge:     {http.StatusRequestEntityTooLarge, "Request body too large"},
	errRouteNotFound:    {http.StatusNotFound, "Not found"},

	service.ErrNoDataProvided:      {http.StatusBadRequest, "No data provided"},
	service.ErrInvalidDataProvided: {http.StatusBadRequest, "Invalid data provided"},

	store.ErrUnsupportedBackend:   {http.StatusInternalServerError, internalServerError},
	store.ErrBuildingSQLQuery:     {http.StatusInternalServerError, internalServerError},
	store.ErrExecutingQuery:       {http.StatusInternalServerError, internalServerError},
	store.ErrExecutingStatement:   {http.StatusInternalServerError, internalServerError},
	store.ErrScanningRow:          {http.StatusInternalServerError, internalServerError},
	store.ErrBeginningTransaction: {http.StatusInternalServerError, internalServerError},
	store.ErrCommitingTransaction: {http.StatusInternalServerError, internalServerError},
}

func statusFromError(err error) (int, string) {
	for target, es := range errorStatusMap {
		if errors.Is(err, target) {
			return es.status, es.message
		}
	}
	return http.StatusInternalServerError, internalServerError
}

// writeError answers with the {"error"} body matching err and logs 5xx
// causes, which are never sent to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFromError(err)
	if status >= http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Str("func", "writeError").Msg("request failed")
	}
	utils.WriteError(w, message, status)
}
