package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/MKhiriev/planner-sync/internal/logger"
	"github.com/MKhiriev/planner-sync/internal/utils"
	"github.com/MKhiriev/planner-sync/models"
)

func (h *Handler) getData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	secretKey, ok := utils.GetSecretKeyFromContext(ctx)
	if !ok {
		writeError(w, r, errInvalidSecretKey)
		return
	}

	resp, err := h.services.SyncService.GetData(ctx, secretKey)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getData").Msg("error getting sync data")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) push(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	secretKey, ok := utils.GetSecretKeyFromContext(ctx)
	if !ok {
		writeError(w, r, errInvalidSecretKey)
		return
	}

	var pushRequest models.PushRequest
	if err := decodeJSON(r, &pushRequest); err != nil {
		log.Err(err).Str("func", "*Handler.push").Msg("invalid push body")
		writeError(w, r, err)
		return
	}

	resp, err := h.services.SyncService.Push(ctx, secretKey, pushRequest)
	if err != nil {
		log.Err(err).Str("func", "*Handler.push").Msg("error pushing sync data")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) pull(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	secretKey, ok := utils.GetSecretKeyFromContext(ctx)
	if !ok {
		writeError(w, r, errInvalidSecretKey)
		return
	}

	var pullRequest models.PullRequest
	if err := decodeJSON(r, &pullRequest); err != nil {
		log.Err(err).Str("func", "*Handler.pull").Msg("invalid pull body")
		writeError(w, r, err)
		return
	}

	resp, err := h.services.SyncService.Pull(ctx, secretKey, pullRequest)
	if err != nil {
		log.Err(err).Str("func", "*Handler.pull").Msg("error pulling sync data")
		writeError(w, r, err)
		return
	}

	// an absent document is answered with the same shape as GET /sync/data
	if !resp.Exists {
		utils.WriteJSON(w, models.DataResponse{Exists: false, Message: resp.Message}, http.StatusOK)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) deleteData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	secretKey, ok := utils.GetSecretKeyFromContext(ctx)
	if !ok {
		writeError(w, r, errInvalidSecretKey)
		return
	}

	resp, err := h.services.SyncService.Delete(ctx, secretKey)
	if err != nil {
		log.Err(err).Str("func", "*Handler.deleteData").Msg("error deleting sync data")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

// decodeJSON decodes the request body into v. An empty body leaves v at its
// zero value.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return errBodyTooLarge
	}
	return errors.Join(errInvalidJSON, err)
}
