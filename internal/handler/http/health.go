package http

import (
	"net/http"

	"github.com/MKhiriev/planner-sync/internal/utils"
)

// health always answers 200; a degraded store is reported in the body.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.HealthService.Health(r.Context()), http.StatusOK)
}

func (h *Handler) version(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.AppInfoService.GetAppInfo(r.Context()), http.StatusOK)
}
