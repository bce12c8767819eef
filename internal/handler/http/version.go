package http

import (
	"net/http"

	"github.com/MKhiriev/go-live-sync/internal/utils"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	info := h.services.AppInfoService.BuildInfo(r.Context())
	utils.WriteJSON(w, info.AsMap(), http.StatusOK)
}
