package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/MKhiriev/go-live-sync/internal/utils"
	"github.com/MKhiriev/go-live-sync/models"
)

type notifyRequest struct {
	Devices []models.Device `json:"devices"`
}

type catchUpRequest struct {
	Before models.Tree   `json:"before"`
	Device models.Device `json:"device"`
}

type statusResponse struct {
	Configured    bool `json:"configured"`
	Synchronizing bool `json:"synchronizing"`
}

func (h *Handler) syncStatus(w http.ResponseWriter, r *http.Request) {
	svc := h.services.SyncService
	utils.WriteJSON(w, statusResponse{
		Configured:    svc.IsConfigured(),
		Synchronizing: svc.IsSynchronizing(),
	}, http.StatusOK)
}

func (h *Handler) configure(w http.ResponseWriter, r *http.Request) {
	var cfg models.PushConfig
	if err := decodeBody(r, &cfg); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, h.services.SyncService.Configure(r.Context(), cfg))
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.services.SyncService.Load(r.Context()))
}

func (h *Handler) notify(w http.ResponseWriter, r *http.Request) {
	var req notifyRequest
	// the body is optional
	if err := decodeBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, r, err)
		return
	}

	h.respond(w, r, h.services.SyncService.Notify(r.Context(), req.Devices...))
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.services.SyncService.Reset(r.Context()))
}

func (h *Handler) catchUp(w http.ResponseWriter, r *http.Request) {
	var req catchUpRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Before == nil {
		req.Before = models.NewTree()
	}

	h.respond(w, r, h.services.SyncService.CatchUp(r.Context(), req.Before, req.Device))
}
