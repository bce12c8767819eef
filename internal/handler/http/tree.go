package http

import (
	"encoding/json"
	"fmt"
	"maps"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-live-sync/internal/service"
	"github.com/MKhiriev/go-live-sync/internal/utils"
	"github.com/MKhiriev/go-live-sync/models"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 8 << 20

type syncResponse struct {
	Report service.Report `json:"report"`
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

func (h *Handler) getTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.services.SyncService.Tree(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, tree, http.StatusOK)
}

func (h *Handler) getTreePath(w http.ResponseWriter, r *http.Request) {
	tree, err := h.services.SyncService.Tree(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	value, err := tree.Get(chi.URLParam(r, "*"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, value, http.StatusOK)
}

func (h *Handler) replaceTree(w http.ResponseWriter, r *http.Request) {
	var body any
	if err := decodeBody(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	replacement, ok := models.AsTree(body)
	if !ok {
		h.writeError(w, r, ErrTreeMustBeObject)
		return
	}

	h.mutate(w, r, func(tree models.Tree) error {
		clear(tree)
		maps.Copy(tree, replacement)
		return nil
	})
}

func (h *Handler) setTreePath(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")

	var value any
	if err := decodeBody(r, &value); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.mutate(w, r, func(tree models.Tree) error {
		return tree.Set(path, value)
	})
}

func (h *Handler) deleteTreePath(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")

	h.mutate(w, r, func(tree models.Tree) error {
		tree.Delete(path)
		return nil
	})
}

func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, fn func(models.Tree) error) {
	h.respond(w, r, h.services.SyncService.Mutate(r.Context(), fn))
}

// respond waits for c and writes its report.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, c *service.Completion) {
	report, err := h.await(r, c)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, syncResponse{Report: report}, http.StatusOK)
}
