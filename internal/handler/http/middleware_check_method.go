// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-live-sync/internal/utils"
)

// CheckHTTPMethod returns the router's MethodNotAllowed handler. It answers
// 405 with an Allow header listing the methods the matched route does serve
// and a JSON error body.
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var allowed []string
		for _, method := range []string{
			http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		} {
			if router.Match(chi.NewRouteContext(), method, r.URL.Path) {
				allowed = append(allowed, method)
			}
		}
		sort.Strings(allowed)

		if len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
		}
		traceID, _ := utils.GetTraceIDFromContext(r.Context())
		utils.WriteJSON(w, utils.ErrorBody{Error: "method not allowed", TraceID: traceID}, http.StatusMethodNotAllowed)
	}
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	traceID, _ := utils.GetTraceIDFromContext(r.Context())
	utils.WriteJSON(w, utils.ErrorBody{Error: "not found", TraceID: traceID}, http.StatusNotFound)
}
