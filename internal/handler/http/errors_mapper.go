package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-live-sync/internal/logger"
	"github.com/MKhiriev/go-live-sync/internal/service"
	"github.com/MKhiriev/go-live-sync/internal/store"
	"github.com/MKhiriev/go-live-sync/internal/utils"
	"github.com/MKhiriev/go-live-sync/internal/validators"
	"github.com/MKhiriev/go-live-sync/internal/workers"
	"github.com/MKhiriev/go-live-sync/models"
)

// errorStatuses is matched top down; a joined error takes the status of
// its earliest listed member.
var errorStatuses = []struct {
	err    error
	status int
}{
	{store.ErrStoreUnavailable, http.StatusServiceUnavailable},
	{workers.ErrQueueStopped, http.StatusServiceUnavailable},
	{ErrRequestTimedOut, http.StatusGatewayTimeout},
	{workers.ErrJobTimedOut, http.StatusGatewayTimeout},

	{validators.ErrEmptyDeviceToken, http.StatusBadRequest},
	{validators.ErrDuplicateDevice, http.StatusBadRequest},
	{validators.ErrInvalidTag, http.StatusBadRequest},
	{validators.ErrInvalidReferenceID, http.StatusBadRequest},
	{validators.ErrInvalidNotification, http.StatusBadRequest},
	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrTreeMustBeObject, http.StatusBadRequest},
	{service.ErrNilMutation, http.StatusBadRequest},
	{service.ErrConfigurationInvalid, http.StatusUnprocessableEntity},

	{models.ErrPathNotFound, http.StatusNotFound},
	{store.ErrTreeNotFound, http.StatusNotFound},

	{service.ErrDeliveryFailure, http.StatusBadGateway},

	{service.ErrStoreWriteFailure, http.StatusInternalServerError},
	{service.ErrStoreReadFailure, http.StatusInternalServerError},
	{store.ErrTreeCorrupted, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Int("status", status).Msg("request failed")
	}

	traceID, _ := utils.GetTraceIDFromContext(r.Context())
	utils.WriteJSON(w, utils.ErrorBody{Error: err.Error(), TraceID: traceID}, status)
}

// await waits for c within the request timeout.
func (h *Handler) await(r *http.Request, c *service.Completion) (service.Report, error) {
	ctx := r.Context()
	if h.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.requestTimeout)
		defer cancel()
	}

	report, err := c.Wait(ctx)
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() != nil {
		return report, ErrRequestTimedOut
	}
	return report, err
}
