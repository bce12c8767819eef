// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-live-sync/internal/config"
	"github.com/MKhiriev/go-live-sync/internal/logger"
	"github.com/MKhiriev/go-live-sync/internal/service"
	"github.com/MKhiriev/go-live-sync/internal/validators"
	"github.com/MKhiriev/go-live-sync/internal/workers"
	"github.com/MKhiriev/go-live-sync/models"
)

type stubSync struct {
	tree    models.Tree
	treeErr error

	report service.Report
	err    error

	configured models.PushConfig
	notified   []models.Device
	before     models.Tree
	device     models.Device
	calls      []string

	isConfigured, isSynchronizing bool
}

func (s *stubSync) done(call string) *service.Completion {
	s.calls = append(s.calls, call)
	return service.ResolvedCompletion(s.report, s.err)
}

func (s *stubSync) Load(context.Context) *service.Completion  { return s.done("load") }
func (s *stubSync) Save(context.Context) *service.Completion  { return s.done("save") }
func (s *stubSync) Reset(context.Context) *service.Completion { return s.done("reset") }

func (s *stubSync) Mutate(_ context.Context, fn func(models.Tree) error) *service.Completion {
	if s.tree == nil {
		s.tree = models.NewTree()
	}
	if err := fn(s.tree); err != nil {
		s.calls = append(s.calls, "mutate")
		return service.ResolvedCompletion(service.Report{}, err)
	}
	return s.done("mutate")
}

func (s *stubSync) Configure(_ context.Context, cfg models.PushConfig) *service.Completion {
	s.configured = cfg
	return s.done("configure")
}

func (s *stubSync) Notify(_ context.Context, devices ...models.Device) *service.Completion {
	s.notified = devices
	return s.done("notify")
}

func (s *stubSync) CatchUp(_ context.Context, before models.Tree, device models.Device) *service.Completion {
	s.before, s.device = before, device
	return s.done("catchup")
}

func (s *stubSync) Tree(context.Context) (models.Tree, error) {
	if s.treeErr != nil {
		return nil, s.treeErr
	}
	return s.tree.Clone()
}

func (s *stubSync) IsSynchronizing() bool { return s.isSynchronizing }
func (s *stubSync) IsConfigured() bool    { return s.isConfigured }

type stubAppInfo struct{}

func (stubAppInfo) BuildInfo(context.Context) models.AppBuildInfo {
	return models.NewAppBuildInfo("1.2.3", "2026-10-01", "deadbeef")
}

func newRouter(svc service.SyncService) http.Handler {
	services := &service.Services{SyncService: svc, AppInfoService: stubAppInfo{}}
	return NewHandler(services, config.Server{RequestTimeout: time.Second}, logger.Nop()).Init()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestGetTree(t *testing.T) {
	svc := &stubSync{tree: models.Tree{"a": map[string]any{"b": "c"}}}
	router := newRouter(svc)

	rr := do(t, router, http.MethodGet, "/api/tree", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"a":{"b":"c"}}`, rr.Body.String())

	rr = do(t, router, http.MethodGet, "/api/tree/a/b", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `"c"`, rr.Body.String())

	rr = do(t, router, http.MethodGet, "/api/tree/missing", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(traceIDHeader))
}

func TestGetTree_Error(t *testing.T) {
	rr := do(t, newRouter(&stubSync{treeErr: workers.ErrQueueStopped}), http.MethodGet, "/api/tree", "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, rr.Header().Get(traceIDHeader), body["trace_id"])
}

func TestReplaceTree(t *testing.T) {
	svc := &stubSync{tree: models.Tree{"old": true}, report: service.Report{CycleID: "c1", Changed: true, Envelopes: 1, Delivered: 1}}

	rr := do(t, newRouter(svc), http.MethodPut, "/api/tree", `{"new":{"x":1}}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"report":{"cycle_id":"c1","changed":true,"envelopes":1,"delivered":1,"failed":0,"skipped":0}}`, rr.Body.String())

	assert.NotContains(t, svc.tree, "old")
	assert.Contains(t, svc.tree, "new")
}

func TestReplaceTree_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `{nope`},
		{name: "array", body: `[1,2]`},
		{name: "scalar", body: `42`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubSync{}
			rr := do(t, newRouter(svc), http.MethodPut, "/api/tree", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Empty(t, svc.calls)
		})
	}
}

func TestSetAndDeleteTreePath(t *testing.T) {
	svc := &stubSync{tree: models.Tree{}}
	router := newRouter(svc)

	rr := do(t, router, http.MethodPut, "/api/tree/users/u1/name", `"ann"`)
	require.Equal(t, http.StatusOK, rr.Code)

	v, err := svc.tree.Get("users/u1/name")
	require.NoError(t, err)
	assert.Equal(t, "ann", v)

	rr = do(t, router, http.MethodDelete, "/api/tree/users/u1", "")
	require.Equal(t, http.StatusOK, rr.Code)

	_, err = svc.tree.Get("users/u1")
	assert.ErrorIs(t, err, models.ErrPathNotFound)
	assert.Equal(t, []string{"mutate", "mutate"}, svc.calls)
}

func TestMutationErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "store write failure", err: service.ErrStoreWriteFailure, want: http.StatusInternalServerError},
		{name: "delivery failure", err: errors.Join(service.ErrDeliveryFailure), want: http.StatusBadGateway},
		{name: "queue stopped", err: workers.ErrQueueStopped, want: http.StatusServiceUnavailable},
		{name: "unknown", err: errors.New("strange"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, newRouter(&stubSync{err: tt.err}), http.MethodPut, "/api/tree/a", `1`)
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

func TestConfigure(t *testing.T) {
	svc := &stubSync{}
	body := `{"api_key":"k","reference_id":"r","tag":"chat","notification":{"title":"t"},
		"devices":[{"token":"a1","os":"android"},{"token":"i1","os":"iOS 17"}]}`

	rr := do(t, newRouter(svc), http.MethodPut, "/api/sync/config", body)
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, "k", svc.configured.APIKey)
	assert.Equal(t, "chat", svc.configured.Tag)
	require.Len(t, svc.configured.Devices, 2)
	assert.Equal(t, models.PlatformAndroid, svc.configured.Devices[0].Platform)
	assert.Equal(t, models.PlatformIOS, svc.configured.Devices[1].Platform)
}

func TestConfigure_Errors(t *testing.T) {
	rr := do(t, newRouter(&stubSync{err: validators.ErrEmptyDeviceToken}), http.MethodPut, "/api/sync/config", `{"devices":[{"token":" ","os":"ios"}]}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, newRouter(&stubSync{}), http.MethodPut, "/api/sync/config", `{"devices":[{"token":"t","os":7}]}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, newRouter(&stubSync{err: service.ErrConfigurationInvalid}), http.MethodPut, "/api/sync/config", `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestNotify(t *testing.T) {
	svc := &stubSync{}
	router := newRouter(svc)

	rr := do(t, router, http.MethodPost, "/api/sync/notify", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, svc.notified)

	rr = do(t, router, http.MethodPost, "/api/sync/notify", `{"devices":[{"token":"x","os":"ios"}]}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []models.Device{{Token: "x", Platform: models.PlatformIOS}}, svc.notified)

	rr = do(t, router, http.MethodPost, "/api/sync/notify", `{bad`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLoadAndReset(t *testing.T) {
	svc := &stubSync{}
	router := newRouter(svc)

	assert.Equal(t, http.StatusOK, do(t, router, http.MethodPost, "/api/sync/load", "").Code)
	assert.Equal(t, http.StatusOK, do(t, router, http.MethodPost, "/api/sync/reset", "").Code)
	assert.Equal(t, []string{"load", "reset"}, svc.calls)
}

func TestCatchUp(t *testing.T) {
	svc := &stubSync{}
	router := newRouter(svc)

	rr := do(t, router, http.MethodPost, "/api/sync/catchup", `{"before":{"a":1},"device":{"token":"t","os":"android"}}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, svc.before, "a")
	assert.Equal(t, "t", svc.device.Token)

	rr = do(t, router, http.MethodPost, "/api/sync/catchup", `{"device":{"token":"t"}}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.Tree{}, svc.before)

	rr = do(t, newRouter(&stubSync{err: validators.ErrEmptyDeviceToken}), http.MethodPost, "/api/sync/catchup", `{"before":{}}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSyncStatus(t *testing.T) {
	rr := do(t, newRouter(&stubSync{isConfigured: true}), http.MethodGet, "/api/sync/status", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"configured":true,"synchronizing":false}`, rr.Body.String())
}

func TestGetServerVersion(t *testing.T) {
	rr := do(t, newRouter(&stubSync{}), http.MethodGet, "/api/version", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"version":"1.2.3","date":"2026-10-01","commit":"deadbeef"}`, rr.Body.String())
}

func TestRoutes_UnknownAndWrongMethod(t *testing.T) {
	router := newRouter(&stubSync{})

	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/api/nothing", "").Code)

	rr := do(t, router, http.MethodDelete, "/api/sync/status", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "GET", rr.Header().Get("Allow"))
}

func TestRequestTimeout(t *testing.T) {
	// a queue that never starts leaves every job pending
	q := workers.NewQueue("idle", 0, logger.Nop())
	svc := service.NewSyncService(q, nil, "root", nil, logger.Nop())

	services := &service.Services{SyncService: svc, AppInfoService: stubAppInfo{}}
	router := NewHandler(services, config.Server{RequestTimeout: 20 * time.Millisecond}, logger.Nop()).Init()

	rr := do(t, router, http.MethodPost, "/api/sync/load", "")
	assert.Equal(t, http.StatusGatewayTimeout, rr.Code)
}
