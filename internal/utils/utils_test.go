package utils

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()

	n, err := WriteJSON(w, map[string]string{"key": "value"}, http.StatusCreated)
	require.NoError(t, err)

	assert.Positive(t, n)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"key":"value"}`, w.Body.String())
}

func TestWriteJSON_Unencodable(t *testing.T) {
	w := httptest.NewRecorder()

	_, err := WriteJSON(w, math.Inf(1), http.StatusOK)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestErrorBody_OmitsEmptyTraceID(t *testing.T) {
	b, err := json.Marshal(ErrorBody{Error: "boom"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"boom"}`, string(b))
}

func TestTraceIDContext(t *testing.T) {
	_, ok := GetTraceIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = GetTraceIDFromContext(WithTraceID(context.Background(), ""))
	assert.False(t, ok)

	id, ok := GetTraceIDFromContext(WithTraceID(context.Background(), "abc"))
	assert.True(t, ok)
	assert.Equal(t, "abc", id)
}

func TestNewHTTPClient_Independent(t *testing.T) {
	a, b := NewHTTPClient(), NewHTTPClient()
	require.NotNil(t, a.Client)
	assert.NotSame(t, a.Client, b.Client)
	assert.Equal(t, userAgent, a.Header.Get("User-Agent"))
}

func TestNewID(t *testing.T) {
	id := NewID()
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.NotEqual(t, id, NewID())
}
