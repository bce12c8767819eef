package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_WritesRoleAndFunc(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "queue", "info")

	l.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "queue", entry["role"])
	assert.Equal(t, "hello", entry["message"])
	assert.Contains(t, entry["func"], "TestNewLogger_WritesRoleAndFunc")
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "test", "warn")
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	l.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("shown")
	assert.NotZero(t, buf.Len())
}

func TestNewLogger_UnknownLevelFallsBackToDebug(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "test", "loud")

	l.Debug().Msg("visible")
	assert.NotZero(t, buf.Len())
}

func TestNop_DiscardsOutput(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Error().Msg("nothing") })
}

func TestWithStr_AddsField(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "test", "debug").WithStr("path", "a/b")

	l.Info().Msg("x")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "a/b", entry["path"])
}

func TestFromContext_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "ctx", "debug")
	ctx := l.WithContext(context.Background())

	FromContext(ctx).Info().Msg("from ctx")
	assert.Contains(t, buf.String(), `"role":"ctx"`)

	buf.Reset()
	r := httptest.NewRequest("GET", "/", nil).WithContext(ctx)
	FromRequest(r).Info().Msg("from request")
	assert.Contains(t, buf.String(), "from request")
}
