package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dbPingerMock struct {
	err error
}

func (m *dbPingerMock) Ping(_ context.Context) error {
	return m.err
}

type glossaryStateMock struct {
	ready    bool
	loadedAt time.Time
}

func (m glossaryStateMock) Ready() bool         { return m.ready }
func (m glossaryStateMock) LoadedAt() time.Time { return m.loadedAt }

var loadedGlossary = glossaryStateMock{ready: true, loadedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) HealthResponse {
	t.Helper()
	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestLive_Always200(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(glossaryStateMock{}, &dbPingerMock{err: errors.New("down")}, "test-version")

	rec := httptest.NewRecorder()
	h.Live(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeHealth(t, rec)
	assert.Equal(t, "ok", resp.Status)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestReady_GlossaryLoaded(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(loadedGlossary, nil, "test-version")

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeHealth(t, rec)
	assert.Equal(t, "ok", resp.Status)
	require.Contains(t, resp.Components, "glossary")
	require.NotNil(t, resp.Components["glossary"].LoadedAt)
	assert.True(t, resp.Components["glossary"].LoadedAt.Equal(loadedGlossary.loadedAt))
	assert.NotContains(t, resp.Components, "database")
}

func TestReady_FallbackIsDegradedNotDown(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(glossaryStateMock{}, nil, "test-version")

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeHealth(t, rec)
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "fallback", resp.Components["glossary"].Status)
}

func TestReady_DBDown(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(loadedGlossary, &dbPingerMock{err: errors.New("connection refused")}, "test-version")

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	resp := decodeHealth(t, rec)
	assert.Equal(t, "down", resp.Status)
	assert.Equal(t, "down", resp.Components["database"].Status)
}

func TestHealth_AllOK(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(loadedGlossary, &dbPingerMock{}, "v1.0.0")

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeHealth(t, rec)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "v1.0.0", resp.Version)

	db, ok := resp.Components["database"]
	require.True(t, ok, "expected database component")
	assert.Equal(t, "ok", db.Status)
	assert.NotEmpty(t, db.Latency)
}

func TestHealth_DBDownOverridesDegraded(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(glossaryStateMock{}, &dbPingerMock{err: errors.New("connection refused")}, "v1.0.0")

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	resp := decodeHealth(t, rec)
	assert.Equal(t, "down", resp.Status)
	assert.Equal(t, "fallback", resp.Components["glossary"].Status)
	assert.Equal(t, "down", resp.Components["database"].Status)
}
