package health

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bybit_bot/internal/modules/config"
	"bybit_bot/internal/modules/health/service"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedCounter int

func (c fixedCounter) Active() int { return int(c) }

func get(t *testing.T, mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestNewConfig(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, ":8080", NewConfig(cfg).Addr)

	cfg.Service.Host = "127.0.0.1"
	cfg.Service.AdminPort = 9100
	assert.Equal(t, "127.0.0.1:9100", NewConfig(cfg).Addr)
}

func TestLivez(t *testing.T) {
	rec := get(t, NewMux(service.NewState(), fixedCounter(0)), "/livez")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestReadyz(t *testing.T) {
	state := service.NewState()
	mux := NewMux(state, fixedCounter(0))

	assert.Equal(t, http.StatusServiceUnavailable, get(t, mux, "/readyz").Code)

	state.SetReady(true)
	assert.Equal(t, http.StatusOK, get(t, mux, "/readyz").Code)
}

func TestHealthz(t *testing.T) {
	state := service.NewState()
	state.SetReady(true)

	rec := get(t, NewMux(state, fixedCounter(3)), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Ready          bool  `json:"ready"`
		UptimeSec      int64 `json:"uptimeSec"`
		ActiveSessions int   `json:"activeSessions"`
	}
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Ready)
	assert.Equal(t, 3, body.ActiveSessions)
	assert.GreaterOrEqual(t, body.UptimeSec, int64(0))
}

func TestMetrics(t *testing.T) {
	rec := get(t, NewMux(service.NewState(), fixedCounter(0)), "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
