package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_CheckReportsLiveUsage(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	h := NewHealthHandler(func() (int, int) { return 2, 3 })
	require.NoError(t, h.Check(c))

	var res HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "ok", res.Status)
	require.NotNil(t, res.Live)
	assert.Equal(t, 2, res.Live.Rooms)
	assert.Equal(t, 3, res.Live.Clients)
}

func TestHealthHandler_Ready(t *testing.T) {
	healthy := HealthCheckFunc(func(context.Context) error { return nil })
	broken := HealthCheckFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name     string
		checkers map[string]HealthChecker
		status   int
	}{
		{name: "no dependencies", checkers: nil, status: http.StatusOK},
		{name: "all healthy", checkers: map[string]HealthChecker{"postgres": healthy, "redis": healthy}, status: http.StatusOK},
		{name: "one unhealthy", checkers: map[string]HealthChecker{"postgres": healthy, "redis": broken}, status: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/ready", nil), rec)

			h := NewHealthHandler(nil)
			for name, checker := range tt.checkers {
				h.RegisterChecker(name, checker)
			}
			require.NoError(t, h.Ready(c))

			assert.Equal(t, tt.status, rec.Code)
			var res ReadyResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
			if tt.status != http.StatusOK {
				assert.Equal(t, "unhealthy", res.Services["redis"].Status)
				assert.Equal(t, "connection refused", res.Services["redis"].Message)
			}
		})
	}
}

func TestHealthHandler_CheckReportsLastBackgroundCheck(t *testing.T) {
	checkedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		lastCheck LastCheck
		status    string
		deps      *Dependencies
	}{
		{
			name:      "not yet run",
			lastCheck: func() (map[string]string, time.Time) { return map[string]string{}, time.Time{} },
			status:    "ok",
		},
		{
			name:      "all healthy",
			lastCheck: func() (map[string]string, time.Time) { return map[string]string{}, checkedAt },
			status:    "ok",
			deps:      &Dependencies{CheckedAt: "2024-05-01T12:00:00Z"},
		},
		{
			name: "redis failing",
			lastCheck: func() (map[string]string, time.Time) {
				return map[string]string{"redis": "connection refused"}, checkedAt
			},
			status: "degraded",
			deps:   &Dependencies{CheckedAt: "2024-05-01T12:00:00Z", Failures: map[string]string{"redis": "connection refused"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

			h := NewHealthHandler(nil)
			h.SetLastCheck(tt.lastCheck)
			require.NoError(t, h.Check(c))

			assert.Equal(t, http.StatusOK, rec.Code)
			var res HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.deps, res.Dependencies)
		})
	}
}
