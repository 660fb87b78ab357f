package di

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

	"github.com/demianvselko/empatspeech-demo-sub000/internal/infrastructure/memory"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/infrastructure/messaging"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/infrastructure/worker"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/interface/handler"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/config"
)

func TestNewContainer_InMemoryDefaults(t *testing.T) {
	cfg := config.Default()

	c, err := NewContainer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	assert.Nil(t, c.PgClient)
	assert.Nil(t, c.RedisClient)
	assert.Nil(t, c.JWTService)
	assert.Nil(t, c.RateLimiter)
	assert.IsType(t, &memory.SessionRepository{}, c.SessionRepo)
	assert.IsType(t, &memory.UserRepository{}, c.UserRepo)
	assert.IsType(t, &memory.LiveState{}, c.LiveStateRepo)
	assert.IsType(t, messaging.NoopPublisher{}, c.Publisher)
	require.NotNil(t, c.Session)
	require.NotNil(t, c.Caseload)

	handlers := NewHandlers(c)
	assert.NotNil(t, handlers.Live)
	assert.NotNil(t, handlers.Hub)

	middlewares := NewMiddlewares(c)
	assert.False(t, middlewares.JWTAuth.Enabled())
}

func TestNewContainer_AuthEnabledWithSecret(t *testing.T) {
	cfg := config.Default()
	cfg.JWT.SecretKey = "a-secret-key-that-is-long-enough-for-hs256"

	c, err := NewContainer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	require.NotNil(t, c.JWTService)
	assert.True(t, NewMiddlewares(c).JWTAuth.Enabled())
}

func TestNewContainer_RejectsShortSecret(t *testing.T) {
	cfg := config.Default()
	cfg.JWT.SecretKey = "short"

	_, err := NewContainer(context.Background(), cfg)
	require.Error(t, err)
}

func TestNewWorkerManager_RegistersRoomStatsOnly(t *testing.T) {
	c, err := NewContainer(context.Background(), config.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	handlers := NewHandlers(c)
	manager := NewWorkerManager(c, handlers.Hub)

	assert.Equal(t, []string{"room_stats"}, manager.Jobs())
}

func TestNewHandlers_HealthReportsBackgroundChecks(t *testing.T) {
	c, err := NewContainer(context.Background(), config.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	require.NotNil(t, c.HealthStatus)

	handlers := NewHandlers(c)
	job := worker.NewHealthCheckJob([]worker.HealthCheck{{
		Name:  "redis",
		Check: func(context.Context) error { return errors.New("connection refused") },
	}}, c.HealthStatus, time.Minute)
	require.Error(t, job.Fn(context.Background()))

	e := echo.New()
	rec := httptest.NewRecorder()
	require.NoError(t, handlers.Health.Check(e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)))

	var res handler.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "degraded", res.Status)
	require.NotNil(t, res.Dependencies)
	assert.Equal(t, "connection refused", res.Dependencies.Failures["redis"])
}
