package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/entity"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/service"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/infrastructure/di"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/infrastructure/memory"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/interface/router"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/interface/server"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/config"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/jwt"
)

// FixedNowMs is the clock value used by test servers (2024-05-01T12:00:00.000Z)
const FixedNowMs int64 = 1_714_564_800_000

// TestServerOptions configures NewTestServer
type TestServerOptions struct {
	// Auth enables JWT authentication on the HTTP API and the WebSocket gateway
	Auth bool
	// Publisher overrides the session event publisher
	Publisher service.SessionEventPublisher
}

// TestServer holds all test server dependencies
type TestServer struct {
	Echo       *echo.Echo
	Container  *di.Container
	Handlers   *di.Handlers
	Config     *config.Config
	JWTService *jwt.JWTService
	Pool       *pgxpool.Pool
	Redis      *redis.Client
}

// NewTestServer creates a fully configured test server
// With INTEGRATION_TEST=true it runs against PostgreSQL and Redis, otherwise against in-memory stores
func NewTestServer(t *testing.T, opts TestServerOptions) *TestServer {
	t.Helper()

	testConfig := DefaultTestConfig()

	cfg := config.Default()
	cfg.Security.CORSOrigins = nil
	cfg.Security.RateLimitEnabled = false
	if opts.Auth {
		cfg.JWT.SecretKey = testConfig.JWTSecretKey
	}

	containerOpts := di.Options{
		Clock:     service.FixedClock(FixedNowMs),
		Publisher: opts.Publisher,
	}

	ts := &TestServer{Config: cfg}
	if IntegrationEnabled() {
		ts.Pool, ts.Redis = SetupTestEnvironment(t)
		containerOpts.PostgresPool = ts.Pool
		containerOpts.RedisClient = ts.Redis
		cfg.Live.StateBackend = config.LiveStateRedis
	} else {
		containerOpts.SessionRepo = memory.NewSessionRepository()
		containerOpts.UserRepo = memory.NewUserRepository()
	}

	container, err := di.NewContainerWithOptions(context.Background(), cfg, containerOpts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Close() })

	handlers := di.NewHandlers(container)
	middlewares := di.NewMiddlewares(container)

	serverConfig := server.DefaultConfig()
	srv := server.NewServer(serverConfig)
	router.NewRouter(srv.Echo(), handlers, middlewares).Setup()

	ts.Echo = srv.Echo()
	ts.Container = container
	ts.Handlers = handlers
	ts.JWTService = container.JWTService
	return ts
}

// Cleanup cleans up test data
func (ts *TestServer) Cleanup(t *testing.T) {
	t.Helper()
	if ts.Pool != nil {
		TruncateTables(t, ts.Pool, "session_trials", "sessions", "users")
	}
	if ts.Redis != nil {
		FlushRedis(t, ts.Redis)
	}
}

// AccessToken issues an access token for userID
func (ts *TestServer) AccessToken(t *testing.T, userID, role string) string {
	t.Helper()
	require.NotNil(t, ts.JWTService, "test server was created without auth")
	token, err := ts.JWTService.GenerateAccessToken(userID, role)
	require.NoError(t, err)
	return token
}

// SeedStudent stores a student assigned to slpID
func (ts *TestServer) SeedStudent(t *testing.T, id, slpID, firstName, lastName string) *entity.User {
	t.Helper()
	user, err := entity.NewStudent(entity.UserProps{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
		Email:     firstName + "@example.com",
		IsActive:  true,
		CreatedAt: time.UnixMilli(FixedNowMs).UTC(),
		SlpID:     &slpID,
	})
	require.NoError(t, err)
	require.NoError(t, ts.Container.UserRepo.Save(context.Background(), user))
	return user
}

// SeedTeacher stores an SLP user
func (ts *TestServer) SeedTeacher(t *testing.T, id, firstName, lastName string) *entity.User {
	t.Helper()
	user, err := entity.NewTeacher(entity.UserProps{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
		Email:     firstName + "@example.com",
		IsActive:  true,
		CreatedAt: time.UnixMilli(FixedNowMs).UTC(),
	})
	require.NoError(t, err)
	require.NoError(t, ts.Container.UserRepo.Save(context.Background(), user))
	return user
}
