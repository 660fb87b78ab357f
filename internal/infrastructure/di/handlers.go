package di

import (
	"github.com/demianvselko/empatspeech-demo-sub000/internal/infrastructure/cache"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/interface/gateway"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/interface/handler"
)

// Handlers はアプリケーションのハンドラーを保持します
type Handlers struct {
	Health   *handler.HealthHandler
	Session  *handler.SessionHandler
	Caseload *handler.CaseloadHandler
	Live     *gateway.WSHandler
	Hub      *gateway.Hub
}

// NewHandlers はContainerから全てのハンドラーを初期化します
func NewHandlers(c *Container) *Handlers {
	hub := gateway.NewHub()

	// Health Handler
	healthHandler := handler.NewHealthHandler(func() (int, int) {
		stats := hub.Stats()
		return stats.Rooms, stats.Clients
	})
	if c.PgClient != nil {
		healthHandler.RegisterChecker("postgres", c.PgClient)
	}
	if c.RedisClient != nil {
		healthHandler.RegisterChecker("redis", c.RedisClient)
	}
	if c.HealthStatus != nil {
		healthHandler.SetLastCheck(c.HealthStatus.Snapshot)
	}

	sessionHandler := handler.NewSessionHandler(
		c.Session.CreateSession,
		c.Session.AppendTrial,
		c.Session.FinishSession,
		c.Session.PatchNotes,
		c.Session.GetSession,
		c.Session.GetSessionSummary,
	)

	caseloadHandler := handler.NewCaseloadHandler(
		c.Caseload.GetStudentProfile,
		c.Caseload.ListCaseload,
	)

	return &Handlers{
		Health:   healthHandler,
		Session:  sessionHandler,
		Caseload: caseloadHandler,
		Live:     newLiveHandler(c, hub),
		Hub:      hub,
	}
}

func newLiveHandler(c *Container, hub *gateway.Hub) *gateway.WSHandler {
	deps := gateway.CoordinatorDeps{
		Hub:         hub,
		LiveState:   c.LiveStateRepo,
		GetSession:  c.Session.GetSession,
		AppendTrial: c.Session.AppendTrial,
		PatchNotes:  c.Session.PatchNotes,
		Finish:      c.Session.FinishSession,
		Difficulty:  c.config.Live.Difficulty,
	}
	if c.RateLimiter != nil && c.config.Security.RateLimitEnabled {
		deps.Limiter = gateway.NewRedisMoveLimiter(c.RateLimiter, cache.RateLimitConfig{
			Type:     cache.RateLimitLiveMove.Type,
			Requests: c.config.Live.MoveRateLimit,
			Window:   c.config.Live.MoveRateWindow,
		})
	}

	// nilポインタをインターフェースに入れると非nilになるため分岐します
	var verifier gateway.TokenVerifier
	if c.JWTService != nil {
		verifier = c.JWTService
	}

	return gateway.NewWSHandler(gateway.NewCoordinator(deps), verifier, gateway.WSHandlerConfig{
		AllowedOrigins: c.config.Security.CORSOrigins,
		SendBuffer:     c.config.Live.SendBuffer,
	})
}
