package router

import (
	"github.com/labstack/echo/v4"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/infrastructure/di"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/interface/presenter"
)

// Router はルート定義を管理します
type Router struct {
	echo        *echo.Echo
	handlers    *di.Handlers
	middlewares *di.Middlewares
}

// NewRouter は新しいRouterを作成します
func NewRouter(e *echo.Echo, handlers *di.Handlers, middlewares *di.Middlewares) *Router {
	return &Router{
		echo:        e,
		handlers:    handlers,
		middlewares: middlewares,
	}
}

// Setup は全てのルートを設定します
func (r *Router) Setup() {
	r.setupHealthRoutes()
	r.setupLiveRoutes()
	r.setupAPIRoutes()
}

// setupHealthRoutes はヘルスチェックルートを設定します
func (r *Router) setupHealthRoutes() {
	if r.handlers.Health == nil {
		return
	}
	r.echo.GET("/health", r.handlers.Health.Check)
	r.echo.GET("/ready", r.handlers.Health.Ready)
}

// setupLiveRoutes はWebSocketルートを設定します
// トークン検証はハンドシェイク内で行います
func (r *Router) setupLiveRoutes() {
	if r.handlers.Live == nil {
		return
	}
	r.echo.GET("/ws", r.handlers.Live.Handle)
}

// setupAPIRoutes はAPIルートを設定します
func (r *Router) setupAPIRoutes() {
	api := r.echo.Group("/api/v1",
		r.middlewares.JWTAuth.Authenticate(),
		r.middlewares.RateLimit.API(),
	)

	api.GET("/", func(c echo.Context) error {
		return presenter.OK(c, map[string]string{
			"message": "EmpatSpeech API v1",
		})
	})

	r.setupSessionRoutes(api)
	r.setupCaseloadRoutes(api)
}

// setupSessionRoutes はセッション関連ルートを設定します
func (r *Router) setupSessionRoutes(api *echo.Group) {
	sessions := api.Group("/sessions")
	sessions.POST("", r.handlers.Session.CreateSession)
	sessions.GET("/:id", r.handlers.Session.GetSession)
	sessions.GET("/:id/summary", r.handlers.Session.GetSessionSummary)
	sessions.POST("/:id/trials", r.handlers.Session.AppendTrial)
	sessions.POST("/:id/finish", r.handlers.Session.FinishSession)
	sessions.PATCH("/:id/notes", r.handlers.Session.PatchNotes)
}

// setupCaseloadRoutes は生徒・担当一覧ルートを設定します
func (r *Router) setupCaseloadRoutes(api *echo.Group) {
	api.GET("/students/:id/profile", r.handlers.Caseload.GetStudentProfile)
	api.GET("/slp/:id/caseload", r.handlers.Caseload.ListCaseload)
}
