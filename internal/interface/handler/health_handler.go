package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthChecker はヘルスチェックを実行するインターフェースです
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthCheckFunc は関数をHealthCheckerとして扱います
type HealthCheckFunc func(ctx context.Context) error

// Health はHealthCheckerを実装します
func (f HealthCheckFunc) Health(ctx context.Context) error { return f(ctx) }

// LiveStats はライブセッションの接続統計を返します
type LiveStats func() (rooms, clients int)

// LastCheck はバックグラウンドのヘルスチェック結果を返します
type LastCheck func() (failures map[string]string, checkedAt time.Time)

// HealthHandler はヘルスチェック関連のHTTPハンドラーです
type HealthHandler struct {
	checkers  map[string]HealthChecker
	liveStats LiveStats
	lastCheck LastCheck
}

// NewHealthHandler は新しいHealthHandlerを作成します
func NewHealthHandler(liveStats LiveStats) *HealthHandler {
	return &HealthHandler{
		checkers:  make(map[string]HealthChecker),
		liveStats: liveStats,
	}
}

// RegisterChecker はヘルスチェッカーを登録します
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	h.checkers[name] = checker
}

// SetLastCheck はバックグラウンドチェックの参照先を設定します
func (h *HealthHandler) SetLastCheck(fn LastCheck) {
	h.lastCheck = fn
}

// HealthResponse はヘルスチェックレスポンスを定義します
type HealthResponse struct {
	Status       string        `json:"status"`
	Live         *LiveUsage    `json:"live,omitempty"`
	Dependencies *Dependencies `json:"dependencies,omitempty"`
}

// Dependencies は直近のバックグラウンドチェック結果です
type Dependencies struct {
	CheckedAt string            `json:"checkedAt"`
	Failures  map[string]string `json:"failures,omitempty"`
}

// LiveUsage はライブセッションの利用状況です
type LiveUsage struct {
	Rooms   int `json:"rooms"`
	Clients int `json:"clients"`
}

// ReadyResponse はレディネスチェックレスポンスを定義します
type ReadyResponse struct {
	Status   string                   `json:"status"`
	Services map[string]ServiceStatus `json:"services,omitempty"`
}

// ServiceStatus はサービスのステータスを定義します
type ServiceStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Check はライブネスチェックを実行します
// GET /health
func (h *HealthHandler) Check(c echo.Context) error {
	res := HealthResponse{Status: "ok"}
	if h.liveStats != nil {
		rooms, clients := h.liveStats()
		res.Live = &LiveUsage{Rooms: rooms, Clients: clients}
	}
	// ライブネスは常に200で、依存先の失敗はdegradedとして示します
	if h.lastCheck != nil {
		failures, checkedAt := h.lastCheck()
		if !checkedAt.IsZero() {
			res.Dependencies = &Dependencies{
				CheckedAt: checkedAt.UTC().Format(time.RFC3339),
				Failures:  failures,
			}
			if len(failures) > 0 {
				res.Status = "degraded"
			}
		}
	}
	return c.JSON(http.StatusOK, res)
}

// Ready はレディネスチェックを実行します
// GET /ready
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx := c.Request().Context()
	services := make(map[string]ServiceStatus, len(h.checkers))
	allHealthy := true

	var mu sync.Mutex
	var wg sync.WaitGroup

	for name, checker := range h.checkers {
		wg.Add(1)
		go func(name string, checker HealthChecker) {
			defer wg.Done()

			err := checker.Health(ctx)
			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				services[name] = ServiceStatus{Status: "unhealthy", Message: err.Error()}
				allHealthy = false
				return
			}
			services[name] = ServiceStatus{Status: "healthy"}
		}(name, checker)
	}

	wg.Wait()

	status := "ready"
	statusCode := http.StatusOK
	if !allHealthy {
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	return c.JSON(statusCode, ReadyResponse{
		Status:   status,
		Services: services,
	})
}
