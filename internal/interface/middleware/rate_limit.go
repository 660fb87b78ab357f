package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/infrastructure/cache"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/apperror"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/logger"
)

// RateLimitMiddleware はレート制限ミドルウェアを提供します
type RateLimitMiddleware struct {
	limiter *cache.RateLimiter
}

// NewRateLimitMiddleware は新しいRateLimitMiddlewareを作成します
// limiterがnilの場合は制限しません
func NewRateLimitMiddleware(limiter *cache.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// API はユーザーID（未認証ならIP）単位でAPIを制限します
// 更新系メソッドにはより厳しい制限を適用します
func (m *RateLimitMiddleware) API() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m == nil || m.limiter == nil {
				return next(c)
			}

			config := cache.RateLimitAPIDefault
			switch c.Request().Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
				config = cache.RateLimitAPIWrite
			}

			identifier := GetUserID(c)
			if identifier == "" {
				identifier = c.RealIP()
			}

			result, err := m.limiter.Allow(c.Request().Context(), identifier, config)
			if err != nil {
				// レート制限チェックに失敗した場合はリクエストを許可
				logger.Warn(c.Request().Context(), "rate limit check failed", "error", err.Error())
				return next(c)
			}

			setRateLimitHeaders(c, result)
			if !result.Allowed {
				return apperror.NewTooManyRequestsError("rate limit exceeded")
			}

			return next(c)
		}
	}
}

// setRateLimitHeaders はレート制限ヘッダーを設定します
func setRateLimitHeaders(c echo.Context, result *cache.RateLimitResult) {
	c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Response().Header().Set("X-RateLimit-Reset", result.ResetAt.UTC().Format("2006-01-02T15:04:05Z"))
}
