package di

import (
	"github.com/demianvselko/empatspeech-demo-sub000/internal/interface/middleware"
)

// Middlewares はアプリケーションのミドルウェアを保持します
type Middlewares struct {
	JWTAuth   *middleware.JWTAuthMiddleware
	RateLimit *middleware.RateLimitMiddleware
}

// NewMiddlewares はContainerから全てのミドルウェアを初期化します
func NewMiddlewares(c *Container) *Middlewares {
	m := &Middlewares{
		JWTAuth:   middleware.NewJWTAuthMiddleware(nil),
		RateLimit: middleware.NewRateLimitMiddleware(nil),
	}

	if c.JWTService != nil {
		m.JWTAuth = middleware.NewJWTAuthMiddleware(c.JWTService)
	}
	if c.RateLimiter != nil && c.config.Security.RateLimitEnabled {
		m.RateLimit = middleware.NewRateLimitMiddleware(c.RateLimiter)
	}

	return m
}
