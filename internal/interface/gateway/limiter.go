package gateway

import (
	"context"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/infrastructure/cache"
)

// RedisMoveLimiter はRedisのスライディングウィンドウで手の頻度を制限します
type RedisMoveLimiter struct {
	limiter *cache.RateLimiter
	config  cache.RateLimitConfig
}

// NewRedisMoveLimiter は新しいRedisMoveLimiterを作成します
func NewRedisMoveLimiter(limiter *cache.RateLimiter, config cache.RateLimitConfig) *RedisMoveLimiter {
	return &RedisMoveLimiter{limiter: limiter, config: config}
}

// AllowMove はユーザーの手を許可するかを返します
func (l *RedisMoveLimiter) AllowMove(ctx context.Context, userID string) (bool, error) {
	result, err := l.limiter.Allow(ctx, userID, l.config)
	if err != nil {
		return false, err
	}
	return result.Allowed, nil
}
