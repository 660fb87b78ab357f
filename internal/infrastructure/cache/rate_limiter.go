package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitResult はレート制限チェックの結果を表します
type RateLimitResult struct {
	Allowed   bool      // リクエストが許可されたか
	Remaining int       // 残りリクエスト数
	ResetAt   time.Time // リセット時刻
}

// RateLimitConfig はレート制限の設定を定義します
type RateLimitConfig struct {
	Type     string        // 制限タイプ（api, live:move等）
	Requests int           // ウィンドウ内の最大リクエスト数
	Window   time.Duration // ウィンドウサイズ
}

// 事前定義されたレート制限設定
var (
	RateLimitAPIDefault = RateLimitConfig{
		Type:     "api:default",
		Requests: 600,
		Window:   time.Minute,
	}
	RateLimitAPIWrite = RateLimitConfig{
		Type:     "api:write",
		Requests: 120,
		Window:   time.Minute,
	}
	RateLimitLiveMove = RateLimitConfig{
		Type:     "live:move",
		Requests: 20,
		Window:   10 * time.Second,
	}
)

// RateLimiter はレート制限を提供します
type RateLimiter struct {
	client *redis.Client
	now    func() time.Time
}

// NewRateLimiter は新しいRateLimiterを作成します
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client, now: time.Now}
}

// スライディングウィンドウ。ZSETにミリ秒スコアで記録し、Luaでアトミックに判定する
var slidingWindowScript = redis.NewScript(`
    local key = KEYS[1]
    local now = tonumber(ARGV[1])
    local window_ms = tonumber(ARGV[2])
    local limit = tonumber(ARGV[3])
    local member = ARGV[4]

    redis.call('ZREMRANGEBYSCORE', key, 0, now - window_ms)

    local count = redis.call('ZCARD', key)
    if count < limit then
        redis.call('ZADD', key, now, member)
        redis.call('PEXPIRE', key, window_ms)
        return {1, limit - count - 1, now + window_ms}
    end

    local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
    return {0, 0, tonumber(oldest[2]) + window_ms}
`)

// Allow はリクエストが許可されるかチェックします
func (r *RateLimiter) Allow(ctx context.Context, identifier string, config RateLimitConfig) (*RateLimitResult, error) {
	key := RateLimitKey(config.Type, identifier)
	now := r.now().UnixMilli()
	member := fmt.Sprintf("%d:%d", now, r.now().UnixNano())

	result, err := slidingWindowScript.Run(ctx, r.client, []string{key},
		now, config.Window.Milliseconds(), config.Requests, member,
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}

	return &RateLimitResult{
		Allowed:   result[0] == 1,
		Remaining: int(result[1]),
		ResetAt:   time.UnixMilli(result[2]),
	}, nil
}
