package cache

import "fmt"

// KeyPrefix はRedisキーのプレフィックスを定義します
type KeyPrefix string

const (
	// ライブセッション
	PrefixLiveTurn    KeyPrefix = "live:turn"    // live:turn:{session_id}
	PrefixLiveMatched KeyPrefix = "live:matched" // live:matched:{session_id}

	// レート制限
	PrefixRateLimit KeyPrefix = "ratelimit" // ratelimit:{type}:{identifier}

	// キャッシュ
	PrefixCache KeyPrefix = "cache" // cache:{namespace}:{key}
)

// LiveTurnKey は手番キーを生成します
func LiveTurnKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", PrefixLiveTurn, sessionID)
}

// LiveMatchedKey はマッチ済みカード集合のキーを生成します
func LiveMatchedKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", PrefixLiveMatched, sessionID)
}

// RateLimitKey はレート制限キーを生成します
func RateLimitKey(limitType, identifier string) string {
	return fmt.Sprintf("%s:%s:%s", PrefixRateLimit, limitType, identifier)
}

// CacheKey は汎用キャッシュキーを生成します
func CacheKey(namespace, key string) string {
	return fmt.Sprintf("%s:%s:%s", PrefixCache, namespace, key)
}
