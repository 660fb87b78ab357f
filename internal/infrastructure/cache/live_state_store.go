package cache

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/repository"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
)

// DefaultLiveStateTTL はライブ状態の既定の保持期間です
const DefaultLiveStateTTL = 24 * time.Hour

// LiveStateStore は手番とマッチ済みカードをRedisに保持します
// 複数プロセスでゲートウェイを動かす場合に使います
type LiveStateStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ repository.LiveStateRepository = (*LiveStateStore)(nil)

// NewLiveStateStore は新しいLiveStateStoreを作成します
func NewLiveStateStore(client *redis.Client, ttl time.Duration) *LiveStateStore {
	if ttl <= 0 {
		ttl = DefaultLiveStateTTL
	}
	return &LiveStateStore{client: client, ttl: ttl}
}

// Turn は現在の手番を返します
func (s *LiveStateStore) Turn(ctx context.Context, sessionID string) (valueobject.TurnRole, bool, error) {
	v, err := s.client.Get(ctx, LiveTurnKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get turn: %w", err)
	}
	turn, ok := valueobject.ParseTurnRole(v)
	if !ok {
		return "", false, fmt.Errorf("corrupted turn value %q for session %s", v, sessionID)
	}
	return turn, true, nil
}

// SetTurn は手番を設定します
func (s *LiveStateStore) SetTurn(ctx context.Context, sessionID string, turn valueobject.TurnRole) error {
	if err := s.client.Set(ctx, LiveTurnKey(sessionID), turn.String(), s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set turn: %w", err)
	}
	return nil
}

// InitTurn は手番が未設定の場合のみ設定します
func (s *LiveStateStore) InitTurn(ctx context.Context, sessionID string, turn valueobject.TurnRole) (valueobject.TurnRole, error) {
	key := LiveTurnKey(sessionID)
	if err := s.client.SetNX(ctx, key, turn.String(), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to init turn: %w", err)
	}
	current, ok, err := s.Turn(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if !ok {
		return turn, nil
	}
	return current, nil
}

// AddMatchedCards はマッチ済みカードを追加します
func (s *LiveStateStore) AddMatchedCards(ctx context.Context, sessionID string, cards ...string) error {
	if len(cards) == 0 {
		return nil
	}
	members := make([]any, len(cards))
	for i, c := range cards {
		members[i] = c
	}

	key := LiveMatchedKey(sessionID)
	pipe := s.client.TxPipeline()
	pipe.SAdd(ctx, key, members...)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to add matched cards: %w", err)
	}
	return nil
}

// MatchedCards はマッチ済みカードをソート済みで返します
func (s *LiveStateStore) MatchedCards(ctx context.Context, sessionID string) ([]string, error) {
	cards, err := s.client.SMembers(ctx, LiveMatchedKey(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get matched cards: %w", err)
	}
	slices.Sort(cards)
	return cards, nil
}
