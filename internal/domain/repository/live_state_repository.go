package repository

import (
	"context"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
)

// LiveStateRepository はライブセッションの手番とマッチ済みカードを保持します
// 参考情報のキャッシュであり、永続化されたセッションが正となります
type LiveStateRepository interface {
	// Turn は現在の手番を返します（未初期化の場合は ok=false）
	Turn(ctx context.Context, sessionID string) (turn valueobject.TurnRole, ok bool, err error)

	// SetTurn は手番を設定します
	SetTurn(ctx context.Context, sessionID string, turn valueobject.TurnRole) error

	// InitTurn は手番が未設定の場合のみ設定し、設定後の手番を返します
	InitTurn(ctx context.Context, sessionID string, turn valueobject.TurnRole) (valueobject.TurnRole, error)

	// AddMatchedCards はマッチ済みカードを追加します
	AddMatchedCards(ctx context.Context, sessionID string, cards ...string) error

	// MatchedCards はマッチ済みカードをソート済みで返します
	MatchedCards(ctx context.Context, sessionID string) ([]string, error)
}
