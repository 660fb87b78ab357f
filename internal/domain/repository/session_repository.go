package repository

import (
	"context"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/entity"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
)

// SessionRepository はセッションリポジトリインターフェースを定義します
type SessionRepository interface {
	// FindByID はIDでセッションを検索します（存在しない場合は nil, nil）
	FindByID(ctx context.Context, id valueobject.Identifier) (*entity.Session, error)

	// Save はセッションを保存します（ID単位の全体上書き）
	Save(ctx context.Context, session *entity.Session) error

	// ListByStudent は生徒のセッションを新しい順に取得します
	ListByStudent(ctx context.Context, studentID valueobject.Identifier, limit int) ([]*entity.Session, error)

	// ListBySlp はSLPのセッションを新しい順に取得します
	ListBySlp(ctx context.Context, slpID valueobject.Identifier, limit int) ([]*entity.Session, error)
}
