package repository

import (
	"context"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/entity"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
)

// UserRepository はユーザーリポジトリインターフェースを定義します
type UserRepository interface {
	// FindByID はIDでユーザーを検索します（存在しない場合は nil, nil）
	FindByID(ctx context.Context, id valueobject.Identifier) (*entity.User, error)

	// FindStudentsBySlp はSLPが担当する生徒を取得します
	FindStudentsBySlp(ctx context.Context, slpID valueobject.Identifier) ([]*entity.User, error)

	// Save はユーザーを保存します
	Save(ctx context.Context, user *entity.User) error
}
