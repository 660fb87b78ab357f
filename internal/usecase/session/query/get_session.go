package query

import (
	"context"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/entity"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/repository"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/apperror"
)

// GetSessionInput はセッション取得の入力を定義します
type GetSessionInput struct {
	SessionID string
}

// GetSessionOutput はセッション取得の出力を定義します
type GetSessionOutput struct {
	Session *entity.Session
}

// GetSessionQuery はセッション取得クエリです
type GetSessionQuery struct {
	sessionRepo repository.SessionRepository
}

// NewGetSessionQuery は新しいGetSessionQueryを作成します
func NewGetSessionQuery(sessionRepo repository.SessionRepository) *GetSessionQuery {
	return &GetSessionQuery{sessionRepo: sessionRepo}
}

// Execute はセッション取得を実行します
func (q *GetSessionQuery) Execute(ctx context.Context, input GetSessionInput) (*GetSessionOutput, error) {
	id, err := valueobject.NewIdentifierFor("sessionId", input.SessionID)
	if err != nil {
		return nil, err
	}

	session, err := q.sessionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewSessionNotFoundError(id.String())
	}

	return &GetSessionOutput{Session: session}, nil
}
