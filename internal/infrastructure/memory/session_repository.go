package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/entity"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/repository"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
)

// SessionRepository はプロセス内のSessionRepository実装です
// 永続化されないため開発環境とテスト専用です
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[valueobject.Identifier]*entity.Session
}

var _ repository.SessionRepository = (*SessionRepository)(nil)

// NewSessionRepository は新しいSessionRepositoryを作成します
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[valueobject.Identifier]*entity.Session),
	}
}

// FindByID はIDでセッションを検索します
func (r *SessionRepository) FindByID(_ context.Context, id valueobject.Identifier) (*entity.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[id], nil
}

// Save はセッションを保存します
// セッションは不変値なのでポインタをそのまま保持します
func (r *SessionRepository) Save(_ context.Context, session *entity.Session) error {
	if session == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID()] = session
	return nil
}

// ListByStudent は生徒のセッションを新しい順に取得します
func (r *SessionRepository) ListByStudent(_ context.Context, studentID valueobject.Identifier, limit int) ([]*entity.Session, error) {
	return r.list(func(s *entity.Session) bool { return s.StudentID().Equals(studentID) }, limit), nil
}

// ListBySlp はSLPのセッションを新しい順に取得します
func (r *SessionRepository) ListBySlp(_ context.Context, slpID valueobject.Identifier, limit int) ([]*entity.Session, error) {
	return r.list(func(s *entity.Session) bool { return s.SlpID().Equals(slpID) }, limit), nil
}

// Count は保存されているセッション数を返します
func (r *SessionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *SessionRepository) list(match func(*entity.Session) bool, limit int) []*entity.Session {
	r.mu.RLock()
	out := make([]*entity.Session, 0)
	for _, s := range r.sessions {
		if match(s) {
			out = append(out, s)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].CreatedAt().Time(), out[j].CreatedAt().Time()
		if ti.Equal(tj) {
			return out[i].ID().String() > out[j].ID().String()
		}
		return ti.After(tj)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
