package memory

import (
	"context"
	"sync"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/entity"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/repository"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
)

// UserRepository はプロセス内のUserRepository実装です
type UserRepository struct {
	mu    sync.RWMutex
	users map[valueobject.Identifier]*entity.User
	order []valueobject.Identifier
}

var _ repository.UserRepository = (*UserRepository)(nil)

// NewUserRepository は新しいUserRepositoryを作成します
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[valueobject.Identifier]*entity.User),
	}
}

// FindByID はIDでユーザーを検索します
func (r *UserRepository) FindByID(_ context.Context, id valueobject.Identifier) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.users[id], nil
}

// FindStudentsBySlp はSLPが担当する生徒を登録順に取得します
func (r *UserRepository) FindStudentsBySlp(_ context.Context, slpID valueobject.Identifier) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.User, 0)
	for _, id := range r.order {
		u := r.users[id]
		if !u.IsStudent() {
			continue
		}
		if s := u.SlpID(); s != nil && s.Equals(slpID) {
			out = append(out, u)
		}
	}
	return out, nil
}

// Save はユーザーを保存します
func (r *UserRepository) Save(_ context.Context, user *entity.User) error {
	if user == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.ID()]; !exists {
		r.order = append(r.order, user.ID())
	}
	r.users[user.ID()] = user
	return nil
}
