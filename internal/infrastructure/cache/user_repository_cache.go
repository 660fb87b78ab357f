package cache

import (
	"context"
	"errors"
	"log/slog"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/entity"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/repository"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
)

// cachedUser はキャッシュに保存するユーザーデータです（内部用）
type cachedUser struct {
	Role  string           `json:"role"`
	Props entity.UserProps `json:"props"`
}

// CachedUserRepository はUserRepositoryの読み取りをRedisでキャッシュします
// キャッシュの障害は読み取りを失敗させず、下位のリポジトリにフォールバックします
type CachedUserRepository struct {
	next  repository.UserRepository
	cache *Cache
}

var _ repository.UserRepository = (*CachedUserRepository)(nil)

// NewCachedUserRepository は新しいCachedUserRepositoryを作成します
func NewCachedUserRepository(next repository.UserRepository, cache *Cache) *CachedUserRepository {
	return &CachedUserRepository{next: next, cache: cache}
}

// FindByID はIDでユーザーを検索します
func (r *CachedUserRepository) FindByID(ctx context.Context, id valueobject.Identifier) (*entity.User, error) {
	key := userKey(id)

	var cached cachedUser
	err := r.cache.Get(ctx, key, &cached)
	if err == nil {
		if u, err := entity.ReconstructAnyUser(cached.Role, cached.Props); err == nil {
			return u, nil
		}
	} else if !errors.Is(err, ErrCacheMiss) {
		slog.Warn("user cache read failed", "error", err, "user_id", id.String())
	}

	u, err := r.next.FindByID(ctx, id)
	if err != nil || u == nil {
		return u, err
	}
	r.store(ctx, key, u)
	return u, nil
}

// FindStudentsBySlp はキャッシュせずに下位のリポジトリへ委譲します
func (r *CachedUserRepository) FindStudentsBySlp(ctx context.Context, slpID valueobject.Identifier) ([]*entity.User, error) {
	return r.next.FindStudentsBySlp(ctx, slpID)
}

// Save はユーザーを保存し、キャッシュを無効化します
func (r *CachedUserRepository) Save(ctx context.Context, user *entity.User) error {
	if err := r.next.Save(ctx, user); err != nil {
		return err
	}
	if err := r.cache.Delete(ctx, userKey(user.ID())); err != nil {
		slog.Warn("user cache invalidation failed", "error", err, "user_id", user.ID().String())
	}
	return nil
}

func (r *CachedUserRepository) store(ctx context.Context, key string, u *entity.User) {
	if err := r.cache.Set(ctx, key, cachedUser{Role: u.Role().String(), Props: u.Props()}); err != nil {
		slog.Warn("user cache write failed", "error", err, "user_id", u.ID().String())
	}
}

func userKey(id valueobject.Identifier) string {
	return "user:" + id.String()
}
