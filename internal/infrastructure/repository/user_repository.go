package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/entity"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/repository"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/infrastructure/database"
)

const (
	selectUserColumns = `SELECT id, role, first_name, last_name, email, is_active, slp_id, created_at FROM users`

	upsertUserSQL = `
INSERT INTO users (id, role, first_name, last_name, email, is_active, slp_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
    first_name = EXCLUDED.first_name,
    last_name  = EXCLUDED.last_name,
    email      = EXCLUDED.email,
    is_active  = EXCLUDED.is_active,
    slp_id     = EXCLUDED.slp_id`
)

// UserRepository はユーザーリポジトリのPostgreSQL実装です
type UserRepository struct {
	*database.BaseRepository
}

var _ repository.UserRepository = (*UserRepository)(nil)

// NewUserRepository は新しいUserRepositoryを作成します
func NewUserRepository(txManager *database.TxManager) *UserRepository {
	return &UserRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

// FindByID はIDでユーザーを検索します
func (r *UserRepository) FindByID(ctx context.Context, id valueobject.Identifier) (*entity.User, error) {
	rows, err := r.Querier(ctx).Query(ctx, selectUserColumns+` WHERE id = $1`, id.UUID())
	if err != nil {
		return nil, r.HandleError(err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[userRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, r.HandleError(err)
	}
	return row.toEntity()
}

// FindStudentsBySlp はSLPが担当する生徒を取得します
func (r *UserRepository) FindStudentsBySlp(ctx context.Context, slpID valueobject.Identifier) ([]*entity.User, error) {
	rows, err := r.Querier(ctx).Query(ctx,
		selectUserColumns+` WHERE role = 'student' AND slp_id = $1 ORDER BY first_name, last_name`,
		slpID.UUID(),
	)
	if err != nil {
		return nil, r.HandleError(err)
	}
	userRows, err := pgx.CollectRows(rows, pgx.RowToStructByPos[userRow])
	if err != nil {
		return nil, r.HandleError(err)
	}

	users := make([]*entity.User, 0, len(userRows))
	for _, row := range userRows {
		u, err := row.toStudent()
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

// Save はユーザーを保存します。ロールは作成後に変更されません
func (r *UserRepository) Save(ctx context.Context, user *entity.User) error {
	var slpID *uuid.UUID
	if id := user.SlpID(); id != nil {
		u := id.UUID()
		slpID = &u
	}

	_, err := r.Querier(ctx).Exec(ctx, upsertUserSQL,
		user.ID().UUID(),
		user.Role().String(),
		user.FirstName().Value(),
		user.LastName().Value(),
		user.Email().String(),
		user.IsActive(),
		slpID,
		user.CreatedAt(),
	)
	return r.HandleError(err)
}

type userRow struct {
	ID        uuid.UUID
	Role      string
	FirstName string
	LastName  string
	Email     string
	IsActive  bool
	SlpID     *uuid.UUID
	CreatedAt time.Time
}

func (row userRow) toEntity() (*entity.User, error) {
	return entity.ReconstructAnyUser(row.Role, row.props())
}

// toStudent は生徒として復元し、保存されたロールが異なる場合はエラーを返します
func (row userRow) toStudent() (*entity.User, error) {
	return entity.ReconstructUser(valueobject.UserRoleStudent, row.Role, row.props())
}

func (row userRow) props() entity.UserProps {
	props := entity.UserProps{
		ID:        row.ID.String(),
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Email:     row.Email,
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt,
	}
	if row.SlpID != nil {
		s := row.SlpID.String()
		props.SlpID = &s
	}
	return props
}
