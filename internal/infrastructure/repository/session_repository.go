package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/entity"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/repository"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/infrastructure/database"
)

const (
	selectSessionColumns = `SELECT id, is_active, slp_id, student_id, seed, notes, created_at, finished_at FROM sessions`

	upsertSessionSQL = `
INSERT INTO sessions (id, is_active, slp_id, student_id, seed, notes, created_at, finished_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
    is_active   = EXCLUDED.is_active,
    slp_id      = EXCLUDED.slp_id,
    student_id  = EXCLUDED.student_id,
    seed        = EXCLUDED.seed,
    notes       = EXCLUDED.notes,
    created_at  = EXCLUDED.created_at,
    finished_at = EXCLUDED.finished_at`

	upsertTrialSQL = `
INSERT INTO session_trials (session_id, seq, correct, ts_epoch_ms)
VALUES ($1, $2, $3, $4)
ON CONFLICT (session_id, seq) DO UPDATE SET
    correct     = EXCLUDED.correct,
    ts_epoch_ms = EXCLUDED.ts_epoch_ms`

	deleteTrialsFromSQL = `DELETE FROM session_trials WHERE session_id = $1 AND seq >= $2`

	selectTrialsSQL = `
SELECT session_id, correct, ts_epoch_ms
FROM session_trials
WHERE session_id = ANY($1)
ORDER BY session_id, seq`
)

// SessionRepository はセッションリポジトリのPostgreSQL実装です
type SessionRepository struct {
	*database.BaseRepository
	factory *entity.SessionFactory
}

var _ repository.SessionRepository = (*SessionRepository)(nil)

// NewSessionRepository は新しいSessionRepositoryを作成します
func NewSessionRepository(txManager *database.TxManager, factory *entity.SessionFactory) *SessionRepository {
	return &SessionRepository{
		BaseRepository: database.NewBaseRepository(txManager),
		factory:        factory,
	}
}

// FindByID はIDでセッションを検索します
func (r *SessionRepository) FindByID(ctx context.Context, id valueobject.Identifier) (*entity.Session, error) {
	sessions, err := r.query(ctx, selectSessionColumns+` WHERE id = $1`, id.UUID())
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}
	return sessions[0], nil
}

// Save はセッションと試行履歴を1トランザクションで上書き保存します
func (r *SessionRepository) Save(ctx context.Context, session *entity.Session) error {
	p := session.ToPrimitives()

	return r.TxManager().WithTransaction(ctx, func(ctx context.Context) error {
		batch := &pgx.Batch{}
		batch.Queue(upsertSessionSQL,
			p.ID, p.IsActive, p.SlpID, p.StudentID, p.Seed, p.Notes, p.CreatedAt, p.FinishedAt,
		)
		for i, t := range p.Trials {
			batch.Queue(upsertTrialSQL, p.ID, i, t.Correct, int64(t.TsEpochMs))
		}
		batch.Queue(deleteTrialsFromSQL, p.ID, len(p.Trials))

		results := r.Querier(ctx).SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := results.Exec(); err != nil {
				_ = results.Close()
				return r.HandleError(err)
			}
		}
		return r.HandleError(results.Close())
	})
}

// ListByStudent は生徒のセッションを新しい順に取得します
func (r *SessionRepository) ListByStudent(ctx context.Context, studentID valueobject.Identifier, limit int) ([]*entity.Session, error) {
	return r.query(ctx, selectSessionColumns+` WHERE student_id = $1 ORDER BY created_at DESC LIMIT $2`, studentID.UUID(), limit)
}

// ListBySlp はSLPのセッションを新しい順に取得します
func (r *SessionRepository) ListBySlp(ctx context.Context, slpID valueobject.Identifier, limit int) ([]*entity.Session, error) {
	return r.query(ctx, selectSessionColumns+` WHERE slp_id = $1 ORDER BY created_at DESC LIMIT $2`, slpID.UUID(), limit)
}

type sessionRow struct {
	ID         uuid.UUID
	IsActive   bool
	SlpID      uuid.UUID
	StudentID  uuid.UUID
	Seed       int64
	Notes      *string
	CreatedAt  time.Time
	FinishedAt *time.Time
}

func (r *SessionRepository) query(ctx context.Context, sql string, args ...any) ([]*entity.Session, error) {
	q := r.Querier(ctx)

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, r.HandleError(err)
	}
	sessionRows, err := pgx.CollectRows(rows, pgx.RowToStructByPos[sessionRow])
	if err != nil {
		return nil, r.HandleError(err)
	}
	if len(sessionRows) == 0 {
		return []*entity.Session{}, nil
	}

	ids := make([]uuid.UUID, len(sessionRows))
	for i, row := range sessionRows {
		ids[i] = row.ID
	}
	trials, err := r.loadTrials(ctx, q, ids)
	if err != nil {
		return nil, err
	}

	sessions := make([]*entity.Session, 0, len(sessionRows))
	for _, row := range sessionRows {
		s, err := r.toEntity(row, trials[row.ID])
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

func (r *SessionRepository) loadTrials(ctx context.Context, q database.Querier, ids []uuid.UUID) (map[uuid.UUID][]entity.TrialPrimitives, error) {
	rows, err := q.Query(ctx, selectTrialsSQL, ids)
	if err != nil {
		return nil, r.HandleError(err)
	}
	defer rows.Close()

	trials := make(map[uuid.UUID][]entity.TrialPrimitives, len(ids))
	for rows.Next() {
		var (
			sessionID uuid.UUID
			correct   bool
			ts        int64
		)
		if err := rows.Scan(&sessionID, &correct, &ts); err != nil {
			return nil, r.HandleError(err)
		}
		trials[sessionID] = append(trials[sessionID], entity.TrialPrimitives{Correct: correct, TsEpochMs: float64(ts)})
	}
	if err := rows.Err(); err != nil {
		return nil, r.HandleError(err)
	}
	return trials, nil
}

func (r *SessionRepository) toEntity(row sessionRow, trials []entity.TrialPrimitives) (*entity.Session, error) {
	if trials == nil {
		trials = []entity.TrialPrimitives{}
	}
	return r.factory.FromPrimitives(entity.SessionPrimitives{
		ID:         row.ID.String(),
		IsActive:   row.IsActive,
		CreatedAt:  row.CreatedAt,
		SlpID:      row.SlpID.String(),
		StudentID:  row.StudentID.String(),
		Seed:       row.Seed,
		FinishedAt: row.FinishedAt,
		Notes:      row.Notes,
		Trials:     trials,
	})
}
