package database

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/demianvselko/empatspeech-demo-sub000/pkg/apperror"
)

// BaseRepository はリポジトリの基底構造体
type BaseRepository struct {
	txManager *TxManager
}

// NewBaseRepository は新しいBaseRepositoryを作成する
func NewBaseRepository(txManager *TxManager) *BaseRepository {
	return &BaseRepository{txManager: txManager}
}

// Querier はクエリ実行用のインターフェースを返す
// トランザクション中であればTx、そうでなければPoolを返す
func (r *BaseRepository) Querier(ctx context.Context) Querier {
	return r.txManager.GetQuerier(ctx)
}

// TxManager はトランザクションマネージャーを返す
func (r *BaseRepository) TxManager() *TxManager {
	return r.txManager
}

// HandleError はpgxのエラーをインフラエラー種別に変換する
// ユースケースにはストア固有のエラー型を渡さない
func (r *BaseRepository) HandleError(err error) error {
	return ClassifyError(err)
}

// ClassifyError はエラーをapperrorのインフラ種別に分類する
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	// 既に分類済み
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperror.NewInfrastructureError(apperror.InfraTimeout, "database operation timed out", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return apperror.NewInfrastructureError(kindForSQLState(pgErr.Code), pgErr.Message, err)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return apperror.NewInfrastructureError(apperror.InfraConnection, "database connection failed", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return apperror.NewInfrastructureError(apperror.InfraTimeout, "database operation timed out", err)
		}
		return apperror.NewInfrastructureError(apperror.InfraConnection, "database connection failed", err)
	}

	if errors.Is(err, pgx.ErrTxClosed) || pgconn.SafeToRetry(err) {
		return apperror.NewInfrastructureError(apperror.InfraConnection, "database connection failed", err)
	}

	return apperror.NewInfrastructureError(apperror.InfraUnknown, "database error", err)
}

// kindForSQLState はSQLSTATEを種別に変換する
func kindForSQLState(code string) apperror.InfraKind {
	switch {
	case code == "23505": // unique_violation
		return apperror.InfraDuplicateKey
	case code == "22P02", code == "22007", code == "22008", code == "42804": // 型変換
		return apperror.InfraCast
	case strings.HasPrefix(code, "23"), code == "22001", code == "22003": // 制約・範囲
		return apperror.InfraValidation
	case code == "57014": // query_canceled
		return apperror.InfraTimeout
	case strings.HasPrefix(code, "08"), code == "57P01", code == "53300":
		return apperror.InfraConnection
	default:
		return apperror.InfraUnknown
	}
}
