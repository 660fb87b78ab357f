package memory

import (
	"context"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/repository"
)

// TxManager はメモリバックエンド用のTransactionManagerです
// ロールバックは行わず関数をそのまま実行します
type TxManager struct{}

var _ repository.TransactionManager = TxManager{}

// NewTxManager は新しいTxManagerを作成します
func NewTxManager() TxManager {
	return TxManager{}
}

// WithTransaction は関数を実行します
func (TxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
