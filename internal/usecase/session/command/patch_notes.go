package command

import (
	"context"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/entity"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/repository"
)

// PatchNotesInput はメモ更新の入力を定義します
type PatchNotesInput struct {
	SessionID string
	Notes     *string // nilまたは空白のみでクリア
}

// PatchNotesOutput はメモ更新の出力を定義します
type PatchNotesOutput struct {
	SessionID string
	Notes     *string
}

// PatchNotesCommand はメモ更新コマンドです
type PatchNotesCommand struct {
	sessionRepo repository.SessionRepository
	txManager   repository.TransactionManager
}

// NewPatchNotesCommand は新しいPatchNotesCommandを作成します
func NewPatchNotesCommand(
	sessionRepo repository.SessionRepository,
	txManager repository.TransactionManager,
) *PatchNotesCommand {
	return &PatchNotesCommand{
		sessionRepo: sessionRepo,
		txManager:   txManager,
	}
}

// Execute はメモ更新を実行します
func (c *PatchNotesCommand) Execute(ctx context.Context, input PatchNotesInput) (*PatchNotesOutput, error) {
	var updated *entity.Session
	err := c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		session, err := loadSession(ctx, c.sessionRepo, input.SessionID)
		if err != nil {
			return err
		}

		updated, err = session.WithNotes(input.Notes)
		if err != nil {
			return err
		}

		return c.sessionRepo.Save(ctx, updated)
	})
	if err != nil {
		return nil, err
	}

	return &PatchNotesOutput{
		SessionID: updated.ID().String(),
		Notes:     updated.Notes(),
	}, nil
}
