package command

import (
	"context"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/entity"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/repository"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/service"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
)

// AppendTrialInput は試行追加の入力を定義します
type AppendTrialInput struct {
	SessionID   string
	Correct     bool
	PerformedBy valueobject.TurnRole // 空の場合は不明として扱います
}

// AppendTrialOutput は試行追加の出力を定義します
type AppendTrialOutput struct {
	SessionID       string
	TotalTrials     int
	AccuracyPercent int
}

// AppendTrialCommand は試行追加コマンドです
// 終了済みセッションへの追加は拒否しません
type AppendTrialCommand struct {
	sessionRepo repository.SessionRepository
	txManager   repository.TransactionManager
	clock       service.Clock
	publisher   service.SessionEventPublisher
}

// NewAppendTrialCommand は新しいAppendTrialCommandを作成します
func NewAppendTrialCommand(
	sessionRepo repository.SessionRepository,
	txManager repository.TransactionManager,
	clock service.Clock,
	publisher service.SessionEventPublisher,
) *AppendTrialCommand {
	return &AppendTrialCommand{
		sessionRepo: sessionRepo,
		txManager:   txManager,
		clock:       clock,
		publisher:   publisher,
	}
}

// Execute は試行追加を実行します
func (c *AppendTrialCommand) Execute(ctx context.Context, input AppendTrialInput) (*AppendTrialOutput, error) {
	if input.PerformedBy != "" && !input.PerformedBy.IsValid() {
		return nil, invalidPerformedBy(input.PerformedBy)
	}

	var updated *entity.Session
	var nowMs int64
	err := c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		session, err := loadSession(ctx, c.sessionRepo, input.SessionID)
		if err != nil {
			return err
		}

		nowMs = c.clock.NowEpochMs()
		updated = session.WithTrial(input.Correct, float64(nowMs))

		return c.sessionRepo.Save(ctx, updated)
	})
	if err != nil {
		return nil, err
	}

	event := newSessionEvent(service.SessionEventTrialAppended, updated, nowMs)
	event.PerformedBy = input.PerformedBy.String()
	publishEvent(ctx, c.publisher, event)

	return &AppendTrialOutput{
		SessionID:       updated.ID().String(),
		TotalTrials:     updated.TotalTrials(),
		AccuracyPercent: updated.AccuracyPercent(),
	}, nil
}
