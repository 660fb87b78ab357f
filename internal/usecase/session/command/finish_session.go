package command

import (
	"context"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/entity"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/repository"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/service"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/apperror"
)

// FinishSessionInput はセッション終了の入力を定義します
type FinishSessionInput struct {
	SessionID string
}

// FinishSessionOutput はセッション終了の出力を定義します
type FinishSessionOutput struct {
	SessionID     string
	FinishedAtISO string
}

// FinishSessionCommand はセッション終了コマンドです
type FinishSessionCommand struct {
	sessionRepo repository.SessionRepository
	txManager   repository.TransactionManager
	clock       service.Clock
	publisher   service.SessionEventPublisher
}

// NewFinishSessionCommand は新しいFinishSessionCommandを作成します
func NewFinishSessionCommand(
	sessionRepo repository.SessionRepository,
	txManager repository.TransactionManager,
	clock service.Clock,
	publisher service.SessionEventPublisher,
) *FinishSessionCommand {
	return &FinishSessionCommand{
		sessionRepo: sessionRepo,
		txManager:   txManager,
		clock:       clock,
		publisher:   publisher,
	}
}

// Execute はセッション終了を実行します
func (c *FinishSessionCommand) Execute(ctx context.Context, input FinishSessionInput) (*FinishSessionOutput, error) {
	var finished *entity.Session
	var nowMs int64
	err := c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		session, err := loadSession(ctx, c.sessionRepo, input.SessionID)
		if err != nil {
			return err
		}

		// 終了は一度だけ
		if session.IsFinished() {
			return apperror.NewSessionAlreadyFinishedError(session.ID().String())
		}

		nowMs = c.clock.NowEpochMs()
		now := valueobject.EpochMsToTime(nowMs)
		finishedAt, err := valueobject.NewFinishedAt(now, now)
		if err != nil {
			return err
		}

		finished = session.Finish(finishedAt)
		return c.sessionRepo.Save(ctx, finished)
	})
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, c.publisher, newSessionEvent(service.SessionEventFinished, finished, nowMs))

	return &FinishSessionOutput{
		SessionID:     finished.ID().String(),
		FinishedAtISO: finished.FinishedAt().ISO(),
	}, nil
}
