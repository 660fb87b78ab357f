package command

import (
	"context"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/entity"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/repository"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/service"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/apperror"
)

// CreateSessionInput はセッション作成の入力を定義します
type CreateSessionInput struct {
	SlpID     string
	StudentID string
	// Seed はJSON数値をそのまま受け取り、整数かどうかをここで検証します
	Seed  *float64
	Notes *string
}

// CreateSessionOutput はセッション作成の出力を定義します
type CreateSessionOutput struct {
	SessionID    string
	Seed         int64
	CreatedAtISO string
}

// CreateSessionCommand はセッション作成コマンドです
type CreateSessionCommand struct {
	sessionRepo repository.SessionRepository
	factory     *entity.SessionFactory
	publisher   service.SessionEventPublisher
}

// NewCreateSessionCommand は新しいCreateSessionCommandを作成します
func NewCreateSessionCommand(
	sessionRepo repository.SessionRepository,
	factory *entity.SessionFactory,
	publisher service.SessionEventPublisher,
) *CreateSessionCommand {
	return &CreateSessionCommand{
		sessionRepo: sessionRepo,
		factory:     factory,
		publisher:   publisher,
	}
}

// Execute はセッション作成を実行します
func (c *CreateSessionCommand) Execute(ctx context.Context, input CreateSessionInput) (*CreateSessionOutput, error) {
	// 1. 識別子のバリデーション
	slpID, err := valueobject.NewIdentifierFor("slpId", input.SlpID)
	if err != nil {
		return nil, err
	}
	studentID, err := valueobject.NewIdentifierFor("studentId", input.StudentID)
	if err != nil {
		return nil, err
	}

	// 2. SLPと生徒は別ユーザーでなければならない
	if slpID.Equals(studentID) {
		return nil, apperror.NewSameParticipantError()
	}

	// 3. シード値のバリデーション
	var seed *int64
	if input.Seed != nil {
		s, err := valueobject.SeedFromFloat(*input.Seed)
		if err != nil {
			return nil, apperror.NewInvalidSeedError("seed must be a finite non-negative integer")
		}
		v := s.Value()
		seed = &v
	}

	// 4. 集約の生成
	session, err := c.factory.NewQuick(entity.NewQuickInput{
		SlpID:     slpID.String(),
		StudentID: studentID.String(),
		Seed:      seed,
		Notes:     input.Notes,
	})
	if err != nil {
		return nil, err
	}

	// 5. 保存
	if err := c.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	publishEvent(ctx, c.publisher, newSessionEvent(service.SessionEventCreated, session, session.CreatedAt().Time().UnixMilli()))

	return &CreateSessionOutput{
		SessionID:    session.ID().String(),
		Seed:         session.Seed().Value(),
		CreatedAtISO: session.CreatedAt().ISO(),
	}, nil
}
