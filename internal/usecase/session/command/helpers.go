package command

import (
	"context"
	"log/slog"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/entity"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/repository"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/service"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/apperror"
)

// loadSession はセッションIDを検証してセッションを取得します
func loadSession(ctx context.Context, repo repository.SessionRepository, rawID string) (*entity.Session, error) {
	id, err := valueobject.NewIdentifierFor("sessionId", rawID)
	if err != nil {
		return nil, err
	}
	session, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewSessionNotFoundError(id.String())
	}
	return session, nil
}

// publishEvent はドメインイベントを発行します。失敗はログに残すのみです
func publishEvent(ctx context.Context, publisher service.SessionEventPublisher, event service.SessionEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		slog.Warn("failed to publish session event",
			"error", err,
			"event_type", event.Type,
			"session_id", event.SessionID,
		)
	}
}

// newSessionEvent はセッションの現在状態からイベントを作成します
func newSessionEvent(eventType service.SessionEventType, s *entity.Session, occurredAtMs int64) service.SessionEvent {
	return service.SessionEvent{
		Type:            eventType,
		SessionID:       s.ID().String(),
		SlpID:           s.SlpID().String(),
		StudentID:       s.StudentID().String(),
		TotalTrials:     s.TotalTrials(),
		AccuracyPercent: s.AccuracyPercent(),
		OccurredAt:      valueobject.EpochMsToTime(occurredAtMs),
	}
}

func invalidPerformedBy(role valueobject.TurnRole) error {
	return apperror.NewValidationError("performedBy must be slp or student", []apperror.FieldError{{
		Field:   "performedBy",
		Code:    "INVALID_TURN_ROLE",
		Message: "performedBy must be slp or student",
		Context: map[string]any{"value": role.String()},
	}})
}
