package messaging

import (
	"context"
	"log/slog"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/service"
)

// NoopPublisher はブローカー未設定時に使う発行者です。イベントはデバッグログに出すだけです
type NoopPublisher struct{}

var _ service.SessionEventPublisher = NoopPublisher{}

// Publish はイベントを破棄します
func (NoopPublisher) Publish(ctx context.Context, event service.SessionEvent) error {
	slog.DebugContext(ctx, "session event dropped (no broker configured)",
		"event_type", event.Type,
		"session_id", event.SessionID,
	)
	return nil
}

// Close は何もしません
func (NoopPublisher) Close() error { return nil }
