package service

import (
	"context"
	"time"
)

// SessionEventType はセッションのドメインイベント種別です
type SessionEventType string

const (
	SessionEventCreated       SessionEventType = "session.created"
	SessionEventTrialAppended SessionEventType = "session.trial_appended"
	SessionEventFinished      SessionEventType = "session.finished"
)

// SessionEvent はセッションの状態変化を通知するイベントです
type SessionEvent struct {
	Type            SessionEventType `json:"type"`
	SessionID       string           `json:"sessionId"`
	SlpID           string           `json:"slpId"`
	StudentID       string           `json:"studentId"`
	TotalTrials     int              `json:"totalTrials"`
	AccuracyPercent int              `json:"accuracyPercent"`
	PerformedBy     string           `json:"performedBy,omitempty"`
	OccurredAt      time.Time        `json:"occurredAt"`
}

// SessionEventPublisher はセッションイベントの発行ポートです
// 発行の失敗はユースケースを失敗させません
type SessionEventPublisher interface {
	Publish(ctx context.Context, event SessionEvent) error
}
