package gateway

import (
	"encoding/json"
	"errors"

	"github.com/demianvselko/empatspeech-demo-sub000/pkg/apperror"
)

// 受信イベント
const (
	EventJoin   = "session:join"
	EventMove   = "game:move"
	EventNote   = "session:note"
	EventFinish = "session:finish"
)

// 送信イベント
const (
	EventState = "game:state"
	EventError = "error"
)

// Envelope はWebSocketフレームの共通形式です
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// JoinPayload は session:join のペイロードです
type JoinPayload struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
}

// MovePayload は game:move のペイロードです
type MovePayload struct {
	SessionID string   `json:"sessionId"`
	UserID    string   `json:"userId"`
	Correct   *bool    `json:"correct"`
	Cards     []string `json:"cards,omitempty"`
}

// NotePayload は session:note のペイロードです
type NotePayload struct {
	SessionID string  `json:"sessionId"`
	UserID    string  `json:"userId"`
	Notes     *string `json:"notes,omitempty"`
}

// FinishPayload は session:finish のペイロードです
type FinishPayload struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
}

// ErrorItem はエラー通知の1件です
type ErrorItem struct {
	Field   string         `json:"field,omitempty"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Context map[string]any `json:"context,omitempty"`
}

// ErrorPayload は error イベントのペイロードです
// 分類済みのエラーは errors、それ以外は message のみを返します
type ErrorPayload struct {
	Message string      `json:"message,omitempty"`
	Errors  []ErrorItem `json:"errors,omitempty"`
}

var errUnknownEvent = errors.New("unknown event")

// encodeFrame はイベントをフレームにエンコードします
func encodeFrame(event string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: raw})
}

// errorPayloadFrom はエラーを送信用ペイロードに変換します
// 内部エラーの詳細はクライアントに出しません
func errorPayloadFrom(err error) ErrorPayload {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code == apperror.CodeInternalError || apperror.IsInfrastructure(appErr) {
		return ErrorPayload{Message: "internal server error"}
	}

	details := appErr.Errors()
	items := make([]ErrorItem, len(details))
	for i, d := range details {
		items[i] = ErrorItem{Field: d.Field, Code: d.Code, Message: d.Message, Context: d.Context}
	}
	return ErrorPayload{Errors: items}
}

// validateCards はカード指定を検証します
// 指定する場合は空でない異なる2枚でなければなりません
func validateCards(cards []string) error {
	if cards == nil {
		return nil
	}
	if len(cards) != 2 {
		return apperror.NewValidationError("cards must contain exactly two card ids", []apperror.FieldError{{
			Field:   "cards",
			Code:    "INVALID_CARDS",
			Message: "cards must contain exactly two card ids",
			Context: map[string]any{"count": len(cards)},
		}})
	}
	if cards[0] == "" || cards[1] == "" {
		return apperror.NewFieldValidationError("cards", "INVALID_CARDS", "card ids must not be empty")
	}
	if cards[0] == cards[1] {
		return apperror.NewFieldValidationError("cards", "INVALID_CARDS", "card ids must be distinct")
	}
	return nil
}
