package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode はエラーコードを表します
type ErrorCode string

const (
	CodeValidationError    ErrorCode = "VALIDATION_ERROR"
	CodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeConflict           ErrorCode = "CONFLICT"
	CodeRateLimitExceeded  ErrorCode = "RATE_LIMIT_EXCEEDED"
	CodeInternalError      ErrorCode = "INTERNAL_ERROR"
	CodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"

	// セッションのドメインルール違反
	CodeSessionNotFound        ErrorCode = "SESSION_NOT_FOUND"
	CodeSameParticipant        ErrorCode = "SAME_PARTICIPANT"
	CodeInvalidSeed            ErrorCode = "INVALID_SEED"
	CodeSessionAlreadyFinished ErrorCode = "SESSION_ALREADY_FINISHED"
	CodeRoleMismatch           ErrorCode = "ROLE_MISMATCH"
	CodeNotParticipant         ErrorCode = "NOT_PARTICIPANT"
	CodeNotYourTurn            ErrorCode = "NOT_YOUR_TURN"
)

// AppError はアプリケーションエラーを表します
type AppError struct {
	Code       ErrorCode    `json:"code"`
	Message    string       `json:"message"`
	Details    []FieldError `json:"details,omitempty"`
	HTTPStatus int          `json:"-"`
	Err        error        `json:"-"`
}

// FieldError は型付きのフィールドエラーを表します
type FieldError struct {
	Field   string         `json:"field,omitempty"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Context map[string]any `json:"context,omitempty"`
}

// Error はerrorインターフェースを実装します
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap は元のエラーを返します
func (e *AppError) Unwrap() error {
	return e.Err
}

// Errors は失敗を構成するエラー一覧を返します
// Detailsが空の場合はエラー自身を1件として返すため、結果は常に1件以上になります
func (e *AppError) Errors() []FieldError {
	if len(e.Details) > 0 {
		return e.Details
	}
	return []FieldError{{Code: string(e.Code), Message: e.Message}}
}

// NewValidationError はバリデーションエラーを作成します
func NewValidationError(message string, details []FieldError) *AppError {
	return &AppError{
		Code:       CodeValidationError,
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewFieldValidationError は単一フィールドのバリデーションエラーを作成します
func NewFieldValidationError(field, code, message string) *AppError {
	return NewValidationError(message, []FieldError{{Field: field, Code: code, Message: message}})
}

// NewInvalidRequestError は不正リクエストエラーを作成します
func NewInvalidRequestError(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidRequest,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewUnauthorizedError は認証エラーを作成します
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewForbiddenError は権限エラーを作成します
func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewNotFoundError はリソース不在エラーを作成します
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewConflictError は競合エラーを作成します
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// NewTooManyRequestsError はレート制限エラーを作成します
func NewTooManyRequestsError(message string) *AppError {
	return &AppError{
		Code:       CodeRateLimitExceeded,
		Message:    message,
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// NewInternalError は内部エラーを作成します
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:       CodeInternalError,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewServiceUnavailableError はサービス利用不可エラーを作成します
func NewServiceUnavailableError(message string) *AppError {
	return &AppError{
		Code:       CodeServiceUnavailable,
		Message:    message,
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// NewSessionNotFoundError はセッション不在エラーを作成します
// 所有者不一致の場合も存在を漏らさないためこのエラーを使います
func NewSessionNotFoundError(sessionID string) *AppError {
	return &AppError{
		Code:       CodeSessionNotFound,
		Message:    "session not found",
		Details:    []FieldError{{Field: "sessionId", Code: string(CodeSessionNotFound), Message: "session not found", Context: map[string]any{"sessionId": sessionID}}},
		HTTPStatus: http.StatusNotFound,
	}
}

// NewSameParticipantError はSLPと生徒が同一の場合のエラーを作成します
func NewSameParticipantError() *AppError {
	return &AppError{
		Code:       CodeSameParticipant,
		Message:    "slp and student must be different users",
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// NewInvalidSeedError は不正なシード値のエラーを作成します
func NewInvalidSeedError(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidSeed,
		Message:    message,
		Details:    []FieldError{{Field: "seed", Code: string(CodeInvalidSeed), Message: message}},
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewSessionAlreadyFinishedError は終了済みセッションのエラーを作成します
func NewSessionAlreadyFinishedError(sessionID string) *AppError {
	return &AppError{
		Code:       CodeSessionAlreadyFinished,
		Message:    "session already finished",
		Details:    []FieldError{{Field: "sessionId", Code: string(CodeSessionAlreadyFinished), Message: "session already finished", Context: map[string]any{"sessionId": sessionID}}},
		HTTPStatus: http.StatusConflict,
	}
}

// NewRoleMismatchError はユーザーロール不一致のエラーを作成します
func NewRoleMismatchError(expected, actual string) *AppError {
	return &AppError{
		Code:       CodeRoleMismatch,
		Message:    fmt.Sprintf("expected role %s, got %s", expected, actual),
		Details:    []FieldError{{Field: "role", Code: string(CodeRoleMismatch), Message: "role mismatch", Context: map[string]any{"expected": expected, "actual": actual}}},
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// NewNotParticipantError はセッション参加者でない場合のエラーを作成します
func NewNotParticipantError() *AppError {
	return &AppError{
		Code:       CodeNotParticipant,
		Message:    "user is not a participant of this session",
		HTTPStatus: http.StatusForbidden,
	}
}

// NewNotYourTurnError は手番でない場合のエラーを作成します
func NewNotYourTurnError(currentTurn string) *AppError {
	return &AppError{
		Code:       CodeNotYourTurn,
		Message:    "not your turn",
		Details:    []FieldError{{Code: string(CodeNotYourTurn), Message: "not your turn", Context: map[string]any{"currentTurn": currentTurn}}},
		HTTPStatus: http.StatusConflict,
	}
}

// HasCode はエラーが特定のコードかどうかを判定します
func (e *AppError) HasCode(code ErrorCode) bool {
	return e.Code == code
}

// CodeOf はエラーのコードを返します（AppError以外は空文字）
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsNotFound はリソース不在エラーかどうかを判定します
func IsNotFound(err error) bool {
	code := CodeOf(err)
	return code == CodeNotFound || code == CodeSessionNotFound
}

// IsUnauthorized は認証エラーかどうかを判定します
func IsUnauthorized(err error) bool {
	return CodeOf(err) == CodeUnauthorized
}

// IsForbidden は権限エラーかどうかを判定します
func IsForbidden(err error) bool {
	return CodeOf(err) == CodeForbidden
}

// AsAppError はエラーをAppErrorに変換します
// AppErrorでない場合は内部エラーとして包みます
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(err)
}
