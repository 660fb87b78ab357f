package valueobject

import "github.com/demianvselko/empatspeech-demo-sub000/pkg/apperror"

// 値オブジェクトのバリデーションエラーコード
const (
	CodeInvalidIdentifier     = "INVALID_IDENTIFIER"
	CodeInvalidTimestamp      = "INVALID_TIMESTAMP"
	CodeTimestampInFuture     = "TIMESTAMP_IN_FUTURE"
	CodeStringTooShort        = "STRING_TOO_SHORT"
	CodeStringTooLong         = "STRING_TOO_LONG"
	CodeStringPatternMismatch = "STRING_PATTERN_MISMATCH"
	CodeInvalidSeed           = "INVALID_SEED"
	CodeInvalidEmail          = "INVALID_EMAIL"
	CodeInvalidRole           = "INVALID_ROLE"
)

// invalid はフィールド付きのバリデーションエラーを作成します
func invalid(field, code, message string, context map[string]any) error {
	return apperror.NewValidationError(message, []apperror.FieldError{{
		Field:   field,
		Code:    code,
		Message: message,
		Context: context,
	}})
}
