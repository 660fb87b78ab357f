package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/apperror"
)

// CustomValidator はEcho用のカスタムバリデーターです
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator は新しいCustomValidatorを作成します
func NewCustomValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// エラーのフィールド名はJSONの名前を使う
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(f.Tag.Get("query"), ",", 2)[0]
		}
		if name == "" {
			name = strings.SplitN(f.Tag.Get("param"), ",", 2)[0]
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	// カスタムバリデーション登録
	_ = v.RegisterValidation("turnrole", validateTurnRole)

	return &CustomValidator{validator: v}
}

// Validate はリクエストを検証します
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// formatValidationErrors はバリデーションエラーをフォーマットします
func formatValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperror.NewInvalidRequestError(err.Error())
	}

	details := make([]apperror.FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		fe := apperror.FieldError{
			Field:   e.Field(),
			Code:    validationCode(e),
			Message: validationMessage(e),
		}
		if e.Param() != "" {
			fe.Context = map[string]any{"param": e.Param()}
		}
		details = append(details, fe)
	}

	return apperror.NewValidationError("validation failed", details)
}

// validateTurnRole は手番ロール（slp/student）のバリデーション
func validateTurnRole(fl validator.FieldLevel) bool {
	_, ok := valueobject.ParseTurnRole(fl.Field().String())
	return ok
}

// validationCode はタグからエラーコードを返します
func validationCode(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "REQUIRED"
	case "uuid4", "uuid":
		return valueobject.CodeInvalidIdentifier
	case "max":
		return valueobject.CodeStringTooLong
	case "min":
		return valueobject.CodeStringTooShort
	case "turnrole":
		return "INVALID_TURN_ROLE"
	default:
		return "INVALID_VALUE"
	}
}

// validationMessage はバリデーションエラーメッセージを返します
func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "uuid", "uuid4":
		return "must be a valid uuid v4"
	case "turnrole":
		return "must be one of: slp student"
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	default:
		return "validation failed"
	}
}
