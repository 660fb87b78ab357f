package apperror

// Collect は複数のエラーを1つのバリデーションエラーにまとめます
// nilは無視し、全てnilの場合はnilを返します。順序は引数順に保たれます
func Collect(errs ...error) error {
	var details []FieldError
	var first *AppError
	for _, err := range errs {
		if err == nil {
			continue
		}
		appErr := AsAppError(err)
		if first == nil {
			first = appErr
		}
		details = append(details, appErr.Errors()...)
	}
	if first == nil {
		return nil
	}
	if len(details) == 1 {
		return first
	}
	return NewValidationError("validation failed", details)
}
