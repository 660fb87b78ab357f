package valueobject

import (
	"net/mail"
	"strings"
)

const EmailMaxLength = 255

// Email はメールアドレスを表す値オブジェクトです
type Email struct {
	value string
}

// NewEmail は新しいEmailを作成します
func NewEmail(value string) (Email, error) {
	value = strings.TrimSpace(strings.ToLower(value))

	if value == "" {
		return Email{}, invalid("email", CodeInvalidEmail, "email cannot be empty", nil)
	}

	if len(value) > EmailMaxLength {
		return Email{}, invalid("email", CodeInvalidEmail, "email must be at most 255 characters", nil)
	}

	// RFC 5322に準拠したメールアドレスの検証（表示名付きは不可）
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return Email{}, invalid("email", CodeInvalidEmail, "invalid email format", map[string]any{"value": value})
	}

	return Email{value: value}, nil
}

// String はメールアドレスを文字列で返します
func (e Email) String() string {
	return e.value
}

// Equals は2つのEmailが等しいかを判定します
func (e Email) Equals(other Email) bool {
	return e.value == other.value
}

// Domain はメールアドレスのドメイン部分を返します
func (e Email) Domain() string {
	parts := strings.Split(e.value, "@")
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}
