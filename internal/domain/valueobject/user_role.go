package valueobject

import "errors"

var ErrInvalidUserRole = errors.New("invalid user role")

// UserRole はユーザーのロールを表す値オブジェクトです
type UserRole string

const (
	UserRoleTeacher UserRole = "teacher"
	UserRoleStudent UserRole = "student"
)

// NewUserRole は文字列からUserRoleを生成します
func NewUserRole(role string) (UserRole, error) {
	r := UserRole(role)
	if !r.IsValid() {
		return "", invalid("role", CodeInvalidRole, ErrInvalidUserRole.Error(), map[string]any{"value": role})
	}
	return r, nil
}

// IsValid はロールが有効かを判定します
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleTeacher, UserRoleStudent:
		return true
	default:
		return false
	}
}

// String は文字列を返します
func (r UserRole) String() string {
	return string(r)
}
