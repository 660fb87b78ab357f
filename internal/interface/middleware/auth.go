package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/domain/valueobject"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/apperror"
)

const (
	ContextKeyUserID       = "user_id"
	ContextKeyUserRole     = "user_role"
	ContextKeyAccessClaims = "access_claims"
)

// GetUserID はコンテキストから認証済みユーザーIDを取得します
// 認証が無効な場合は空文字を返します
func GetUserID(c echo.Context) string {
	if id, ok := c.Get(ContextKeyUserID).(string); ok {
		return id
	}
	return ""
}

// GetUserRole はコンテキストからユーザーロールを取得します
func GetUserRole(c echo.Context) string {
	if role, ok := c.Get(ContextKeyUserRole).(string); ok {
		return role
	}
	return ""
}

// RequireActor は認証済みの場合に操作対象のユーザーが本人であることを確認します
// 認証が無効な場合は常に許可します
func RequireActor(c echo.Context, userID string) error {
	if GetUserID(c) == "" || IsActor(c, userID) {
		return nil
	}
	return apperror.NewForbiddenError("operation not permitted for this user")
}

// IsActor は認証済みユーザーが指定ユーザーと同一かを返します
// 識別子は正規化して比較し、どちらかが不正な場合は一致しません
func IsActor(c echo.Context, userID string) bool {
	return sameUser(GetUserID(c), userID)
}

// sameUser は2つのユーザーIDが同じ識別子を指すかを返します
func sameUser(a, b string) bool {
	idA, err := valueobject.NewIdentifier(a)
	if err != nil {
		return false
	}
	idB, err := valueobject.NewIdentifier(b)
	if err != nil {
		return false
	}
	return idA.Equals(idB)
}
