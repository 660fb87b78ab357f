package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/demianvselko/empatspeech-demo-sub000/pkg/apperror"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/jwt"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/logger"
)

// TokenVerifier はアクセストークンを検証します
type TokenVerifier interface {
	ValidateAccessToken(token string) (*jwt.AccessTokenClaims, error)
}

// JWTAuthMiddleware はJWT認証ミドルウェアを提供します
type JWTAuthMiddleware struct {
	verifier TokenVerifier
}

// NewJWTAuthMiddleware は新しいJWTAuthMiddlewareを作成します
// verifierがnilの場合は認証を行いません
func NewJWTAuthMiddleware(verifier TokenVerifier) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{verifier: verifier}
}

// Enabled は認証が有効かを返します
func (m *JWTAuthMiddleware) Enabled() bool {
	return m != nil && m.verifier != nil
}

// Authenticate は認証ミドルウェアを返します
func (m *JWTAuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !m.Enabled() {
				return next(c)
			}

			token, err := extractToken(c)
			if err != nil {
				return err
			}

			claims, err := m.verifier.ValidateAccessToken(token)
			if err != nil {
				return apperror.NewUnauthorizedError("invalid or expired token")
			}

			userID := claims.Principal()
			c.Set(ContextKeyUserID, userID)
			c.Set(ContextKeyUserRole, claims.Role)
			c.Set(ContextKeyAccessClaims, claims)

			// リクエストコンテキストにも設定（ログで使用）
			ctx := logger.ContextWithUserID(c.Request().Context(), userID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// extractToken はBearerヘッダー、なければtokenクエリからトークンを取り出します
func extractToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		if token := c.QueryParam("token"); token != "" {
			return token, nil
		}
		return "", apperror.NewUnauthorizedError("authorization header required")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", apperror.NewUnauthorizedError("invalid authorization header format")
	}
	return strings.TrimSpace(parts[1]), nil
}
