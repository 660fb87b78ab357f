package jwt

import "github.com/golang-jwt/jwt/v5"

// AccessTokenClaims はアクセストークンのクレームを定義します
// Subject と UserID は同じユーザーIDを指します
type AccessTokenClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Role   string `json:"role,omitempty"`
}

// Principal はトークン主体のユーザーIDを返します
func (c *AccessTokenClaims) Principal() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}
