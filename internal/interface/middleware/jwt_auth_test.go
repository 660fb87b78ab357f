package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demianvselko/empatspeech-demo-sub000/pkg/apperror"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/jwt"
)

type stubVerifier struct {
	claims *jwt.AccessTokenClaims
	err    error
	got    string
}

func (s *stubVerifier) ValidateAccessToken(token string) (*jwt.AccessTokenClaims, error) {
	s.got = token
	return s.claims, s.err
}

func setupAuthTest(target, authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, GetUserID(c))
}

func TestJWTAuth_DisabledPassesThrough(t *testing.T) {
	c, rec := setupAuthTest("/test", "")

	m := NewJWTAuthMiddleware(nil)
	require.NoError(t, m.Authenticate()(okHandler)(c))

	assert.False(t, m.Enabled())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestJWTAuth_BearerToken(t *testing.T) {
	c, rec := setupAuthTest("/test", "Bearer abc.def.ghi")
	verifier := &stubVerifier{claims: &jwt.AccessTokenClaims{UserID: "user-1", Role: "teacher"}}

	require.NoError(t, NewJWTAuthMiddleware(verifier).Authenticate()(okHandler)(c))

	assert.Equal(t, "abc.def.ghi", verifier.got)
	assert.Equal(t, "user-1", rec.Body.String())
	assert.Equal(t, "teacher", GetUserRole(c))
}

func TestJWTAuth_QueryToken(t *testing.T) {
	c, _ := setupAuthTest("/test?token=from-query", "")
	verifier := &stubVerifier{claims: &jwt.AccessTokenClaims{UserID: "user-2"}}

	require.NoError(t, NewJWTAuthMiddleware(verifier).Authenticate()(okHandler)(c))
	assert.Equal(t, "from-query", verifier.got)
}

func TestJWTAuth_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		verifier *stubVerifier
	}{
		{name: "missing header", header: "", verifier: &stubVerifier{}},
		{name: "wrong scheme", header: "Basic abc", verifier: &stubVerifier{}},
		{name: "empty bearer", header: "Bearer   ", verifier: &stubVerifier{}},
		{name: "invalid token", header: "Bearer bad", verifier: &stubVerifier{err: errors.New("boom")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := setupAuthTest("/test", tt.header)

			err := NewJWTAuthMiddleware(tt.verifier).Authenticate()(okHandler)(c)

			require.Error(t, err)
			assert.True(t, apperror.IsUnauthorized(err))
			assert.Empty(t, GetUserID(c))
		})
	}
}

func TestRequireActor(t *testing.T) {
	const actor = "5f0c8a9e-3b1d-4c2a-9f7e-1a2b3c4d5e6f"

	c, _ := setupAuthTest("/test", "")
	assert.NoError(t, RequireActor(c, "anyone"), "unauthenticated requests are not restricted")

	c.Set(ContextKeyUserID, actor)
	tests := []struct {
		name      string
		target    string
		forbidden bool
	}{
		{name: "same id", target: actor},
		{name: "uppercase id", target: strings.ToUpper(actor)},
		{name: "padded id", target: " " + actor + " "},
		{name: "other user", target: "0b6f1d2e-7c3a-4e5b-8a9d-2f4e6c8b0a1d", forbidden: true},
		{name: "malformed id", target: "user-1", forbidden: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireActor(c, tt.target)
			if tt.forbidden {
				assert.True(t, apperror.IsForbidden(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRequireActor_UppercaseTokenSubject(t *testing.T) {
	c, _ := setupAuthTest("/test", "")
	c.Set(ContextKeyUserID, "5F0C8A9E-3B1D-4C2A-9F7E-1A2B3C4D5E6F")

	assert.NoError(t, RequireActor(c, "5f0c8a9e-3b1d-4c2a-9f7e-1a2b3c4d5e6f"))
}
