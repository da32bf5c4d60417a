package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"parley/models"

	"github.com/stretchr/testify/assert"
)

func TestTokenFromRequest(t *testing.T) {
	t.Run("bearer header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer abc123")
		assert.Equal(t, "abc123", TokenFromRequest(r))
	})

	t.Run("session cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "cookie-token"})
		assert.Equal(t, "cookie-token", TokenFromRequest(r))
	})

	t.Run("header wins over cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer header-token")
		r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "cookie-token"})
		assert.Equal(t, "header-token", TokenFromRequest(r))
	})

	t.Run("non-bearer scheme ignored", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		assert.Empty(t, TokenFromRequest(r))
	})

	t.Run("absent", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Empty(t, TokenFromRequest(r))
	})
}

func TestUserContextRoundTrip(t *testing.T) {
	_, ok := GetUserFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithUser(context.Background(), models.User{ID: 7, Username: "alice"})
	user, ok := GetUserFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "alice", user.Username)
}
