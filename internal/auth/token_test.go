package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("user-1", "ada@example.com", RoleUser)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "USER", claims.Role)
}

func TestGenerateJWT_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := GenerateJWT("user-1", "ada@example.com", RoleUser)
	assert.Error(t, err)
}

func TestParseJWT_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	token, err := GenerateJWT("user-1", "ada@example.com", RoleAdmin)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret-b")
	_, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestParseJWT_Garbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := ParseJWT("not.a.token")
	assert.Error(t, err)
}

func TestExtractAccessToken(t *testing.T) {
	t.Run("FromCookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie-token"})

		assert.Equal(t, "cookie-token", ExtractAccessToken(r))
	})

	t.Run("FromBearerHeader", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer header-token")

		assert.Equal(t, "header-token", ExtractAccessToken(r))
	})

	t.Run("CookieWinsOverHeader", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie-token"})
		r.Header.Set("Authorization", "Bearer header-token")

		assert.Equal(t, "cookie-token", ExtractAccessToken(r))
	})

	t.Run("Absent", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Equal(t, "", ExtractAccessToken(r))
	})
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hashed)

	assert.True(t, CheckPasswordHash("secret123", hashed))
	assert.False(t, CheckPasswordHash("wrong", hashed))
}
