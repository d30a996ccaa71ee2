package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return signed
}

func validToken(t *testing.T, userID int64, email, role string) string {
	return signToken(t, jwt.MapClaims{
		"sub":   float64(userID),
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	})
}

func runMiddleware(t *testing.T, config JWTConfig, path, authHeader string) (*httptest.ResponseRecorder, *AuthUser) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured *AuthUser
	handler := JWTMiddleware(config)(func(c echo.Context) error {
		captured = GetAuthUser(c)
		return c.NoContent(http.StatusOK)
	})

	err := handler(c)
	assert.NoError(t, err)
	return rec, captured
}

func TestJWTMiddleware_SuccessfulAuthentication(t *testing.T) {
	config := JWTConfig{Secret: testSecret, Logger: zap.NewNop()}
	token := validToken(t, 42, "student@campus.edu", "student")

	rec, user := runMiddleware(t, config, "/api/v1/clubs", "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, user)
	assert.Equal(t, int64(42), user.UserID)
	assert.Equal(t, "student@campus.edu", user.Email)
	assert.Equal(t, "student", user.Role)
}

func TestJWTMiddleware_StringSubjectClaim(t *testing.T) {
	config := JWTConfig{Secret: testSecret, Logger: zap.NewNop()}
	token := signToken(t, jwt.MapClaims{
		"sub": "7",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	rec, user := runMiddleware(t, config, "/api/v1/clubs", "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, user)
	assert.Equal(t, int64(7), user.UserID)
}

func TestJWTMiddleware_MissingAuthorizationHeader(t *testing.T) {
	config := JWTConfig{Secret: testSecret, Logger: zap.NewNop()}

	rec, user := runMiddleware(t, config, "/api/v1/clubs", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, user)
	assert.Contains(t, rec.Body.String(), "MISSING_AUTH_HEADER")
}

func TestJWTMiddleware_MalformedHeader(t *testing.T) {
	config := JWTConfig{Secret: testSecret, Logger: zap.NewNop()}

	rec, user := runMiddleware(t, config, "/api/v1/clubs", "Token abc")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, user)
	assert.Contains(t, rec.Body.String(), "INVALID_AUTH_FORMAT")
}

func TestJWTMiddleware_WrongSecret(t *testing.T) {
	config := JWTConfig{Secret: "other-secret", Logger: zap.NewNop()}
	token := validToken(t, 42, "student@campus.edu", "student")

	rec, user := runMiddleware(t, config, "/api/v1/clubs", "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, user)
	assert.Contains(t, rec.Body.String(), "INVALID_TOKEN")
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	config := JWTConfig{Secret: testSecret, Logger: zap.NewNop()}
	token := signToken(t, jwt.MapClaims{
		"sub": float64(42),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	rec, _ := runMiddleware(t, config, "/api/v1/clubs", "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddleware_MissingSubjectClaim(t *testing.T) {
	config := JWTConfig{Secret: testSecret, Logger: zap.NewNop()}
	token := signToken(t, jwt.MapClaims{
		"email": "student@campus.edu",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	rec, user := runMiddleware(t, config, "/api/v1/clubs", "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, user)
}

func TestJWTMiddleware_SkipPaths(t *testing.T) {
	config := JWTConfig{
		Secret:    testSecret,
		Logger:    zap.NewNop(),
		SkipPaths: []string{"/webhook", "/health"},
	}

	rec, user := runMiddleware(t, config, "/webhook", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, user)
}

func TestRequireRole(t *testing.T) {
	e := echo.New()

	newContext := func(user *AuthUser) (echo.Context, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/clubs", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if user != nil {
			c.Set(string(userContextKey), user)
		}
		return c, rec
	}

	handler := RequireRole(zap.NewNop(), "admin", "club_admin")(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	t.Run("allows matching role", func(t *testing.T) {
		c, rec := newContext(&AuthUser{UserID: 1, Role: "club_admin"})
		assert.NoError(t, handler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects other role", func(t *testing.T) {
		c, rec := newContext(&AuthUser{UserID: 2, Role: "student"})
		assert.NoError(t, handler(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("rejects unauthenticated", func(t *testing.T) {
		c, rec := newContext(nil)
		assert.NoError(t, handler(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
