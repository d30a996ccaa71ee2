package auth

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthUser is the authenticated identity extracted from the JWT.
type AuthUser struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type contextKey string

const userContextKey contextKey = "authenticated_user"

// JWTConfig holds the configuration for JWT middleware
type JWTConfig struct {
	Secret    string
	Logger    *zap.Logger
	SkipPaths []string // Paths to skip JWT validation
}

// JWTMiddleware validates HMAC-signed bearer tokens and stores the
// authenticated user on the echo context. The webhook route must be in
// SkipPaths: the provider authenticates with its signature header, not a JWT.
func JWTMiddleware(config JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			for _, skipPath := range config.SkipPaths {
				if strings.HasPrefix(path, skipPath) {
					return next(c)
				}
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				config.Logger.Warn("missing authorization header",
					zap.String("path", path),
					zap.String("method", c.Request().Method))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Authorization header required",
					"code":  "MISSING_AUTH_HEADER",
				})
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				config.Logger.Warn("invalid authorization header format",
					zap.String("path", path))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Invalid authorization header format. Expected: Bearer <token>",
					"code":  "INVALID_AUTH_FORMAT",
				})
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(config.Secret), nil
			})
			if err != nil {
				config.Logger.Warn("JWT validation failed",
					zap.Error(err),
					zap.String("path", path))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Invalid or expired token",
					"code":  "INVALID_TOKEN",
				})
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok || !token.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Invalid token claims",
					"code":  "INVALID_TOKEN",
				})
			}

			user, err := userFromClaims(claims)
			if err != nil {
				config.Logger.Warn("JWT claims missing user identity",
					zap.Error(err),
					zap.String("path", path))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Token does not identify a user",
					"code":  "INVALID_TOKEN",
				})
			}

			c.Set(string(userContextKey), user)
			return next(c)
		}
	}
}

// userFromClaims reads the user identity out of the token. The subject may be
// either a JSON number or a numeric string depending on the issuer.
func userFromClaims(claims jwt.MapClaims) (*AuthUser, error) {
	sub, ok := claims["sub"]
	if !ok {
		return nil, fmt.Errorf("sub claim is missing")
	}

	var userID int64
	switch v := sub.(type) {
	case float64:
		userID = int64(v)
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("sub claim is not a user ID: %w", err)
		}
		userID = parsed
	default:
		return nil, fmt.Errorf("sub claim has unexpected type %T", sub)
	}
	if userID <= 0 {
		return nil, fmt.Errorf("sub claim is not a valid user ID")
	}

	user := &AuthUser{UserID: userID}
	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		user.Role = role
	}
	return user, nil
}

// GetAuthUser returns the authenticated user stored by JWTMiddleware, or nil
// on unauthenticated routes.
func GetAuthUser(c echo.Context) *AuthUser {
	user, ok := c.Get(string(userContextKey)).(*AuthUser)
	if !ok {
		return nil
	}
	return user
}

// RequireRole returns middleware that rejects users without one of the given
// roles. It must run after JWTMiddleware.
func RequireRole(logger *zap.Logger, roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := GetAuthUser(c)
			if user == nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Authentication required",
					"code":  "UNAUTHENTICATED",
				})
			}
			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			logger.Warn("role check failed",
				zap.Int64("user_id", user.UserID),
				zap.String("role", user.Role),
				zap.String("path", c.Request().URL.Path))
			return c.JSON(http.StatusForbidden, echo.Map{
				"error": "Insufficient permissions",
				"code":  "FORBIDDEN",
			})
		}
	}
}
