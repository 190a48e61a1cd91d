package middleware

import (
	"errors"
	"strings"

	"learnpath/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	CtxSessionIDKey = "session_id"
	CtxUserIDKey    = "user_id"
	CtxEmailKey     = "email"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// Middleware requires a valid access token in the Authorization header.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
		if err := m.authenticate(c, token); err != nil {
			return err
		}
		return c.Next()
	}
}

// QueryMiddleware is Middleware for clients that cannot set headers, such
// as browser websockets; the token may also come from the token query
// parameter.
func (m *AuthMiddleware) QueryMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get("Authorization"))
		if !ok {
			token = strings.TrimSpace(c.Query("token"))
		}
		if token == "" {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
		if err := m.authenticate(c, token); err != nil {
			return err
		}
		return c.Next()
	}
}

// OptionalMiddleware records the session of a valid access token and lets
// requests without one, or with an invalid one, through anonymously.
func (m *AuthMiddleware) OptionalMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if token, ok := BearerToken(c.Get("Authorization")); ok {
			_ = m.authenticate(c, token)
		}
		return c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c fiber.Ctx, token string) error {
	claims, err := m.jwt.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
		}
		return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
	}
	if claims.TokenType != jwt.TokenTypeAccess || m.jwt.IsRefreshToken(claims) {
		return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, nil)
	}

	c.Locals(CtxSessionIDKey, claims.SessionID)
	c.Locals(CtxUserIDKey, claims.UserID)
	c.Locals(CtxEmailKey, claims.Email)
	return nil
}

// SessionID returns the session recorded by the auth middleware, or uuid.Nil.
func SessionID(c fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(CtxSessionIDKey).(uuid.UUID)
	return id
}

func BearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
