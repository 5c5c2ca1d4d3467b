package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kalakar/casting-api/internal/core/domain"
)

const (
	sessionKey = "session"
	tokenKey   = "token"
)

// SessionResolver resolves a bearer token to its live session.
type SessionResolver interface {
	GetCurrentUser(ctx context.Context, token string) (*domain.Session, error)
}

// Auth requires a live session and injects it into the context.
func Auth(sessions SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return err
			}

			sess, err := sessions.GetCurrentUser(c.Request().Context(), token)
			if err != nil {
				return err
			}

			SetSession(c, sess, token)
			return next(c)
		}
	}
}

// OptionalAuth injects the session when a valid token is presented and
// otherwise lets the request through as a guest.
func OptionalAuth(sessions SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return next(c)
			}
			if sess, err := sessions.GetCurrentUser(c.Request().Context(), token); err == nil {
				SetSession(c, sess, token)
			}
			return next(c)
		}
	}
}

// SetSession attaches sess and its token to the request context.
func SetSession(c echo.Context, sess *domain.Session, token string) {
	c.Set(sessionKey, sess)
	c.Set(tokenKey, token)
}

// SessionFrom returns the session set by Auth or OptionalAuth, or nil.
func SessionFrom(c echo.Context) *domain.Session {
	sess, _ := c.Get(sessionKey).(*domain.Session)
	return sess
}

// TokenFrom returns the bearer token of the current session, if any.
func TokenFrom(c echo.Context) string {
	token, _ := c.Get(tokenKey).(string)
	return token
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}
