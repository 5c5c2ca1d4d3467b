package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/kalakar/casting-api/internal/api/middleware"
	"github.com/kalakar/casting-api/internal/core/domain"
)

// ctxSession returns the session injected by the Auth middleware. A missing
// session means the route was registered without Auth; treat it as logged out.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		return nil, domain.ErrNoSession
	}
	return sess, nil
}
