package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kalakar/casting-api/internal/core/domain"
)

const unavailableMessage = "service temporarily unavailable, please try again"

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected and store errors without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Fields: ve.Fields}
	}

	var ae *domain.AuthError
	if errors.As(err, &ae) {
		return authStatus(ae), errorResponse{Error: ae.Message, Code: ae.Code}
	}

	var pe *domain.PreconditionError
	if errors.As(err, &pe) {
		return http.StatusPreconditionFailed, errorResponse{Error: pe.Message, Code: pe.Code}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrNoSession):
		return http.StatusUnauthorized, errorResponse{Error: "please log in to continue"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "access forbidden"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Error: "user not found"}
	case errors.Is(err, domain.ErrPortfolioNotFound):
		return http.StatusNotFound, errorResponse{Error: "portfolio not found"}
	case errors.Is(err, domain.ErrAuditionNotFound):
		return http.StatusNotFound, errorResponse{Error: "audition not found"}
	case errors.Is(err, domain.ErrApplicationNotFound):
		return http.StatusNotFound, errorResponse{Error: "application not found"}
	case errors.Is(err, domain.ErrAlreadyApplied):
		return http.StatusConflict, errorResponse{Error: domain.ErrAlreadyApplied.Error()}
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, errorResponse{Error: "application has already been decided"}
	case errors.Is(err, domain.ErrDuplicateSubmission):
		return http.StatusConflict, errorResponse{Error: domain.ErrDuplicateSubmission.Error()}
	case errors.Is(err, domain.ErrUnknownRole):
		return http.StatusForbidden, errorResponse{Error: "unknown role"}
	case domain.IsPersistence(err), errors.Is(err, context.DeadlineExceeded):
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("store unavailable")
		return http.StatusServiceUnavailable, errorResponse{Error: unavailableMessage}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

func authStatus(ae *domain.AuthError) int {
	switch ae {
	case domain.ErrDuplicateAccount:
		return http.StatusConflict
	case domain.ErrInvalidCredentials:
		return http.StatusUnauthorized
	default:
		return http.StatusUnprocessableEntity
	}
}
