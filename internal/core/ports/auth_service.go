package ports

import (
	"context"
	"time"

	"github.com/kalakar/casting-api/internal/core/domain"
)

// SignupInput is the raw signup form. Age stays a string so a non-numeric
// value reports the same message as an under-age one.
type SignupInput struct {
	Email         string `validate:"kalakar_email"`
	Password      string `validate:"min=6"`
	ContactNumber string `validate:"in_phone"`
	Age           string `validate:"adult_age"`
	Role          string `validate:"oneof=actor director"`
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string `validate:"kalakar_email"`
	Password string `validate:"required"`
}

// AuthResult is returned after signup or login.
type AuthResult struct {
	User          *domain.User
	Session       *domain.Session
	Token         string
	Message       string
	RedirectTo    string
	RedirectAfter time.Duration
}

// AuthService implements the signup/login flow.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	Logout(ctx context.Context, token string) error
}

// SessionManager owns the session lifecycle.
type SessionManager interface {
	SetSession(ctx context.Context, user *domain.User) (string, *domain.Session, error)
	GetCurrentUser(ctx context.Context, token string) (*domain.Session, error)
	ClearSession(ctx context.Context, token string) error
}
