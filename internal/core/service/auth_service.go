package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kalakar/casting-api/internal/core/domain"
	"github.com/kalakar/casting-api/internal/core/ports"
)

const (
	// SignupRedirectDelay is how long clients show the success message
	// before redirecting.
	SignupRedirectDelay = 2 * time.Second
	signupRedirectTo    = "/"
	signupMessage       = "Signed in successfully!"
	loginMessage        = "Logged in successfully!"
	guardScopeSignup    = "signup"
)

// AuthService implements signup, login and logout.
type AuthService struct {
	provider ports.AuthProvider
	users    ports.UserRepository
	sessions ports.SessionManager
	guard    ports.SubmissionGuard
	log      zerolog.Logger
	now      func() time.Time
}

func NewAuthService(
	provider ports.AuthProvider,
	users ports.UserRepository,
	sessions ports.SessionManager,
	guard ports.SubmissionGuard,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		provider: provider,
		users:    users,
		sessions: sessions,
		guard:    guard,
		log:      log,
		now:      time.Now,
	}
}

// Signup validates the form, creates the account, persists the profile and
// starts a session. Nothing is created unless every field is valid.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	age, _ := strconv.Atoi(strings.TrimSpace(in.Age))
	email := strings.ToLower(in.Email)

	release, err := s.hold(ctx, email)
	if err != nil {
		return nil, err
	}
	defer release()

	identity, err := s.provider.CreateAccount(ctx, email, in.Password)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	now := s.now().UTC()
	user := &domain.User{
		ID:            identity,
		Email:         email,
		Role:          role,
		ContactNumber: in.ContactNumber,
		Age:           age,
		JoinDate:      now,
		CreatedAt:     now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if delErr := s.provider.DeleteAccount(detach(ctx), identity); delErr != nil {
			s.log.Error().Err(delErr).Str("user_id", identity).Msg("failed to roll back account after profile error")
		}
		return nil, fmt.Errorf("signup: save profile: %w", err)
	}

	token, sess, err := s.sessions.SetSession(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("role", role.String()).Msg("user signed up")

	return &ports.AuthResult{
		User:          user,
		Session:       sess,
		Token:         token,
		Message:       signupMessage,
		RedirectTo:    signupRedirectTo,
		RedirectAfter: SignupRedirectDelay,
	}, nil
}

// Login authenticates with the provider and starts a session.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	identity, err := s.provider.Authenticate(ctx, in.Email, in.Password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	user, err := s.users.FindByID(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	token, sess, err := s.sessions.SetSession(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")

	return &ports.AuthResult{
		User:       user,
		Session:    sess,
		Token:      token,
		Message:    loginMessage,
		RedirectTo: signupRedirectTo,
	}, nil
}

// Logout ends the session behind token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.ClearSession(ctx, token)
}

// hold takes the signup guard for email. A guard outage is logged and
// ignored so signups keep working without Redis.
func (s *AuthService) hold(ctx context.Context, email string) (func(), error) {
	noop := func() {}
	if s.guard == nil {
		return noop, nil
	}

	ok, err := s.guard.Acquire(ctx, guardScopeSignup, email)
	if err != nil {
		s.log.Warn().Err(err).Msg("submission guard unavailable, continuing")
		return noop, nil
	}
	if !ok {
		return nil, domain.ErrDuplicateSubmission
	}

	return func() {
		if err := s.guard.Release(detach(ctx), guardScopeSignup, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to release submission guard")
		}
	}, nil
}
