package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kalakar/casting-api/internal/core/domain"
	"github.com/kalakar/casting-api/internal/core/ports"
)

// DefaultSessionTTL is how long a session lives without an explicit logout.
const DefaultSessionTTL = 2 * time.Hour

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// SessionManager issues signed session tokens backed by a revocable store
// entry. A token is only honoured while its store entry exists.
type SessionManager struct {
	store     ports.SessionStore
	jwtSecret []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewSessionManager(store ports.SessionStore, jwtSecret string, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionManager{store: store, jwtSecret: []byte(jwtSecret), ttl: ttl, now: time.Now}
}

// SetSession starts a session for user and returns its bearer token.
func (m *SessionManager) SetSession(ctx context.Context, user *domain.User) (string, *domain.Session, error) {
	now := m.now().UTC()
	sess := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		JoinDate:  user.JoinDate,
		IssuedAt:  now,
		ExpiresAt: now.Add(m.ttl),
	}

	if err := m.store.Save(ctx, sess, m.ttl); err != nil {
		return "", nil, fmt.Errorf("set session: %w", err)
	}

	token, err := m.sign(sess)
	if err != nil {
		_ = m.store.Delete(detach(ctx), sess.ID)
		return "", nil, fmt.Errorf("set session: sign token: %w", err)
	}
	return token, sess, nil
}

// GetCurrentUser resolves a bearer token to its live session.
func (m *SessionManager) GetCurrentUser(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := m.parse(token)
	if err != nil {
		return nil, err
	}

	sess, err := m.store.Find(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != claims.Subject {
		return nil, domain.ErrNoSession
	}
	return sess, nil
}

// ClearSession ends the session behind token. Clearing an already-ended
// session is not an error.
func (m *SessionManager) ClearSession(ctx context.Context, token string) error {
	claims, err := m.parse(token)
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			return nil
		}
		return err
	}
	if err := m.store.Delete(ctx, claims.ID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (m *SessionManager) sign(sess *domain.Session) (string, error) {
	claims := sessionClaims{
		Role: sess.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			Subject:   sess.UserID,
			IssuedAt:  jwt.NewNumericDate(sess.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.jwtSecret)
}

func (m *SessionManager) parse(token string) (*sessionClaims, error) {
	if token == "" {
		return nil, domain.ErrNoSession
	}
	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return m.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil || !tkn.Valid || claims.ID == "" {
		return nil, domain.ErrNoSession
	}
	return claims, nil
}
