package ports

import (
	"context"
	"time"

	"github.com/kalakar/casting-api/internal/core/domain"
)

// SessionStore keeps short-lived sessions. Find returns domain.ErrNoSession
// for unknown or expired ids.
type SessionStore interface {
	Save(ctx context.Context, session *domain.Session, ttl time.Duration) error
	Find(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// SubmissionGuard rejects a second in-flight submission for the same key.
type SubmissionGuard interface {
	// Acquire returns false when key is already held.
	Acquire(ctx context.Context, scope, key string) (bool, error)
	Release(ctx context.Context, scope, key string) error
}
