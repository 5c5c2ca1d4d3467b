package ports

import (
	"context"

	"github.com/kalakar/casting-api/internal/core/domain"
)

// UserRepository persists profile records created at signup.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
