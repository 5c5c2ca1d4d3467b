package ports

import (
	"context"

	"github.com/kalakar/casting-api/internal/core/domain"
)

// PortfolioRepository stores one portfolio per owner. Upsert is a single
// atomic insert-or-update keyed by owner id.
type PortfolioRepository interface {
	Upsert(ctx context.Context, p *domain.Portfolio) error
	FindByOwner(ctx context.Context, ownerID string) (*domain.Portfolio, error)
}

// PortfolioCache mirrors saved portfolios so reads survive a store outage.
type PortfolioCache interface {
	Put(ctx context.Context, p *domain.Portfolio) error
	Get(ctx context.Context, ownerID string) (*domain.Portfolio, error)
}

// SavePortfolioInput is the portfolio form.
type SavePortfolioInput struct {
	OwnerID    string
	Title      string `validate:"notblank"`
	Bio        string `validate:"notblank"`
	Experience string
	Skills     string `validate:"notblank"`
}

// PortfolioService implements the portfolio manager.
type PortfolioService interface {
	Save(ctx context.Context, in SavePortfolioInput) (*domain.Portfolio, error)
	Load(ctx context.Context, ownerID string) (*domain.Portfolio, error)
}
