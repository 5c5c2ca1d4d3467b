package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kalakar/casting-api/internal/core/domain"
)

const portfolioTTL = 7 * 24 * time.Hour

// PortfolioCache mirrors saved portfolios.
// Key format: portfolio:<owner_id>
type PortfolioCache struct {
	client redis.Cmdable
}

func NewPortfolioCache(client redis.Cmdable) *PortfolioCache {
	return &PortfolioCache{client: client}
}

func (c *PortfolioCache) Put(ctx context.Context, p *domain.Portfolio) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, portfolioKey(p.OwnerID), raw, portfolioTTL).Err()
}

func (c *PortfolioCache) Get(ctx context.Context, ownerID string) (*domain.Portfolio, error) {
	raw, err := c.client.Get(ctx, portfolioKey(ownerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrPortfolioNotFound
		}
		return nil, err
	}

	var p domain.Portfolio
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func portfolioKey(ownerID string) string {
	return "portfolio:" + ownerID
}
