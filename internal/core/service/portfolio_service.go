package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kalakar/casting-api/internal/core/domain"
	"github.com/kalakar/casting-api/internal/core/ports"
)

// PortfolioService lets an actor keep a single portfolio.
type PortfolioService struct {
	repo  ports.PortfolioRepository
	cache ports.PortfolioCache
	log   zerolog.Logger
	now   func() time.Time
}

func NewPortfolioService(repo ports.PortfolioRepository, cache ports.PortfolioCache, log zerolog.Logger) *PortfolioService {
	return &PortfolioService{repo: repo, cache: cache, log: log, now: time.Now}
}

// Save validates the form and upserts the owner's portfolio.
func (s *PortfolioService) Save(ctx context.Context, in ports.SavePortfolioInput) (*domain.Portfolio, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	p := &domain.Portfolio{
		OwnerID:    in.OwnerID,
		Title:      strings.TrimSpace(in.Title),
		Bio:        strings.TrimSpace(in.Bio),
		Experience: strings.TrimSpace(in.Experience),
		Skills:     strings.TrimSpace(in.Skills),
		SavedDate:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("save portfolio: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, p); err != nil {
			s.log.Warn().Err(err).Str("owner_id", p.OwnerID).Msg("failed to cache portfolio")
		}
	}

	s.log.Info().Str("owner_id", p.OwnerID).Msg("portfolio saved")
	return p, nil
}

// Load returns the owner's portfolio. When the store is unreachable the last
// cached copy is served instead.
func (s *PortfolioService) Load(ctx context.Context, ownerID string) (*domain.Portfolio, error) {
	p, err := s.repo.FindByOwner(ctx, ownerID)
	if err == nil {
		return p, nil
	}
	if !domain.IsPersistence(err) || s.cache == nil {
		return nil, fmt.Errorf("load portfolio: %w", err)
	}

	cached, cacheErr := s.cache.Get(ctx, ownerID)
	if cacheErr != nil {
		return nil, fmt.Errorf("load portfolio: %w", err)
	}

	s.log.Warn().Err(err).Str("owner_id", ownerID).Msg("serving cached portfolio")
	return cached, nil
}
