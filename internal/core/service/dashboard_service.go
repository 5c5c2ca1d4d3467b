package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kalakar/casting-api/internal/core/domain"
	"github.com/kalakar/casting-api/internal/core/ports"
)

// DashboardService assembles the view a logged-in user lands on.
type DashboardService struct {
	portfolios   ports.PortfolioService
	auditions    ports.AuditionService
	applications ports.ApplicationService
}

func NewDashboardService(
	portfolios ports.PortfolioService,
	auditions ports.AuditionService,
	applications ports.ApplicationService,
) *DashboardService {
	return &DashboardService{portfolios: portfolios, auditions: auditions, applications: applications}
}

// Dashboard branches on the session's role; there is no guest view.
func (s *DashboardService) Dashboard(ctx context.Context, session *domain.Session) (*ports.Dashboard, error) {
	if session == nil {
		return nil, domain.ErrNoSession
	}

	switch session.Role {
	case domain.RoleActor:
		actor, err := s.actor(ctx, session)
		if err != nil {
			return nil, err
		}
		return &ports.Dashboard{Session: session, Actor: actor}, nil
	case domain.RoleDirector:
		director, err := s.director(ctx, session)
		if err != nil {
			return nil, err
		}
		return &ports.Dashboard{Session: session, Director: director}, nil
	default:
		return nil, fmt.Errorf("dashboard: %w: %q", domain.ErrUnknownRole, session.Role)
	}
}

func (s *DashboardService) actor(ctx context.Context, session *domain.Session) (*ports.ActorDashboard, error) {
	portfolio, err := s.portfolios.Load(ctx, session.UserID)
	if err != nil && !errors.Is(err, domain.ErrPortfolioNotFound) {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	auditions, err := s.auditions.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	apps, err := s.applications.ListMine(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	return &ports.ActorDashboard{
		Portfolio:          portfolio,
		AvailableAuditions: auditions,
		Applications:       apps,
	}, nil
}

func (s *DashboardService) director(ctx context.Context, session *domain.Session) (*ports.DirectorDashboard, error) {
	posted, err := s.auditions.ListPosted(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	review, err := s.applications.ListForReview(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	return &ports.DirectorDashboard{Posted: posted, Review: review}, nil
}
