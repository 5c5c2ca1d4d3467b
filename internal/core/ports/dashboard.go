package ports

import (
	"context"

	"github.com/kalakar/casting-api/internal/core/domain"
)

// ActorDashboard is what an actor sees after login.
type ActorDashboard struct {
	Portfolio          *domain.Portfolio
	AvailableAuditions []*domain.Audition
	Applications       []*domain.Application
}

// DirectorDashboard is what a director sees after login.
type DirectorDashboard struct {
	Posted []PostedAudition
	Review []ReviewGroup
}

// Dashboard holds exactly one of Actor or Director, matching Session.Role.
type Dashboard struct {
	Session  *domain.Session
	Actor    *ActorDashboard
	Director *DirectorDashboard
}

// DashboardService assembles the role-specific view.
type DashboardService interface {
	Dashboard(ctx context.Context, session *domain.Session) (*Dashboard, error)
}
