package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kalakar/casting-api/internal/core/domain"
	"github.com/kalakar/casting-api/internal/core/ports"
)

// ApplicationService handles applying to auditions and reviewing applicants.
type ApplicationService struct {
	applications ports.ApplicationRepository
	auditions    ports.AuditionRepository
	portfolios   ports.PortfolioRepository
	queue        ports.NotificationQueue
	log          zerolog.Logger
	now          func() time.Time
}

func NewApplicationService(
	applications ports.ApplicationRepository,
	auditions ports.AuditionRepository,
	portfolios ports.PortfolioRepository,
	queue ports.NotificationQueue,
	log zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		auditions:    auditions,
		portfolios:   portfolios,
		queue:        queueOrDiscard(queue),
		log:          log,
		now:          time.Now,
	}
}

// Apply creates a pending application carrying a snapshot of the applicant's
// current portfolio. Without a saved portfolio nothing is written.
func (s *ApplicationService) Apply(ctx context.Context, in ports.ApplyInput) (*domain.Application, error) {
	portfolio, err := s.portfolios.FindByOwner(ctx, in.ApplicantID)
	if err != nil {
		if errors.Is(err, domain.ErrPortfolioNotFound) {
			return nil, domain.ErrMissingPortfolio
		}
		return nil, fmt.Errorf("apply: load portfolio: %w", err)
	}

	audition, err := s.auditions.FindByID(ctx, in.AuditionID)
	if err != nil {
		return nil, fmt.Errorf("apply: %w", err)
	}

	app := &domain.Application{
		ID:             uuid.NewString(),
		AuditionID:     audition.ID,
		ProjectTitle:   audition.ProjectTitle,
		RoleTitle:      audition.RoleTitle,
		Location:       audition.Location,
		ApplicantID:    in.ApplicantID,
		ApplicantEmail: in.ApplicantEmail,
		Portfolio:      portfolio.Snapshot(),
		AppliedDate:    s.now().UTC(),
		Status:         domain.StatusPending,
	}

	if err := s.applications.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("apply: %w", err)
	}

	s.queue.Enqueue(domain.Notification{
		Kind:      domain.NotifyApplicationSubmitted,
		ShardKey:  audition.ID,
		SubjectID: app.ID,
		Attributes: map[string]string{
			"director_id":     audition.DirectorID,
			"applicant_email": app.ApplicantEmail,
			"project_title":   app.ProjectTitle,
			"role_title":      app.RoleTitle,
		},
		OccurredAt: app.AppliedDate,
	})

	s.log.Info().
		Str("application_id", app.ID).
		Str("audition_id", app.AuditionID).
		Str("applicant_id", app.ApplicantID).
		Msg("application submitted")
	return app, nil
}

// ListMine returns the applicant's own applications.
func (s *ApplicationService) ListMine(ctx context.Context, applicantID string) ([]*domain.Application, error) {
	apps, err := s.applications.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

// ListForReview groups applications by the director's auditions. Auditions
// without applications are left out.
func (s *ApplicationService) ListForReview(ctx context.Context, directorID string) ([]ports.ReviewGroup, error) {
	auditions, err := s.auditions.ListByDirector(ctx, directorID)
	if err != nil {
		return nil, fmt.Errorf("list for review: %w", err)
	}

	groups := make([]ports.ReviewGroup, 0, len(auditions))
	for _, a := range auditions {
		apps, err := s.applications.ListByAudition(ctx, a.ID)
		if err != nil {
			return nil, fmt.Errorf("list for review: audition %s: %w", a.ID, err)
		}
		if len(apps) == 0 {
			continue
		}
		groups = append(groups, ports.ReviewGroup{Audition: a, Applications: apps})
	}
	return groups, nil
}

// Select marks a pending application as selected.
func (s *ApplicationService) Select(ctx context.Context, directorID, applicationID string) (*domain.Application, error) {
	return s.decide(ctx, ports.DecideInput{DirectorID: directorID, ApplicationID: applicationID, Decision: domain.StatusSelected})
}

// Reject marks a pending application as rejected.
func (s *ApplicationService) Reject(ctx context.Context, directorID, applicationID string) (*domain.Application, error) {
	return s.decide(ctx, ports.DecideInput{DirectorID: directorID, ApplicationID: applicationID, Decision: domain.StatusRejected})
}

func (s *ApplicationService) decide(ctx context.Context, in ports.DecideInput) (*domain.Application, error) {
	app, err := s.applications.FindByID(ctx, in.ApplicationID)
	if err != nil {
		return nil, fmt.Errorf("decide: %w", err)
	}

	audition, err := s.auditions.FindByID(ctx, app.AuditionID)
	if err != nil {
		return nil, fmt.Errorf("decide: %w", err)
	}
	if audition.DirectorID != in.DirectorID {
		return nil, domain.ErrForbidden
	}

	if !app.Status.CanTransitionTo(in.Decision) {
		return nil, fmt.Errorf("decide: %w (from %s to %s)", domain.ErrInvalidTransition, app.Status, in.Decision)
	}

	now := s.now().UTC()
	if err := s.applications.UpdateStatus(ctx, app.ID, app.Status, in.Decision, now); err != nil {
		return nil, fmt.Errorf("decide: %w", err)
	}
	app.Status = in.Decision
	app.DecidedAt = &now

	s.queue.Enqueue(domain.Notification{
		Kind:      domain.NotifyApplicationDecided,
		ShardKey:  app.AuditionID,
		SubjectID: app.ID,
		Attributes: map[string]string{
			"applicant_id":    app.ApplicantID,
			"applicant_email": app.ApplicantEmail,
			"status":          string(app.Status),
		},
		OccurredAt: now,
	})

	s.log.Info().
		Str("application_id", app.ID).
		Str("status", string(app.Status)).
		Msg("application decided")
	return app, nil
}
