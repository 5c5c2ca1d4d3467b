package ports

import (
	"context"
	"time"

	"github.com/kalakar/casting-api/internal/core/domain"
)

// ApplicationRepository persists applications. Create reports
// domain.ErrAlreadyApplied when the applicant already applied to the audition.
type ApplicationRepository interface {
	Create(ctx context.Context, a *domain.Application) error
	FindByID(ctx context.Context, id string) (*domain.Application, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]*domain.Application, error)
	ListByAudition(ctx context.Context, auditionID string) ([]*domain.Application, error)
	CountByAudition(ctx context.Context, auditionID string) (int64, error)
	// UpdateStatus writes next only if the stored status still equals from.
	// It reports domain.ErrInvalidTransition when it does not.
	UpdateStatus(ctx context.Context, id string, from, next domain.ApplicationStatus, at time.Time) error
}

// ApplyInput identifies who applies to what.
type ApplyInput struct {
	AuditionID     string
	ApplicantID    string
	ApplicantEmail string
}

// DecideInput is a director's review decision.
type DecideInput struct {
	DirectorID    string
	ApplicationID string
	Decision      domain.ApplicationStatus
}

// ReviewGroup lists the applications received by one audition.
type ReviewGroup struct {
	Audition     *domain.Audition
	Applications []*domain.Application
}

// ApplicationService implements the application manager.
type ApplicationService interface {
	Apply(ctx context.Context, in ApplyInput) (*domain.Application, error)
	ListMine(ctx context.Context, applicantID string) ([]*domain.Application, error)
	ListForReview(ctx context.Context, directorID string) ([]ReviewGroup, error)
	Select(ctx context.Context, directorID, applicationID string) (*domain.Application, error)
	Reject(ctx context.Context, directorID, applicationID string) (*domain.Application, error)
}
