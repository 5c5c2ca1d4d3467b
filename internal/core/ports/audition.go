package ports

import (
	"context"

	"github.com/kalakar/casting-api/internal/core/domain"
)

// AuditionRepository persists casting calls.
type AuditionRepository interface {
	Create(ctx context.Context, a *domain.Audition) error
	FindByID(ctx context.Context, id string) (*domain.Audition, error)
	// ListByDirector and ListAll return newest postings first.
	ListByDirector(ctx context.Context, directorID string) ([]*domain.Audition, error)
	ListAll(ctx context.Context) ([]*domain.Audition, error)
}

// PostAuditionInput is the audition form.
type PostAuditionInput struct {
	DirectorID      string
	ProjectTitle    string `validate:"notblank"`
	RoleTitle       string `validate:"notblank"`
	RoleDescription string `validate:"notblank"`
	Location        string `validate:"notblank"`
	Deadline        string `validate:"notblank,datetime=2006-01-02"`
}

// PostedAudition pairs a director's posting with its application count.
type PostedAudition struct {
	Audition         *domain.Audition
	ApplicationCount int64
}

// AuditionService implements the audition manager.
type AuditionService interface {
	Post(ctx context.Context, in PostAuditionInput) (*domain.Audition, error)
	ListPosted(ctx context.Context, directorID string) ([]PostedAudition, error)
	ListAvailable(ctx context.Context) ([]*domain.Audition, error)
}
