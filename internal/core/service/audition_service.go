package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kalakar/casting-api/internal/core/domain"
	"github.com/kalakar/casting-api/internal/core/ports"
)

// AuditionService lets directors post casting calls and actors browse them.
type AuditionService struct {
	auditions    ports.AuditionRepository
	applications ports.ApplicationRepository
	queue        ports.NotificationQueue
	log          zerolog.Logger
	now          func() time.Time
}

func NewAuditionService(
	auditions ports.AuditionRepository,
	applications ports.ApplicationRepository,
	queue ports.NotificationQueue,
	log zerolog.Logger,
) *AuditionService {
	return &AuditionService{
		auditions:    auditions,
		applications: applications,
		queue:        queueOrDiscard(queue),
		log:          log,
		now:          time.Now,
	}
}

// Post validates and stores a new audition.
func (s *AuditionService) Post(ctx context.Context, in ports.PostAuditionInput) (*domain.Audition, error) {
	in.ProjectTitle = strings.TrimSpace(in.ProjectTitle)
	in.RoleTitle = strings.TrimSpace(in.RoleTitle)
	in.RoleDescription = strings.TrimSpace(in.RoleDescription)
	in.Location = strings.TrimSpace(in.Location)
	in.Deadline = strings.TrimSpace(in.Deadline)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	deadline, err := time.Parse(domain.DateLayout, in.Deadline)
	if err != nil {
		ve := &domain.ValidationError{}
		ve.Add("deadline", "Please select a deadline")
		return nil, ve
	}

	a := &domain.Audition{
		ID:              uuid.NewString(),
		DirectorID:      in.DirectorID,
		ProjectTitle:    in.ProjectTitle,
		RoleTitle:       in.RoleTitle,
		RoleDescription: in.RoleDescription,
		Location:        in.Location,
		Deadline:        deadline.UTC(),
		PostedDate:      s.now().UTC(),
	}

	if err := s.auditions.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("post audition: %w", err)
	}

	s.queue.Enqueue(domain.Notification{
		Kind:      domain.NotifyAuditionPosted,
		ShardKey:  a.ID,
		SubjectID: a.ID,
		Attributes: map[string]string{
			"director_id":   a.DirectorID,
			"project_title": a.ProjectTitle,
			"role_title":    a.RoleTitle,
		},
		OccurredAt: a.PostedDate,
	})

	s.log.Info().Str("audition_id", a.ID).Str("director_id", a.DirectorID).Msg("audition posted")
	return a, nil
}

// ListPosted returns the director's auditions with their application counts.
// Counts are fetched one posting at a time.
func (s *AuditionService) ListPosted(ctx context.Context, directorID string) ([]ports.PostedAudition, error) {
	auditions, err := s.auditions.ListByDirector(ctx, directorID)
	if err != nil {
		return nil, fmt.Errorf("list posted auditions: %w", err)
	}

	out := make([]ports.PostedAudition, 0, len(auditions))
	for _, a := range auditions {
		n, err := s.applications.CountByAudition(ctx, a.ID)
		if err != nil {
			return nil, fmt.Errorf("list posted auditions: count %s: %w", a.ID, err)
		}
		out = append(out, ports.PostedAudition{Audition: a, ApplicationCount: n})
	}
	return out, nil
}

// ListAvailable returns every audition, newest first.
func (s *AuditionService) ListAvailable(ctx context.Context) ([]*domain.Audition, error) {
	auditions, err := s.auditions.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list auditions: %w", err)
	}
	return auditions, nil
}
