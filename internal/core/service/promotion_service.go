package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kalakar/casting-api/internal/core/domain"
	"github.com/kalakar/casting-api/internal/core/ports"
)

// PromotionService runs the public promotion board.
type PromotionService struct {
	repo  ports.PromotionRepository
	queue ports.NotificationQueue
	log   zerolog.Logger
	now   func() time.Time
}

func NewPromotionService(repo ports.PromotionRepository, queue ports.NotificationQueue, log zerolog.Logger) *PromotionService {
	return &PromotionService{repo: repo, queue: queueOrDiscard(queue), log: log, now: time.Now}
}

// Post validates and stores a promotion. Ticket info is optional.
func (s *PromotionService) Post(ctx context.Context, in ports.PostPromotionInput) (*domain.Promotion, error) {
	in = trimPromotion(in)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	ticketInfo := in.TicketInfo
	if ticketInfo == "" {
		ticketInfo = domain.TicketInfoUnspecified
	}

	p := &domain.Promotion{
		ID:          uuid.NewString(),
		PostedByID:  in.DirectorID,
		PostedBy:    in.DirectorEmail,
		EventTitle:  in.EventTitle,
		EventType:   in.EventType,
		Description: in.Description,
		Venue:       in.Venue,
		EventDate:   in.EventDate,
		EventTime:   in.EventTime,
		TicketInfo:  ticketInfo,
		ContactInfo: in.ContactInfo,
		PostedDate:  s.now().UTC(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("post promotion: %w", err)
	}

	s.queue.Enqueue(domain.Notification{
		Kind:      domain.NotifyPromotionPosted,
		ShardKey:  p.ID,
		SubjectID: p.ID,
		Attributes: map[string]string{
			"event_title": p.EventTitle,
			"event_type":  p.EventType,
			"posted_by":   p.PostedBy,
		},
		OccurredAt: p.PostedDate,
	})

	s.log.Info().Str("promotion_id", p.ID).Str("posted_by", p.PostedByID).Msg("promotion posted")
	return p, nil
}

// ListAll returns every promotion, newest first. Equal timestamps fall back
// to descending id so the order is total.
func (s *PromotionService) ListAll(ctx context.Context) ([]*domain.Promotion, error) {
	promos, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list promotions: %w", err)
	}

	slices.SortFunc(promos, func(a, b *domain.Promotion) int {
		if c := b.PostedDate.Compare(a.PostedDate); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return promos, nil
}

// trimPromotion strips surrounding whitespace so the date and time formats are
// checked on the value that is stored.
func trimPromotion(in ports.PostPromotionInput) ports.PostPromotionInput {
	in.EventTitle = strings.TrimSpace(in.EventTitle)
	in.EventType = strings.TrimSpace(in.EventType)
	in.Description = strings.TrimSpace(in.Description)
	in.Venue = strings.TrimSpace(in.Venue)
	in.EventDate = strings.TrimSpace(in.EventDate)
	in.EventTime = strings.TrimSpace(in.EventTime)
	in.TicketInfo = strings.TrimSpace(in.TicketInfo)
	in.ContactInfo = strings.TrimSpace(in.ContactInfo)
	return in
}
