package ports

import (
	"context"

	"github.com/kalakar/casting-api/internal/core/domain"
)

// PromotionRepository persists event promotions.
type PromotionRepository interface {
	Create(ctx context.Context, p *domain.Promotion) error
	ListAll(ctx context.Context) ([]*domain.Promotion, error)
}

// PostPromotionInput is the promotion form. TicketInfo is optional.
type PostPromotionInput struct {
	DirectorID    string
	DirectorEmail string
	EventTitle    string `validate:"notblank"`
	EventType     string `validate:"notblank"`
	Description   string `validate:"notblank"`
	Venue         string `validate:"notblank"`
	EventDate     string `validate:"notblank,datetime=2006-01-02"`
	EventTime     string `validate:"notblank,datetime=15:04"`
	TicketInfo    string
	ContactInfo   string `validate:"notblank"`
}

// PromotionService implements the promotion board.
type PromotionService interface {
	Post(ctx context.Context, in PostPromotionInput) (*domain.Promotion, error)
	ListAll(ctx context.Context) ([]*domain.Promotion, error)
}
