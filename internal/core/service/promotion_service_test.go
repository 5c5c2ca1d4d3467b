package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/kalakar/casting-api/internal/core/domain"
	"github.com/kalakar/casting-api/internal/core/ports"
)

func validPromotion() ports.PostPromotionInput {
	return ports.PostPromotionInput{
		DirectorID:    "dir-1",
		DirectorEmail: "ravi@example.com",
		EventTitle:    "Premiere Night",
		EventType:     "Film Screening",
		Description:   "Red carpet premiere",
		Venue:         "PVR Juhu",
		EventDate:     "2025-02-14",
		EventTime:     "19:30",
		ContactInfo:   "ravi@example.com",
	}
}

func TestPromotionService_PostDefaultsTicketInfo(t *testing.T) {
	repo := &stubPromotions{}
	queue := &recordingQueue{}
	svc := NewPromotionService(repo, queue, zerolog.Nop())

	p, err := svc.Post(context.Background(), validPromotion())
	if err != nil {
		t.Fatalf("Post returned error: %v", err)
	}
	if p.TicketInfo != "Not specified" {
		t.Fatalf("expected default ticket info, got %q", p.TicketInfo)
	}
	if p.PostedBy != "ravi@example.com" || p.PostedByID != "dir-1" {
		t.Fatalf("unexpected poster: %+v", p)
	}
	if kinds := queue.kinds(); len(kinds) != 1 || kinds[0] != domain.NotifyPromotionPosted {
		t.Fatalf("unexpected notifications: %v", kinds)
	}
}

func TestPromotionService_PostValidation(t *testing.T) {
	repo := &stubPromotions{}
	svc := NewPromotionService(repo, nil, zerolog.Nop())

	in := validPromotion()
	in.Venue = ""
	in.EventTime = "7pm"
	_, err := svc.Post(context.Background(), in)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Fields["venue"] != "Please enter venue" || ve.Fields["event_time"] != "Please select event time" {
		t.Fatalf("unexpected messages: %v", ve.Fields)
	}
	if len(repo.items) != 0 {
		t.Fatal("nothing should be written for invalid input")
	}
}

func TestPromotionService_ListAllNewestFirst(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	repo := &stubPromotions{items: []*domain.Promotion{
		{ID: "a", EventTitle: "Oldest", PostedDate: base},
		{ID: "c", EventTitle: "Newest", PostedDate: base.Add(2 * time.Hour)},
		{ID: "b", EventTitle: "Tie low", PostedDate: base.Add(time.Hour)},
		{ID: "d", EventTitle: "Tie high", PostedDate: base.Add(time.Hour)},
	}}
	svc := NewPromotionService(repo, nil, zerolog.Nop())

	got, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	want := []string{"c", "d", "b", "a"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestPromotionService_PostAcceptsPaddedDateAndTime(t *testing.T) {
	repo := &stubPromotions{}
	svc := NewPromotionService(repo, &recordingQueue{}, zerolog.Nop())

	in := validPromotion()
	in.EventDate = " 2025-02-14 "
	in.EventTime = "19:30\t"
	in.Venue = "  PVR Juhu "

	p, err := svc.Post(context.Background(), in)
	if err != nil {
		t.Fatalf("Post returned error: %v", err)
	}
	if p.EventDate != "2025-02-14" || p.EventTime != "19:30" || p.Venue != "PVR Juhu" {
		t.Fatalf("expected trimmed values, got %+v", p)
	}
}
