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

type marketFixture struct {
	portfolioRepo *stubPortfolios
	auditionRepo  *stubAuditions
	appRepo       *stubApplications
	queue         *recordingQueue

	portfolios   *PortfolioService
	auditions    *AuditionService
	applications *ApplicationService
}

func newMarketFixture() *marketFixture {
	f := &marketFixture{
		portfolioRepo: newStubPortfolios(),
		auditionRepo:  &stubAuditions{},
		appRepo:       &stubApplications{},
		queue:         &recordingQueue{},
	}
	clock := steppingClock(time.Date(2024, 12, 1, 9, 0, 0, 0, time.UTC))
	log := zerolog.Nop()

	f.portfolios = NewPortfolioService(f.portfolioRepo, newStubPortfolioCache(), log)
	f.portfolios.now = clock
	f.auditions = NewAuditionService(f.auditionRepo, f.appRepo, f.queue, log)
	f.auditions.now = clock
	f.applications = NewApplicationService(f.appRepo, f.auditionRepo, f.portfolioRepo, f.queue, log)
	f.applications.now = clock
	return f
}

func (f *marketFixture) postAudition(t *testing.T, directorID string) *domain.Audition {
	t.Helper()
	a, err := f.auditions.Post(context.Background(), ports.PostAuditionInput{
		DirectorID:      directorID,
		ProjectTitle:    "Demo Film",
		RoleTitle:       "Lead",
		RoleDescription: "Young lead with dance experience",
		Location:        "Mumbai",
		Deadline:        "2025-01-01",
	})
	if err != nil {
		t.Fatalf("Post returned error: %v", err)
	}
	return a
}

func (f *marketFixture) savePortfolio(t *testing.T, ownerID, title string) {
	t.Helper()
	_, err := f.portfolios.Save(context.Background(), ports.SavePortfolioInput{
		OwnerID: ownerID,
		Title:   title,
		Bio:     "Trained at NSD",
		Skills:  "Acting, Dance",
	})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
}

func (f *marketFixture) apply(t *testing.T, auditionID, actorID string) *domain.Application {
	t.Helper()
	app, err := f.applications.Apply(context.Background(), ports.ApplyInput{
		AuditionID:     auditionID,
		ApplicantID:    actorID,
		ApplicantEmail: actorID + "@example.com",
	})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	return app
}

func TestApplicationService_ApplyWithoutPortfolio(t *testing.T) {
	f := newMarketFixture()
	a := f.postAudition(t, "dir-1")

	_, err := f.applications.Apply(context.Background(), ports.ApplyInput{AuditionID: a.ID, ApplicantID: "actor-1"})
	if !errors.Is(err, domain.ErrMissingPortfolio) || !errors.Is(err, domain.ErrPrecondition) {
		t.Fatalf("expected ErrMissingPortfolio, got %v", err)
	}
	if err.Error() != "Please save your portfolio first before applying to auditions!" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if len(f.appRepo.items) != 0 {
		t.Fatal("no application should be created")
	}
}

func TestApplicationService_ApplySnapshotsPortfolio(t *testing.T) {
	f := newMarketFixture()
	a := f.postAudition(t, "dir-1")
	f.savePortfolio(t, "actor-1", "Stage Actor")

	app := f.apply(t, a.ID, "actor-1")
	if app.Status != domain.StatusPending {
		t.Fatalf("expected pending, got %s", app.Status)
	}
	if app.ProjectTitle != "Demo Film" || app.RoleTitle != "Lead" || app.Location != "Mumbai" {
		t.Fatalf("audition summary not copied: %+v", app)
	}

	f.savePortfolio(t, "actor-1", "Screen Actor")

	mine, err := f.applications.ListMine(context.Background(), "actor-1")
	if err != nil {
		t.Fatalf("ListMine returned error: %v", err)
	}
	if len(mine) != 1 || mine[0].Portfolio.Title != "Stage Actor" {
		t.Fatalf("expected the apply-time snapshot, got %+v", mine)
	}
}

func TestApplicationService_ApplyTwice(t *testing.T) {
	f := newMarketFixture()
	a := f.postAudition(t, "dir-1")
	f.savePortfolio(t, "actor-1", "Stage Actor")
	f.apply(t, a.ID, "actor-1")

	_, err := f.applications.Apply(context.Background(), ports.ApplyInput{AuditionID: a.ID, ApplicantID: "actor-1"})
	if !errors.Is(err, domain.ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
}

func TestApplicationService_ApplyUnknownAudition(t *testing.T) {
	f := newMarketFixture()
	f.savePortfolio(t, "actor-1", "Stage Actor")

	_, err := f.applications.Apply(context.Background(), ports.ApplyInput{AuditionID: "missing", ApplicantID: "actor-1"})
	if !errors.Is(err, domain.ErrAuditionNotFound) {
		t.Fatalf("expected ErrAuditionNotFound, got %v", err)
	}
}

func TestApplicationService_Decisions(t *testing.T) {
	f := newMarketFixture()
	a := f.postAudition(t, "dir-1")
	f.savePortfolio(t, "actor-1", "Stage Actor")
	f.savePortfolio(t, "actor-2", "Voice Artist")
	first := f.apply(t, a.ID, "actor-1")
	second := f.apply(t, a.ID, "actor-2")

	selected, err := f.applications.Select(context.Background(), "dir-1", first.ID)
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if selected.Status != domain.StatusSelected || selected.DecidedAt == nil {
		t.Fatalf("unexpected application: %+v", selected)
	}

	rejected, err := f.applications.Reject(context.Background(), "dir-1", second.ID)
	if err != nil {
		t.Fatalf("Reject returned error: %v", err)
	}
	if rejected.Status != domain.StatusRejected {
		t.Fatalf("expected rejected, got %s", rejected.Status)
	}

	if _, err := f.applications.Reject(context.Background(), "dir-1", first.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on second decision, got %v", err)
	}

	stored, _ := f.appRepo.FindByID(context.Background(), first.ID)
	if stored.Status != domain.StatusSelected {
		t.Fatalf("decision should persist, got %s", stored.Status)
	}

	kinds := f.queue.kinds()
	if kinds[len(kinds)-1] != domain.NotifyApplicationDecided {
		t.Fatalf("expected decision notification, got %v", kinds)
	}
}

func TestApplicationService_DecideOtherDirectorsApplication(t *testing.T) {
	f := newMarketFixture()
	a := f.postAudition(t, "dir-1")
	f.savePortfolio(t, "actor-1", "Stage Actor")
	app := f.apply(t, a.ID, "actor-1")

	if _, err := f.applications.Select(context.Background(), "dir-2", app.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := f.applications.Select(context.Background(), "dir-1", "missing"); !errors.Is(err, domain.ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
}

func TestApplicationService_ListForReviewSkipsEmptyAuditions(t *testing.T) {
	f := newMarketFixture()
	empty := f.postAudition(t, "dir-1")
	busy := f.postAudition(t, "dir-1")
	f.postAudition(t, "dir-2")
	f.savePortfolio(t, "actor-1", "Stage Actor")
	f.apply(t, busy.ID, "actor-1")

	groups, err := f.applications.ListForReview(context.Background(), "dir-1")
	if err != nil {
		t.Fatalf("ListForReview returned error: %v", err)
	}
	if len(groups) != 1 || groups[0].Audition.ID != busy.ID {
		t.Fatalf("expected only %s, got %+v", busy.ID, groups)
	}
	for _, g := range groups {
		if g.Audition.ID == empty.ID {
			t.Fatal("audition without applications should be skipped")
		}
	}
}

func TestMarketplaceFlow(t *testing.T) {
	f := newMarketFixture()
	ctx := context.Background()

	a := f.postAudition(t, "dir-1")
	if !a.Deadline.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected deadline: %s", a.Deadline)
	}

	posted, err := f.auditions.ListPosted(ctx, "dir-1")
	if err != nil {
		t.Fatalf("ListPosted returned error: %v", err)
	}
	if len(posted) != 1 || posted[0].ApplicationCount != 0 {
		t.Fatalf("expected one posting with zero applications, got %+v", posted)
	}

	available, err := f.auditions.ListAvailable(ctx)
	if err != nil {
		t.Fatalf("ListAvailable returned error: %v", err)
	}
	if len(available) != 1 || available[0].ProjectTitle != "Demo Film" {
		t.Fatalf("actor should see the posting, got %+v", available)
	}

	f.savePortfolio(t, "actor-1", "Stage Actor")
	f.apply(t, a.ID, "actor-1")

	groups, err := f.applications.ListForReview(ctx, "dir-1")
	if err != nil {
		t.Fatalf("ListForReview returned error: %v", err)
	}
	if len(groups) != 1 || len(groups[0].Applications) != 1 {
		t.Fatalf("expected one review group with one application, got %+v", groups)
	}
	entry := groups[0].Applications[0]
	if entry.Status != domain.StatusPending || entry.ApplicantEmail != "actor-1@example.com" || entry.Portfolio.Title != "Stage Actor" {
		t.Fatalf("unexpected review entry: %+v", entry)
	}

	posted, _ = f.auditions.ListPosted(ctx, "dir-1")
	if posted[0].ApplicationCount != 1 {
		t.Fatalf("expected count 1, got %d", posted[0].ApplicationCount)
	}

	want := []domain.NotificationKind{domain.NotifyAuditionPosted, domain.NotifyApplicationSubmitted}
	got := f.queue.kinds()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("unexpected notifications: %v", got)
	}
}
