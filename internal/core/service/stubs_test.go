package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kalakar/casting-api/internal/core/domain"
)

// steppingClock returns a time one second later on every call.
func steppingClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	cur := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		cur = cur.Add(time.Second)
		return cur
	}
}

type stubAccount struct {
	id       string
	password string
}

type stubProvider struct {
	accounts  map[string]stubAccount
	deleted   []string
	createErr error
	calls     int
}

func newStubProvider() *stubProvider {
	return &stubProvider{accounts: make(map[string]stubAccount)}
}

func (p *stubProvider) CreateAccount(_ context.Context, email, password string) (string, error) {
	p.calls++
	if p.createErr != nil {
		return "", p.createErr
	}
	if _, ok := p.accounts[email]; ok {
		return "", domain.ErrDuplicateAccount
	}
	id := fmt.Sprintf("uid-%d", len(p.accounts)+1)
	p.accounts[email] = stubAccount{id: id, password: password}
	return id, nil
}

func (p *stubProvider) Authenticate(_ context.Context, email, password string) (string, error) {
	acc, ok := p.accounts[email]
	if !ok || acc.password != password {
		return "", domain.ErrInvalidCredentials
	}
	return acc.id, nil
}

func (p *stubProvider) DeleteAccount(_ context.Context, identity string) error {
	for email, acc := range p.accounts {
		if acc.id == identity {
			delete(p.accounts, email)
		}
	}
	p.deleted = append(p.deleted, identity)
	return nil
}

type stubUsers struct {
	users     map[string]*domain.User
	createErr error
}

func newStubUsers() *stubUsers {
	return &stubUsers{users: make(map[string]*domain.User)}
}

func (r *stubUsers) Create(_ context.Context, u *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *stubUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

type stubSessionStore struct {
	sessions map[string]*domain.Session
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubSessionStore) Save(_ context.Context, sess *domain.Session, _ time.Duration) error {
	clone := *sess
	s.sessions[sess.ID] = &clone
	return nil
}

func (s *stubSessionStore) Find(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNoSession
	}
	clone := *sess
	return &clone, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

type stubGuard struct {
	held map[string]bool
	err  error
}

func newStubGuard() *stubGuard {
	return &stubGuard{held: make(map[string]bool)}
}

func (g *stubGuard) Acquire(_ context.Context, scope, key string) (bool, error) {
	if g.err != nil {
		return false, g.err
	}
	k := scope + ":" + key
	if g.held[k] {
		return false, nil
	}
	g.held[k] = true
	return true, nil
}

func (g *stubGuard) Release(_ context.Context, scope, key string) error {
	delete(g.held, scope+":"+key)
	return nil
}

type stubPortfolios struct {
	items   map[string]*domain.Portfolio
	upserts int
	findErr error
}

func newStubPortfolios() *stubPortfolios {
	return &stubPortfolios{items: make(map[string]*domain.Portfolio)}
}

func (r *stubPortfolios) Upsert(_ context.Context, p *domain.Portfolio) error {
	r.upserts++
	clone := *p
	r.items[p.OwnerID] = &clone
	return nil
}

func (r *stubPortfolios) FindByOwner(_ context.Context, ownerID string) (*domain.Portfolio, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	p, ok := r.items[ownerID]
	if !ok {
		return nil, domain.ErrPortfolioNotFound
	}
	clone := *p
	return &clone, nil
}

type stubPortfolioCache struct {
	items map[string]*domain.Portfolio
}

func newStubPortfolioCache() *stubPortfolioCache {
	return &stubPortfolioCache{items: make(map[string]*domain.Portfolio)}
}

func (c *stubPortfolioCache) Put(_ context.Context, p *domain.Portfolio) error {
	clone := *p
	c.items[p.OwnerID] = &clone
	return nil
}

func (c *stubPortfolioCache) Get(_ context.Context, ownerID string) (*domain.Portfolio, error) {
	p, ok := c.items[ownerID]
	if !ok {
		return nil, domain.ErrPortfolioNotFound
	}
	clone := *p
	return &clone, nil
}

// stubAuditions keeps insertion order and lists newest first.
type stubAuditions struct {
	items []*domain.Audition
}

func (r *stubAuditions) Create(_ context.Context, a *domain.Audition) error {
	clone := *a
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubAuditions) FindByID(_ context.Context, id string) (*domain.Audition, error) {
	for _, a := range r.items {
		if a.ID == id {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrAuditionNotFound
}

func (r *stubAuditions) ListByDirector(_ context.Context, directorID string) ([]*domain.Audition, error) {
	var out []*domain.Audition
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].DirectorID == directorID {
			clone := *r.items[i]
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubAuditions) ListAll(_ context.Context) ([]*domain.Audition, error) {
	out := make([]*domain.Audition, 0, len(r.items))
	for i := len(r.items) - 1; i >= 0; i-- {
		clone := *r.items[i]
		out = append(out, &clone)
	}
	return out, nil
}

type stubApplications struct {
	items []*domain.Application
}

func (r *stubApplications) Create(_ context.Context, a *domain.Application) error {
	for _, existing := range r.items {
		if existing.AuditionID == a.AuditionID && existing.ApplicantID == a.ApplicantID {
			return domain.ErrAlreadyApplied
		}
	}
	clone := *a
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubApplications) FindByID(_ context.Context, id string) (*domain.Application, error) {
	for _, a := range r.items {
		if a.ID == id {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrApplicationNotFound
}

func (r *stubApplications) ListByApplicant(_ context.Context, applicantID string) ([]*domain.Application, error) {
	var out []*domain.Application
	for _, a := range r.items {
		if a.ApplicantID == applicantID {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubApplications) ListByAudition(_ context.Context, auditionID string) ([]*domain.Application, error) {
	var out []*domain.Application
	for _, a := range r.items {
		if a.AuditionID == auditionID {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubApplications) CountByAudition(ctx context.Context, auditionID string) (int64, error) {
	apps, _ := r.ListByAudition(ctx, auditionID)
	return int64(len(apps)), nil
}

func (r *stubApplications) UpdateStatus(_ context.Context, id string, from, next domain.ApplicationStatus, at time.Time) error {
	for _, a := range r.items {
		if a.ID != id {
			continue
		}
		if a.Status != from {
			return domain.ErrInvalidTransition
		}
		a.Status = next
		a.DecidedAt = &at
		return nil
	}
	return domain.ErrApplicationNotFound
}

type stubPromotions struct {
	items []*domain.Promotion
}

func (r *stubPromotions) Create(_ context.Context, p *domain.Promotion) error {
	clone := *p
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubPromotions) ListAll(_ context.Context) ([]*domain.Promotion, error) {
	out := make([]*domain.Promotion, 0, len(r.items))
	for _, p := range r.items {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

type recordingQueue struct {
	mu    sync.Mutex
	items []domain.Notification
}

func (q *recordingQueue) Enqueue(n domain.Notification) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, n)
}

func (q *recordingQueue) kinds() []domain.NotificationKind {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]domain.NotificationKind, 0, len(q.items))
	for _, n := range q.items {
		out = append(out, n.Kind)
	}
	return out
}
