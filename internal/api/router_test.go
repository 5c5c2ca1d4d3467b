package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kalakar/casting-api/internal/core/domain"
	"github.com/kalakar/casting-api/internal/core/ports"
	"github.com/kalakar/casting-api/internal/infrastructure/http/handlers"
)

type tokenSessions map[string]*domain.Session

func (s tokenSessions) GetCurrentUser(_ context.Context, token string) (*domain.Session, error) {
	if sess, ok := s[token]; ok {
		return sess, nil
	}
	return nil, domain.ErrNoSession
}

type fixedPortfolios struct{}

func (fixedPortfolios) Save(_ context.Context, in ports.SavePortfolioInput) (*domain.Portfolio, error) {
	return &domain.Portfolio{OwnerID: in.OwnerID, Title: in.Title}, nil
}

func (fixedPortfolios) Load(_ context.Context, ownerID string) (*domain.Portfolio, error) {
	return &domain.Portfolio{OwnerID: ownerID, Title: "Stage Actor"}, nil
}

type emptyPromotions struct{}

func (emptyPromotions) Post(context.Context, ports.PostPromotionInput) (*domain.Promotion, error) {
	return nil, domain.ErrForbidden
}

func (emptyPromotions) ListAll(context.Context) ([]*domain.Promotion, error) {
	return nil, nil
}

var (
	routerOnce sync.Once
	testRouter *echo.Echo
)

// router is built once per test binary; the prometheus middleware registers
// its collectors globally.
func router() *echo.Echo {
	routerOnce.Do(func() {
		testRouter = NewRouter(Deps{
			Log: zerolog.Nop(),
			Sessions: tokenSessions{
				"actor-token":    {UserID: "actor-1", Email: "asha@example.com", Role: domain.RoleActor},
				"director-token": {UserID: "dir-1", Email: "ravi@example.com", Role: domain.RoleDirector},
			},
			Portfolios: fixedPortfolios{},
			Promotions: emptyPromotions{},
			Checks: []handlers.Check{
				{Name: "mongodb", Ping: func(context.Context) error { return nil }},
			},
		})
	})
	return testRouter
}

func serve(method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router().ServeHTTP(rec, req)
	return rec
}

func TestRouter_RoleGates(t *testing.T) {
	cases := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"portfolio without session", http.MethodGet, "/v1/portfolio", "", http.StatusUnauthorized},
		{"portfolio with unknown token", http.MethodGet, "/v1/portfolio", "stale", http.StatusUnauthorized},
		{"portfolio as director", http.MethodGet, "/v1/portfolio", "director-token", http.StatusForbidden},
		{"portfolio as actor", http.MethodGet, "/v1/portfolio", "actor-token", http.StatusOK},
		{"post audition as actor", http.MethodPost, "/v1/auditions", "actor-token", http.StatusForbidden},
		{"select as actor", http.MethodPost, "/v1/applications/app-1/select", "actor-token", http.StatusForbidden},
		{"promotions as guest", http.MethodGet, "/v1/promotions", "", http.StatusOK},
		{"unknown route", http.MethodGet, "/v1/nothing", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(tc.method, tc.path, tc.token)
			if rec.Code != tc.want {
				t.Fatalf("%s %s: expected %d, got %d (%s)", tc.method, tc.path, tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRouter_OpsEndpoints(t *testing.T) {
	for _, path := range []string{"/health", "/health/ready", "/metrics"} {
		if rec := serve(http.MethodGet, path, ""); rec.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, rec.Code)
		}
	}
}
