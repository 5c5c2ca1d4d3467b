package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kalakar/casting-api/internal/api/middleware"
	"github.com/kalakar/casting-api/internal/core/domain"
	"github.com/kalakar/casting-api/internal/core/ports"
)

func newContext(method, path, body string, sess *domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sess != nil {
		middleware.SetSession(c, sess, "token-"+sess.UserID)
	}
	return c, rec
}

type stubAuthService struct {
	signupFn func(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error)
	loginFn  func(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error)
	logoutFn func(ctx context.Context, token string) error
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	return s.loginFn(ctx, in)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

type stubPortfolioService struct {
	saveFn func(ctx context.Context, in ports.SavePortfolioInput) (*domain.Portfolio, error)
	loadFn func(ctx context.Context, ownerID string) (*domain.Portfolio, error)
}

func (s *stubPortfolioService) Save(ctx context.Context, in ports.SavePortfolioInput) (*domain.Portfolio, error) {
	return s.saveFn(ctx, in)
}

func (s *stubPortfolioService) Load(ctx context.Context, ownerID string) (*domain.Portfolio, error) {
	return s.loadFn(ctx, ownerID)
}

type stubApplicationService struct {
	applyFn  func(ctx context.Context, in ports.ApplyInput) (*domain.Application, error)
	selectFn func(ctx context.Context, directorID, applicationID string) (*domain.Application, error)
	rejectFn func(ctx context.Context, directorID, applicationID string) (*domain.Application, error)
}

func (s *stubApplicationService) Apply(ctx context.Context, in ports.ApplyInput) (*domain.Application, error) {
	return s.applyFn(ctx, in)
}

func (s *stubApplicationService) ListMine(context.Context, string) ([]*domain.Application, error) {
	return nil, nil
}

func (s *stubApplicationService) ListForReview(context.Context, string) ([]ports.ReviewGroup, error) {
	return nil, nil
}

func (s *stubApplicationService) Select(ctx context.Context, directorID, applicationID string) (*domain.Application, error) {
	return s.selectFn(ctx, directorID, applicationID)
}

func (s *stubApplicationService) Reject(ctx context.Context, directorID, applicationID string) (*domain.Application, error) {
	return s.rejectFn(ctx, directorID, applicationID)
}

type stubPromotionService struct {
	promos []*domain.Promotion
	postFn func(ctx context.Context, in ports.PostPromotionInput) (*domain.Promotion, error)
}

func (s *stubPromotionService) Post(ctx context.Context, in ports.PostPromotionInput) (*domain.Promotion, error) {
	return s.postFn(ctx, in)
}

func (s *stubPromotionService) ListAll(context.Context) ([]*domain.Promotion, error) {
	return s.promos, nil
}

type stubDashboardService struct {
	dashboardFn func(ctx context.Context, sess *domain.Session) (*ports.Dashboard, error)
}

func (s *stubDashboardService) Dashboard(ctx context.Context, sess *domain.Session) (*ports.Dashboard, error) {
	return s.dashboardFn(ctx, sess)
}
