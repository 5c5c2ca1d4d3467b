package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/kalakar/casting-api/internal/api/handler"
	"github.com/kalakar/casting-api/internal/api/middleware"
	"github.com/kalakar/casting-api/internal/core/domain"
	"github.com/kalakar/casting-api/internal/core/ports"
	"github.com/kalakar/casting-api/internal/core/validation"
	infrahttp "github.com/kalakar/casting-api/internal/infrastructure/http"
	"github.com/kalakar/casting-api/internal/infrastructure/http/handlers"
)

// Deps is everything the router needs. Services are built by the caller.
type Deps struct {
	Log            zerolog.Logger
	RequestTimeout time.Duration

	Sessions     middleware.SessionResolver
	AuthLimiter  *middleware.RateLimiter
	Auth         ports.AuthService
	Portfolios   ports.PortfolioService
	Auditions    ports.AuditionService
	Applications ports.ApplicationService
	Promotions   ports.PromotionService
	Dashboard    ports.DashboardService

	// Checks are pinged by /health/ready.
	Checks []handlers.Check
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddleware("kalakar"))
	if d.RequestTimeout > 0 {
		e.Use(echomiddleware.ContextTimeout(d.RequestTimeout))
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	portfolioHandler := handler.NewPortfolioHandler(d.Portfolios)
	auditionHandler := handler.NewAuditionHandler(d.Auditions)
	applicationHandler := handler.NewApplicationHandler(d.Applications)
	promotionHandler := handler.NewPromotionHandler(d.Promotions)
	dashboardHandler := handler.NewDashboardHandler(d.Dashboard)

	requireSession := middleware.Auth(d.Sessions)
	optionalSession := middleware.OptionalAuth(d.Sessions)
	actorOnly := middleware.RBAC(domain.RoleActor)
	directorOnly := middleware.RBAC(domain.RoleDirector)

	v1 := e.Group("/v1")

	// --- Auth routes ---
	auth := v1.Group("/auth")
	if d.AuthLimiter != nil {
		auth.POST("/signup", authHandler.Signup, d.AuthLimiter.Limit("signup"))
		auth.POST("/login", authHandler.Login, d.AuthLimiter.Limit("login"))
	} else {
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
	}
	auth.POST("/logout", authHandler.Logout, requireSession)

	v1.GET("/me", authHandler.Me, requireSession)
	v1.GET("/dashboard", dashboardHandler.Get, requireSession)

	// --- Actor routes ---
	v1.GET("/portfolio", portfolioHandler.Get, requireSession, actorOnly)
	v1.PUT("/portfolio", portfolioHandler.Save, requireSession, actorOnly)
	v1.POST("/auditions/:id/applications", applicationHandler.Apply, requireSession, actorOnly)
	v1.GET("/applications/mine", applicationHandler.ListMine, requireSession, actorOnly)

	// --- Director routes ---
	v1.POST("/auditions", auditionHandler.Post, requireSession, directorOnly)
	v1.GET("/auditions/mine", auditionHandler.ListMine, requireSession, directorOnly)
	v1.GET("/applications/review", applicationHandler.ListForReview, requireSession, directorOnly)
	v1.POST("/applications/:id/select", applicationHandler.Select, requireSession, directorOnly)
	v1.POST("/applications/:id/reject", applicationHandler.Reject, requireSession, directorOnly)
	v1.POST("/promotions", promotionHandler.Post, requireSession, directorOnly)

	// --- Shared routes ---
	v1.GET("/auditions", auditionHandler.ListAvailable, requireSession)
	v1.GET("/promotions", promotionHandler.List, optionalSession)

	// --- Health, metrics and docs (no auth required) ---
	infrahttp.RegisterOps(e, d.Checks...)

	return e
}
