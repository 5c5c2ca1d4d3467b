package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kalakar/casting-api/internal/api"
	"github.com/kalakar/casting-api/internal/api/metrics"
	"github.com/kalakar/casting-api/internal/api/middleware"
	"github.com/kalakar/casting-api/internal/core/ports"
	"github.com/kalakar/casting-api/internal/core/service"
	mongostore "github.com/kalakar/casting-api/internal/infrastructure/db/mongo"
	redisstore "github.com/kalakar/casting-api/internal/infrastructure/db/redis"
	"github.com/kalakar/casting-api/internal/infrastructure/http/handlers"
	"github.com/kalakar/casting-api/internal/infrastructure/messaging"
	"github.com/kalakar/casting-api/internal/infrastructure/queue"
	"github.com/kalakar/casting-api/pkg/logger"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the notification workers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log, err := bootstrap(ctx, cmd)
	if err != nil {
		return err
	}
	log.Info().Str("env", cfg.Env).Msg("starting application")

	// --- Stores ---
	mongoClient, db, err := mongostore.Connect(ctx, mongoConfig(cfg))
	if err != nil {
		return err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		_ = mongoClient.Disconnect(context.WithoutCancel(ctx))
		return err
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")

	closeStores := func(ctx context.Context) {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close error")
		}
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect error")
		}
	}

	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		closeStores(context.WithoutCancel(ctx))
		return fmt.Errorf("ensure indexes: %w", err)
	}

	// --- Notifications ---
	var publisher ports.NotificationPublisher
	var amqpPublisher *messaging.AMQPPublisher
	if cfg.AMQP.URL != "" {
		amqpPublisher = messaging.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, logger.Component("amqp"))
		publisher = amqpPublisher
		log.Info().Str("exchange", cfg.AMQP.Exchange).Msg("publishing notifications to rabbitmq")
	} else {
		publisher = messaging.NewLogPublisher(logger.Component("notifications"))
		log.Info().Msg("AMQP_URL not set, logging notifications")
	}

	workersCtx, stopWorkers := context.WithCancel(context.WithoutCancel(ctx))
	defer stopWorkers()
	dispatcher := queue.NewDispatcher(cfg.Notify.Workers, publisher, metrics.NotificationRecorder{}, logger.Component("dispatcher"))
	dispatcher.Start(workersCtx)

	// --- Core ---
	portfolios := mongostore.NewPortfolioRepository(db)
	auditions := mongostore.NewAuditionRepository(db)
	applications := mongostore.NewApplicationRepository(db)

	sessionManager := service.NewSessionManager(redisstore.NewSessionStore(rdb), cfg.JWTSecret, cfg.SessionTTL)
	authService := service.NewAuthService(
		mongostore.NewCredentialStore(db),
		mongostore.NewUserRepository(db),
		sessionManager,
		redisstore.NewSubmissionGuard(rdb),
		logger.Component("auth"),
	)
	portfolioService := service.NewPortfolioService(portfolios, redisstore.NewPortfolioCache(rdb), logger.Component("portfolio"))
	auditionService := service.NewAuditionService(auditions, applications, dispatcher, logger.Component("audition"))
	applicationService := service.NewApplicationService(applications, auditions, portfolios, dispatcher, logger.Component("application"))
	promotionService := service.NewPromotionService(mongostore.NewPromotionRepository(db), dispatcher, logger.Component("promotion"))

	e := api.NewRouter(api.Deps{
		Log:            logger.Component("http"),
		RequestTimeout: cfg.RequestTimeout,
		Sessions:       sessionManager,
		AuthLimiter: middleware.NewRateLimiter(rdb,
			middleware.PerMinute(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst),
			logger.Component("ratelimit")),
		Auth:         authService,
		Portfolios:   portfolioService,
		Auditions:    auditionService,
		Applications: applicationService,
		Promotions:   promotionService,
		Dashboard:    service.NewDashboardService(portfolioService, auditionService, applicationService),
		Checks: []handlers.Check{
			handlers.MongoCheck(db),
			handlers.RedisCheck(rdb),
		},
	})

	errChan := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		errChan <- e.Start(":" + cfg.Port)
	}()

	var serveErr error
	select {
	case err := <-errChan:
		if !errors.Is(err, http.ErrServerClosed) {
			serveErr = err
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	// --- Shutdown: HTTP first, then the workers, then the stores ---
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown error")
	}

	stopWorkers()
	dispatcher.Wait()

	if amqpPublisher != nil {
		if err := amqpPublisher.Close(); err != nil {
			log.Error().Err(err).Msg("amqp close error")
		}
	}
	closeStores(shutdownCtx)

	log.Info().Msg("application stopped")
	return serveErr
}
