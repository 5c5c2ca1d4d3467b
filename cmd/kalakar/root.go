package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kalakar/casting-api/internal/infrastructure/config"
	mongostore "github.com/kalakar/casting-api/internal/infrastructure/db/mongo"
	"github.com/kalakar/casting-api/pkg/logger"
)

const (
	serviceName  = "kalakar"
	logLevelFlag = "log-level"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Kalakar casting marketplace API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String(logLevelFlag, "", "Override LOG_LEVEL (trace, debug, info, warn, error)")

	root.AddCommand(newServeCommand())
	root.AddCommand(newIndexesCommand())
	return root
}

// bootstrap loads configuration and initialises the shared logger.
func bootstrap(ctx context.Context, cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Logger{}, err
	}
	if lvl, _ := cmd.Flags().GetString(logLevelFlag); lvl != "" {
		cfg.LogLevel = lvl
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})
	return cfg, log, nil
}

func mongoConfig(cfg *config.Config) mongostore.Config {
	return mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	}
}

func newIndexesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "Create the unique indexes the store relies on",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, log, err := bootstrap(ctx, cmd)
			if err != nil {
				return err
			}

			client, db, err := mongostore.Connect(ctx, mongoConfig(cfg))
			if err != nil {
				return err
			}
			defer func() { _ = client.Disconnect(context.WithoutCancel(ctx)) }()

			if err := mongostore.EnsureIndexes(ctx, db); err != nil {
				return fmt.Errorf("ensure indexes: %w", err)
			}
			log.Info().Str("database", cfg.Mongo.Database).Msg("indexes ensured")
			return nil
		},
	}
}
