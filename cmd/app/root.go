package main

import (
	"fmt"

	"amendments/cmd"
	"amendments/internal/adapters/out/postgres"
	"amendments/internal/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// application is what every subcommand needs: configuration, logger and database.
type application struct {
	config cmd.Config
	logger *zap.Logger
	db     *gorm.DB
}

func newRootCmd() *cobra.Command {
	var envFiles []string

	root := &cobra.Command{
		Use:          "amendments",
		Short:        "Purchase order amendment workflow service",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", cmd.DefaultEnvFiles,
		"env files loaded before parsing the environment (missing files are skipped)")

	setup := func() (*application, func(), error) {
		return newApplication(envFiles)
	}

	root.AddCommand(
		newServeCmd(setup),
		newMigrateCmd(setup),
		newExpireCmd(setup),
	)
	return root
}

type setupFunc func() (*application, func(), error)

func newApplication(envFiles []string) (*application, func(), error) {
	config, err := cmd.LoadConfig(envFiles...)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(config.LogLevel, config.LogEncoding)
	if err != nil {
		return nil, nil, err
	}

	db, err := postgres.Open(config.DSN())
	if err != nil {
		_ = log.Sync()
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	cleanup := func() {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		_ = log.Sync()
	}
	return &application{config: config, logger: log, db: db}, cleanup, nil
}
