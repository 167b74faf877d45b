package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"amendments/cmd"
	"amendments/internal/adapters/out/postgres"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(setup setupFunc) *cobra.Command {
	var migrate bool

	command := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the background jobs",
		RunE: func(c *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(c.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, cleanup, err := setup()
			if err != nil {
				return err
			}
			defer cleanup()

			if migrate {
				if err := postgres.Migrate(app.db); err != nil {
					return err
				}
				app.logger.Info("schema migrated")
			}

			return runServer(ctx, app)
		},
	}
	command.Flags().BoolVar(&migrate, "migrate", false, "migrate the schema before serving")
	return command
}

func runServer(ctx context.Context, app *application) error {
	root, err := cmd.NewCompositionRoot(app.config, app.db, app.logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := root.Close(); closeErr != nil {
			app.logger.Warn("closing publisher failed", zap.Error(closeErr))
		}
	}()

	jobManager, err := root.CreateJobManager()
	if err != nil {
		return err
	}
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	router := root.CreateHTTPRouter()
	serverErr := make(chan error, 1)
	go func() {
		app.logger.Info("http server started", zap.String("address", app.config.Address()))
		if err := router.Start(app.config.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	app.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()
	return router.Shutdown(shutdownCtx)
}
