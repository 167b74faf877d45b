package main

import (
	"amendments/internal/adapters/out/postgres"

	"github.com/spf13/cobra"
)

func newMigrateCmd(setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(c *cobra.Command, _ []string) error {
			app, cleanup, err := setup()
			if err != nil {
				return err
			}
			defer cleanup()

			if err := postgres.Migrate(app.db); err != nil {
				return err
			}
			app.logger.Info("schema migrated")
			return nil
		},
	}
}
