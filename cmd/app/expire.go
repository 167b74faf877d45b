package main

import (
	"amendments/cmd"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newExpireCmd(setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "expire",
		Short: "Mark overdue pending amendments as expired once and exit",
		RunE: func(c *cobra.Command, _ []string) error {
			app, cleanup, err := setup()
			if err != nil {
				return err
			}
			defer cleanup()

			root, err := cmd.NewCompositionRoot(app.config, app.db, app.logger)
			if err != nil {
				return err
			}
			defer func() {
				_ = root.Close()
			}()

			job, err := root.CreateExpirationJob()
			if err != nil {
				return err
			}

			expired, err := job.Run(c.Context())
			if err != nil {
				return err
			}
			app.logger.Info("expiration sweep finished", zap.Int("expired", expired))
			return nil
		},
	}
}
