package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tattoo-studio/pkg/server"
)

// newServeCmd creates a new command for serving the web application
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long: `Start the web server to serve the studio site via HTTP. It shuts down
gracefully when the command context is cancelled.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			ctx := cmd.Context()
			srv, err := server.New(ctx, cfg, logger, nil)
			if err != nil {
				return err
			}
			defer func() {
				if err := srv.Close(); err != nil {
					logger.Warn("Failed to close asset store", zap.Error(err))
				}
			}()

			return srv.Run(ctx)
		},
	}
}
