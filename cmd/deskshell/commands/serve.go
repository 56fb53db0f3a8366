package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/deskshell/internal/infrastructure/server"
)

// NewServeCmd runs the HTTP and WebSocket bridge until the command context
// is cancelled.
func NewServeCmd(args *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve commands over HTTP and WebSocket",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			cfg, logger, err := load(args)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			srv, err := server.NewServer(cfg, logger)
			if err != nil {
				logger.Error("Failed to create server", zap.Error(err))
				return err
			}

			return srv.Run(cc.Context())
		},
	}
}
