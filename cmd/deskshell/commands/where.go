package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/deskshell/internal/domain/sandbox"
)

// NewWhereCmd prints the application-data root, creating it if needed.
func NewWhereCmd(args *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:   "where",
		Short: "Print the application data directory",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			cfg, logger, err := load(args)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			root, err := sandbox.NewResolver(cfg.App.Locator()).WithLogger(logger.Named("sandbox")).EnsureRoot()
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cc.OutOrStdout(), root)
			return err
		},
	}
}
