package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	httpapi "github.com/GriffinCanCode/deskshell/internal/api/http"
	"github.com/GriffinCanCode/deskshell/internal/infrastructure/config"
	"github.com/GriffinCanCode/deskshell/internal/infrastructure/logging"
)

// RootArgs holds the persistent flags shared by every subcommand
type RootArgs struct {
	configPath *string
}

// NewRootArgs returns zeroed persistent flags
func NewRootArgs() *RootArgs {
	return &RootArgs{configPath: new(string)}
}

// GetConfigPath returns the --config value
func (a *RootArgs) GetConfigPath() string {
	return *a.configPath
}

// NewRootCmd builds the deskshell command tree. With no subcommand it serves.
func NewRootCmd(name, shortDesc, longDesc string) *cobra.Command {
	args := NewRootArgs()

	cmd := &cobra.Command{
		Use:           name,
		Short:         shortDesc,
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       httpapi.Version,
		Args:          cobra.NoArgs,
	}

	cmd.PersistentFlags().StringVar(args.configPath, "config", "", "Path to a TOML or YAML config file")

	err := cmd.MarkPersistentFlagFilename("config", "toml", "yaml", "yml")
	if err != nil {
		panic(err)
	}

	serve := NewServeCmd(args)
	cmd.RunE = serve.RunE

	cmd.AddCommand(
		serve,
		NewInvokeCmd(args),
		NewWhereCmd(args),
	)

	return cmd
}

// load reads configuration and builds the logger it describes
func load(args *RootArgs) (*config.Config, *logging.Logger, error) {
	cfg, err := config.LoadFile(args.GetConfigPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(logging.ConfigFor(cfg.Logging.Level, cfg.Logging.Development, cfg.Logging.Output))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logger, nil
}
