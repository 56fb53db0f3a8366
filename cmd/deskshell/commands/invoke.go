package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/deskshell/internal/domain/sandbox"
	"github.com/GriffinCanCode/deskshell/internal/domain/service"
	"github.com/GriffinCanCode/deskshell/internal/providers"
	"github.com/GriffinCanCode/deskshell/internal/shared/id"
	"github.com/GriffinCanCode/deskshell/internal/shared/types"
)

var (
	// ErrInvalidPair is returned for a positional argument without "=" or key.
	ErrInvalidPair = errors.New("argument must be key=value")
	// ErrInvalidArgs is returned when --args is not a JSON object.
	ErrInvalidArgs = errors.New("invalid --args")
	// ErrCommandFails wraps an unsuccessful result; the message carries its kind.
	ErrCommandFails = errors.New("command failed")
)

// NewInvokeCmd runs one command in-process against the configured data root.
// String arguments come from key=value pairs; --args takes a JSON object and
// is applied first so pairs override it.
func NewInvokeCmd(args *RootArgs) *cobra.Command {
	var rawArgs string

	cmd := &cobra.Command{
		Use:   "invoke <command> [key=value...]",
		Short: "Run a single command and print its value",
		Example: `  deskshell invoke write_file path=notes/today.md contents=hello
  deskshell invoke read_file path=notes/today.md
  deskshell invoke get_os`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cc *cobra.Command, argv []string) error {
			params, err := parseParams(rawArgs, argv[1:])
			if err != nil {
				return err
			}

			cfg, logger, err := load(args)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			resolver := sandbox.NewResolver(cfg.App.Locator()).WithLogger(logger.Named("sandbox"))
			registry := service.NewRegistry().WithLogger(logger.Named("registry"))
			if err := providers.RegisterAll(registry, resolver, logger.Logger); err != nil {
				return fmt.Errorf("failed to register providers: %w", err)
			}

			reqID := id.NewRequestID().String()
			origin := "cli"
			result, err := registry.Invoke(cc.Context(), argv[0], params, &types.Context{RequestID: &reqID, Origin: &origin})
			if err != nil {
				return err
			}
			if !result.Success {
				return fmt.Errorf("%w: %s: %s", ErrCommandFails, result.Kind, result.ErrorMessage())
			}

			return printValue(cc.OutOrStdout(), result.Value)
		},
	}

	cmd.Flags().StringVar(&rawArgs, "args", "", "Command arguments as a JSON object")

	return cmd
}

func parseParams(raw string, pairs []string) (map[string]interface{}, error) {
	params := map[string]interface{}{}

	if strings.TrimSpace(raw) != "" {
		if err := sonic.UnmarshalString(raw, &params); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidArgs, err)
		}
		if params == nil {
			params = map[string]interface{}{}
		}
	}

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPair, pair)
		}
		params[key] = value
	}

	return params, nil
}

// printValue writes strings verbatim, adding a newline only when one is
// missing, and anything else as JSON. A null value prints nothing.
func printValue(w io.Writer, value interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		if v == "" || strings.HasSuffix(v, "\n") {
			_, err := fmt.Fprint(w, v)
			return err
		}
		_, err := fmt.Fprintln(w, v)
		return err
	default:
		out, err := sonic.MarshalString(v)
		if err != nil {
			return fmt.Errorf("failed to encode value: %w", err)
		}
		_, err = fmt.Fprintln(w, out)
		return err
	}
}
