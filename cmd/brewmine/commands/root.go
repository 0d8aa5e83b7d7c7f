package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"brewmine/lib/config"
	"brewmine/lib/telemetry"

	"github.com/spf13/cobra"
)

var configPath *string
var debug *bool

// cfg is loaded before any subcommand runs.
var cfg config.Config

var tel telemetry.Telemetry

func init() {
	configPath = rootCmd.PersistentFlags().String("config", config.DefaultFile, "The json5 config file, a .local variant next to it is merged over it.")
	debug = rootCmd.PersistentFlags().Bool("debug", false, "Enables debug logging and HTTP dumps.")
}

var rootCmd = &cobra.Command{
	Use:           "brewmine",
	Short:         "brewmine scrapes coffee review articles and mines them for keywords and topics.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd.Context(), *debug, *configPath)
	},
}

// setup installs the slog handler before anything logs, then starts
// telemetry and loads the config.
func setup(ctx context.Context, debug bool, path string) error {
	telemetry.InitSlog(debug)

	var err error
	tel, err = telemetry.SetupFromEnv(ctx, "brewmine")
	if err != nil {
		slog.WarnContext(ctx, "failed to setup telemetry", "err", err)
	}

	loaded, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	cfg = loaded
	return nil
}

// ExecuteContext runs the command line and flushes telemetry once it returns.
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	shutdownErr := tel.Shutdown(context.Background())
	if shutdownErr != nil {
		slog.Warn("failed to flush telemetry", "err", shutdownErr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return err
}
