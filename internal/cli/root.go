// Package cli implements the logomask command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Mukulworld25/sagedo-website/internal/config"
	"github.com/Mukulworld25/sagedo-website/internal/logging"
	"github.com/Mukulworld25/sagedo-website/internal/raster"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitNotFound = 2
	ExitDecode   = 3
	ExitWrite    = 4
)

var version = "dev"

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// errVerificationFailed reports a FAIL verdict. The verdict itself has
// already been printed, so Execute does not print it again.
var errVerificationFailed = errors.New("corner verification failed")

var (
	rootConfigPath string
	rootLogLevel   string
	rootLogFormat  string

	// appConfig is resolved once per invocation by loadAppConfig.
	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "logomask",
	Short: "Clip a logo to a transparent circle and verify the result",
	Long: `logomask clips a square logo to a centered circle by overwriting its
alpha channel, then checks that the four corners are fully transparent.

Defaults come from ~/.logomask/config.yaml (see "logomask config"), can be
overridden with LOGOMASK_* environment variables or a .env file in the
working directory, and finally by command flags.

Examples:
  logomask mask
  logomask mask -i logo.png -o logo_circle.png --shrink 0.95 --verify
  logomask verify -i logo_circle.png
  logomask sample -o fixture.png`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: loadAppConfig,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "logomask version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "config file path (default: ~/.logomask/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&rootLogFormat, "log-format", "", "log format (text, json)")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	return run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}
	if !errors.Is(err, errVerificationFailed) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, raster.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, raster.ErrDecode):
		return ExitDecode
	case errors.Is(err, raster.ErrWrite):
		return ExitWrite
	default:
		return ExitFailure
	}
}

func newLoader() (*config.Loader, error) {
	if rootConfigPath != "" {
		return config.NewLoaderWithPath(rootConfigPath), nil
	}
	return config.NewLoader()
}

// loadAppConfig resolves configuration (defaults, file, environment, root
// flags) and installs the logger.
func loadAppConfig(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(config.DotEnvFileName); err != nil {
		return err
	}

	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("failed to initialize config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = rootLogLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = rootLogFormat
	}
	if err := logging.Init(logging.Opts{Level: cfg.Log.Level, Format: cfg.Log.Format}, cmd.ErrOrStderr()); err != nil {
		return err
	}

	appConfig = cfg
	return nil
}

// initDefaultLogging is used by commands that must work even when the config
// file is broken.
func initDefaultLogging(cmd *cobra.Command, args []string) error {
	level := config.GetEnvOrDefault(config.EnvLogLevel, logging.LevelWarn)
	if cmd.Flags().Changed("log-level") {
		level = rootLogLevel
	}
	return logging.Init(logging.Opts{Level: level, Format: logging.FormatText}, cmd.ErrOrStderr())
}
