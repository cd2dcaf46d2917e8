package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Mukulworld25/sagedo-website/internal/config"
	"github.com/Mukulworld25/sagedo-website/internal/logging"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage logomask configuration.

Config file location: ~/.logomask/config.yaml (override with --config)

Subcommands:
  show    show the current configuration
  init    create a default config file
  set     change a config value
  path    print the config file path`,
	PersistentPreRunE: initDefaultLogging,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	Long: `Show the configuration stored in the config file.

Defaults are shown when no config file exists. Environment variables that
override file values are listed below it.`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long: `Create a config file holding the default values.

Fails if the file already exists unless --force is given.`,
	RunE: runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a config value",
	Long: `Change a config value.

Supported keys:
  mask.input     source image path
  mask.output    output image path
  mask.shrink    radius shrink factor in (0, 1]
  verify.input   image checked by "logomask verify"
  log.level      debug, info, warn, error
  log.format     text, json

Examples:
  logomask config set mask.shrink 0.95
  logomask config set log.level debug`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := newLoader()
		if err != nil {
			return fmt.Errorf("failed to initialize config loader: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), loader.ConfigPath())
		return nil
	},
}

var configForce bool

var configKeys = []string{"mask.input", "mask.output", "mask.shrink", "verify.input", "log.level", "log.format"}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("failed to initialize config loader: %w", err)
	}

	cfg, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	out := cmd.OutOrStdout()
	if loader.Exists() {
		fmt.Fprintf(out, "Config file: %s\n\n", loader.ConfigPath())
	} else {
		fmt.Fprintf(out, "Config file: (defaults)\n\n")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	fmt.Fprintln(out, string(data))

	fmt.Fprintln(out, "Environment:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	envVars := []struct {
		key  string
		desc string
	}{
		{config.EnvInput, "source image"},
		{config.EnvOutput, "output image"},
		{config.EnvShrink, "shrink factor"},
		{config.EnvVerifyInput, "image to verify"},
		{config.EnvVerifyAfter, "verify after masking"},
		{config.EnvLogLevel, "log level"},
		{config.EnvLogFormat, "log format"},
	}
	for _, ev := range envVars {
		status := "(unset)"
		if v := os.Getenv(ev.key); v != "" {
			status = v
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", ev.key, ev.desc, status)
	}
	return w.Flush()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("failed to initialize config loader: %w", err)
	}

	if loader.Exists() && !configForce {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", loader.ConfigPath())
	}

	if err := loader.Save(config.DefaultConfig()); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", loader.ConfigPath())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("failed to initialize config loader: %w", err)
	}

	cfg, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch key {
	case "mask.input":
		cfg.Mask.Input = value

	case "mask.output":
		cfg.Mask.Output = value

	case "mask.shrink":
		shrink, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid shrink value: %s", value)
		}
		if err := config.ValidateShrink(shrink); err != nil {
			return err
		}
		cfg.Mask.Shrink = shrink

	case "verify.input":
		cfg.Verify.Input = value

	case "log.level":
		validLevels := []string{logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError}
		if !contains(validLevels, value) {
			return fmt.Errorf("invalid log level: %s (supported: %s)", value, strings.Join(validLevels, ", "))
		}
		cfg.Log.Level = value

	case "log.format":
		validFormats := []string{logging.FormatText, logging.FormatJSON}
		if !contains(validFormats, value) {
			return fmt.Errorf("invalid log format: %s (supported: %s)", value, strings.Join(validFormats, ", "))
		}
		cfg.Log.Format = value

	default:
		return fmt.Errorf("unknown config key: %s (supported: %s)", key, strings.Join(configKeys, ", "))
	}

	if err := loader.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
