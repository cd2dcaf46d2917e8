package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Mukulworld25/sagedo-website/internal/config"
	"github.com/Mukulworld25/sagedo-website/internal/logging"
	"github.com/Mukulworld25/sagedo-website/internal/mask"
	"github.com/Mukulworld25/sagedo-website/internal/watch"
)

var (
	maskInput   string
	maskOutput  string
	maskShrink  float64
	maskVerify  bool
	maskWatch   bool
	maskVerbose bool
	maskQuiet   bool
)

var maskCmd = &cobra.Command{
	Use:   "mask",
	Short: "Clip an image to a centered transparent circle",
	Long: `Clip an image to a centered circle.

The image is loaded as RGBA (images without alpha become fully opaque), a
circle of radius floor(min(W,H)/2 * shrink) is centered on it, and the alpha
channel is overwritten: 255 inside the circle, 0 outside. Existing alpha is
discarded. The output is written losslessly (png or tiff).

Environment variables:
  LOGOMASK_INPUT=path    source image
  LOGOMASK_OUTPUT=path   output image
  LOGOMASK_SHRINK=0.98   shrink factor
  LOGOMASK_VERIFY=true   verify the output afterwards

Examples:
  logomask mask
  logomask mask -i client/public/logo.png -o client/public/logo_circle.png
  logomask mask --shrink 0.95 --verify
  logomask mask --watch`,
	Args: cobra.NoArgs,
	RunE: runMask,
}

func init() {
	maskCmd.Flags().StringVarP(&maskInput, "input", "i", "", "source image path (default from config)")
	maskCmd.Flags().StringVarP(&maskOutput, "output", "o", "", "output image path (default from config)")
	maskCmd.Flags().Float64Var(&maskShrink, "shrink", mask.DefaultShrink, "radius shrink factor in (0, 1]")
	maskCmd.Flags().BoolVar(&maskVerify, "verify", false, "check the output corners after masking")
	maskCmd.Flags().BoolVar(&maskWatch, "watch", false, "re-mask whenever the input changes")
	maskCmd.Flags().BoolVarP(&maskVerbose, "verbose", "v", false, "verbose output")
	maskCmd.Flags().BoolVarP(&maskQuiet, "quiet", "q", false, "quiet mode")

	rootCmd.AddCommand(maskCmd)
}

func runMask(cmd *cobra.Command, args []string) error {
	cfg := *appConfig
	if cmd.Flags().Changed("input") {
		cfg.Mask.Input = maskInput
	}
	if cmd.Flags().Changed("output") {
		cfg.Mask.Output = maskOutput
	}
	if cmd.Flags().Changed("shrink") {
		cfg.Mask.Shrink = maskShrink
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if maskVerbose && !maskQuiet {
		opts := logging.Opts{Level: logging.LevelDebug, Format: cfg.Log.Format}
		if err := logging.Init(opts, cmd.ErrOrStderr()); err != nil {
			return err
		}
	}

	if maskWatch {
		return watchMask(cmd, &cfg)
	}
	return maskOnce(cmd, &cfg)
}

func maskOnce(cmd *cobra.Command, cfg *config.Config) error {
	slog.Info("masking image", "input", cfg.Mask.Input, "output", cfg.Mask.Output, "shrink", cfg.Mask.Shrink)

	result, err := mask.ApplyFile(cfg.Mask.Input, cfg.Mask.Output, cfg.Mask.Shrink)
	if err != nil {
		return err
	}

	if !maskQuiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Success! Saved circular clipped logo to %s\n", result.OutputPath)
	}

	if maskVerify || config.GetEnvBool(config.EnvVerifyAfter) {
		return verifyPath(cmd, result.OutputPath, formatText)
	}
	return nil
}

func watchMask(cmd *cobra.Command, cfg *config.Config) error {
	in, err := filepath.Abs(cfg.Mask.Input)
	if err != nil {
		return err
	}
	out, err := filepath.Abs(cfg.Mask.Output)
	if err != nil {
		return err
	}
	// Writing the output would retrigger the watcher forever.
	if in == out {
		return fmt.Errorf("--watch needs an output path different from the input: %s", cfg.Mask.Input)
	}

	if err := maskOnce(cmd, cfg); err != nil {
		slog.Error("masking failed", "input", cfg.Mask.Input, "error", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(cfg.Mask.Input, func(string) error {
		return maskOnce(cmd, cfg)
	})
	if err != nil {
		return err
	}
	return w.WithLogger(slog.Default().With("component", "watch")).Run(ctx)
}
