package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mukulworld25/sagedo-website/internal/verify"
)

const (
	formatText = "text"
	formatJSON = "json"
)

var (
	verifyInput  string
	verifyFormat string
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that an image's four corners are fully transparent",
	Long: `Check the four corner pixels of an image.

The check passes only when every corner has Alpha=0. It is a spot check: the
rest of the image, including where the circle boundary lies, is not examined.

Exit status is 0 when the check passes and 1 when it fails.

Examples:
  logomask verify
  logomask verify -i client/public/sagedo_logo_final_circle.png
  logomask verify -i logo_circle.png --format json`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVarP(&verifyInput, "input", "i", "", "image to check (default from config)")
	verifyCmd.Flags().StringVarP(&verifyFormat, "format", "f", formatText, "output format (text, json)")

	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	path := appConfig.Verify.Input
	if cmd.Flags().Changed("input") {
		path = verifyInput
	}
	if path == "" {
		return fmt.Errorf("no input image: pass --input or set verify.input")
	}
	return verifyPath(cmd, path, verifyFormat)
}

func verifyPath(cmd *cobra.Command, path, format string) error {
	if format != formatText && format != formatJSON {
		return fmt.Errorf("unsupported output format: %s", format)
	}

	report, err := verify.File(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	default:
		if err := report.WriteText(out); err != nil {
			return err
		}
	}

	if !report.Passed {
		return errVerificationFailed
	}
	return nil
}
