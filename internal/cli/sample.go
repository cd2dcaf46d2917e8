package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mukulworld25/sagedo-website/internal/fixture"
	"github.com/Mukulworld25/sagedo-website/internal/raster"
)

var (
	sampleOutput     string
	sampleSize       int
	sampleWidth      int
	sampleHeight     int
	sampleBackground string
	sampleRing       string
	sampleDisc       string
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Render an opaque sample logo to try the pipeline on",
	Long: `Render a fully opaque logo-like image: a solid square with a dark grey
ring and a center disc. Useful for trying mask and verify without the real
asset.

Examples:
  logomask sample -o sample.png
  logomask sample -o wide.png --width 640 --height 480 --disc ""`,
	Args: cobra.NoArgs,
	RunE: runSample,
}

func init() {
	defaults := fixture.DefaultOptions()

	sampleCmd.Flags().StringVarP(&sampleOutput, "output", "o", "sample_logo.png", "output image path")
	sampleCmd.Flags().IntVar(&sampleSize, "size", defaults.Width, "width and height in pixels")
	sampleCmd.Flags().IntVar(&sampleWidth, "width", 0, "width in pixels (overrides --size)")
	sampleCmd.Flags().IntVar(&sampleHeight, "height", 0, "height in pixels (overrides --size)")
	sampleCmd.Flags().StringVar(&sampleBackground, "background", defaults.Background, "background hex color")
	sampleCmd.Flags().StringVar(&sampleRing, "ring", defaults.Ring, "ring hex color")
	sampleCmd.Flags().StringVar(&sampleDisc, "disc", defaults.Disc, "center disc hex color (empty to omit)")

	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, args []string) error {
	opts := fixture.Options{
		Width:      sampleSize,
		Height:     sampleSize,
		Background: sampleBackground,
		Ring:       sampleRing,
		Disc:       sampleDisc,
	}
	if sampleWidth > 0 {
		opts.Width = sampleWidth
	}
	if sampleHeight > 0 {
		opts.Height = sampleHeight
	}

	img, err := fixture.Render(opts)
	if err != nil {
		return fmt.Errorf("rendering sample: %w", err)
	}
	if err := raster.Save(sampleOutput, img); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated: %s (%dx%d)\n", sampleOutput, opts.Width, opts.Height)
	return nil
}
