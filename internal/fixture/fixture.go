// Package fixture renders synthetic, fully opaque logo images for exercising
// the masking pipeline without a real source asset.
package fixture

import (
	"fmt"
	"image"
	"regexp"

	"github.com/fogleman/gg"
)

// Options controls the rendered fixture.
type Options struct {
	Width  int
	Height int

	// Hex colors (#rgb or #rrggbb). An empty Disc skips the center disc.
	Background string
	Ring       string
	Disc       string
}

// DefaultOptions mirrors the production logo: black square, dark grey ring.
func DefaultOptions() Options {
	return Options{
		Width:      512,
		Height:     512,
		Background: "#000000",
		Ring:       "#333333",
		Disc:       "#ffffff",
	}
}

var hexColorPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks dimensions and colors.
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("invalid fixture size %dx%d", o.Width, o.Height)
	}
	for name, c := range map[string]string{"background": o.Background, "ring": o.Ring} {
		if !hexColorPattern.MatchString(c) {
			return fmt.Errorf("invalid %s color %q", name, c)
		}
	}
	if o.Disc != "" && !hexColorPattern.MatchString(o.Disc) {
		return fmt.Errorf("invalid disc color %q", o.Disc)
	}
	return nil
}

// Render draws the fixture. Every pixel of the result is opaque.
func Render(opts Options) (image.Image, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetHexColor(opts.Background)
	dc.Clear()

	cx := float64(opts.Width) / 2
	cy := float64(opts.Height) / 2
	r := float64(min(opts.Width, opts.Height)) / 2

	lineWidth := max(1, r*0.06)
	dc.SetHexColor(opts.Ring)
	dc.SetLineWidth(lineWidth)
	dc.DrawCircle(cx, cy, r-lineWidth)
	dc.Stroke()

	if opts.Disc != "" {
		dc.SetHexColor(opts.Disc)
		dc.DrawCircle(cx, cy, r*0.4)
		dc.Fill()
	}

	return dc.Image(), nil
}
