// Package mask clips images to a centered circle by overwriting their alpha channel.
package mask

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/Mukulworld25/sagedo-website/internal/raster"
)

// DefaultShrink pulls the circle slightly inside the canvas edge to drop
// compression halos and anti-aliased borders from the source.
const DefaultShrink = 0.98

// ErrInvalidShrink is returned when the shrink factor is outside (0, 1].
var ErrInvalidShrink = errors.New("shrink factor must be in (0, 1]")

// Geometry is the circle a mask is built from. Coordinates are offsets from
// the image origin.
type Geometry struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	CenterX    int     `json:"center_x"`
	CenterY    int     `json:"center_y"`
	BaseRadius int     `json:"base_radius"`
	Radius     int     `json:"radius"`
	Shrink     float64 `json:"shrink"`
}

// NewGeometry computes the circle for a width x height canvas.
func NewGeometry(width, height int, shrink float64) (Geometry, error) {
	if width <= 0 || height <= 0 {
		return Geometry{}, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	if math.IsNaN(shrink) || shrink <= 0 || shrink > 1 {
		return Geometry{}, fmt.Errorf("%w: got %v", ErrInvalidShrink, shrink)
	}

	base := min(width, height) / 2
	return Geometry{
		Width:      width,
		Height:     height,
		CenterX:    width / 2,
		CenterY:    height / 2,
		BaseRadius: base,
		Radius:     int(math.Floor(float64(base) * shrink)),
		Shrink:     shrink,
	}, nil
}

// Contains reports whether the pixel at offset (x, y) lies inside the circle.
// The boundary is inclusive.
func (g Geometry) Contains(x, y int) bool {
	dx := x - g.CenterX
	dy := y - g.CenterY
	return dx*dx+dy*dy <= g.Radius*g.Radius
}

// Build returns a binary alpha mask over bounds: 255 inside the circle, 0 elsewhere.
func Build(bounds image.Rectangle, g Geometry) *image.Alpha {
	m := image.NewAlpha(bounds)
	for y := 0; y < bounds.Dy(); y++ {
		// Only the rows the circle crosses need filling.
		dy := y - g.CenterY
		if dy*dy > g.Radius*g.Radius {
			continue
		}
		row := m.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		for x := 0; x < bounds.Dx(); x++ {
			if g.Contains(x, y) {
				m.Pix[row+x] = 0xff
			}
		}
	}
	return m
}

// Apply returns a copy of img whose alpha channel is replaced by the circular
// mask. Existing alpha values are discarded, not blended. img is not modified.
func Apply(img image.Image, shrink float64) (*image.NRGBA, Geometry, error) {
	b := img.Bounds()
	g, err := NewGeometry(b.Dx(), b.Dy(), shrink)
	if err != nil {
		return nil, Geometry{}, err
	}

	out := raster.ToNRGBA(img)
	m := Build(b, g)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		po := out.PixOffset(b.Min.X, y)
		mo := m.PixOffset(b.Min.X, y)
		for x := 0; x < b.Dx(); x++ {
			out.Pix[po+4*x+3] = m.Pix[mo+x]
		}
	}
	return out, g, nil
}
