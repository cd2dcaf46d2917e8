package mask

import (
	"fmt"
	"log/slog"

	"github.com/Mukulworld25/sagedo-website/internal/raster"
)

// Result describes a completed masking run.
type Result struct {
	InputPath  string   `json:"input_path"`
	OutputPath string   `json:"output_path"`
	Geometry   Geometry `json:"geometry"`
}

// ApplyFile loads inputPath, clips it to a centered circle and writes the
// result to outputPath. Load and save failures match raster.ErrNotFound,
// raster.ErrDecode or raster.ErrWrite; on failure outputPath is not touched.
func ApplyFile(inputPath, outputPath string, shrink float64) (*Result, error) {
	// Reject a bad factor before any I/O.
	if _, err := NewGeometry(1, 1, shrink); err != nil {
		return nil, err
	}

	img, err := raster.Load(inputPath)
	if err != nil {
		return nil, fmt.Errorf("loading image: %w", err)
	}
	b := img.Bounds()
	slog.Debug("loaded image", "path", inputPath, "width", b.Dx(), "height", b.Dy())

	masked, g, err := Apply(img, shrink)
	if err != nil {
		return nil, fmt.Errorf("masking image: %w", err)
	}
	slog.Debug("built circular mask",
		"center_x", g.CenterX, "center_y", g.CenterY,
		"base_radius", g.BaseRadius, "radius", g.Radius, "shrink", g.Shrink)

	if err := raster.Save(outputPath, masked); err != nil {
		return nil, fmt.Errorf("saving image: %w", err)
	}
	slog.Debug("saved masked image", "path", outputPath)

	return &Result{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Geometry:   g,
	}, nil
}
