package fixture

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Mukulworld25/sagedo-website/internal/mask"
	"github.com/Mukulworld25/sagedo-website/internal/raster"
	"github.com/Mukulworld25/sagedo-website/internal/verify"
)

func TestRender_Opaque(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 64, 48

	img, err := Render(opts)
	require.NoError(t, err)
	require.Equal(t, 64, img.Bounds().Dx())
	require.Equal(t, 48, img.Bounds().Dy())

	nrgba := raster.ToNRGBA(img)
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			require.Equal(t, uint8(255), nrgba.NRGBAAt(x, y).A, "pixel (%d, %d)", x, y)
		}
	}

	// Unmasked fixtures fail the corner check; masked ones pass.
	require.False(t, verify.Corners(img).Passed)
	masked, _, err := mask.Apply(img, mask.DefaultShrink)
	require.NoError(t, err)
	require.True(t, verify.Corners(masked).Passed)
}

func TestRender_Colors(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 100, 100
	opts.Background = "#102030"

	img, err := Render(opts)
	require.NoError(t, err)

	c := raster.ToNRGBA(img).NRGBAAt(0, 0)
	require.Equal(t, uint8(0x10), c.R)
	require.Equal(t, uint8(0x20), c.G)
	require.Equal(t, uint8(0x30), c.B)

	center := raster.ToNRGBA(img).NRGBAAt(50, 50)
	require.Equal(t, uint8(0xff), center.R)
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Options) {}},
		{name: "short hex", mutate: func(o *Options) { o.Ring = "#333" }},
		{name: "no hash", mutate: func(o *Options) { o.Background = "ffffff" }},
		{name: "no disc", mutate: func(o *Options) { o.Disc = "" }},
		{name: "zero width", mutate: func(o *Options) { o.Width = 0 }, wantErr: true},
		{name: "bad background", mutate: func(o *Options) { o.Background = "black" }, wantErr: true},
		{name: "empty ring", mutate: func(o *Options) { o.Ring = "" }, wantErr: true},
		{name: "bad disc", mutate: func(o *Options) { o.Disc = "#12" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			err := opts.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
