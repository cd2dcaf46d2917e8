package raster

import (
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func checkerboard(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: uint8(x * 16), G: uint8(y * 16), B: 200, A: 255}
			if (x+y)%2 == 0 {
				c.A = 0
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestSaveLoad_PNGRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.png")
	src := checkerboard(8, 6)

	require.NoError(t, Save(path, src))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, src.Bounds(), got.Bounds())
	// Transparent pixels keep their color channels.
	require.Equal(t, src.Pix, got.Pix)
}

func TestSaveLoad_TIFFKeepsAlpha(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.tiff")
	src := checkerboard(5, 5)

	require.NoError(t, Save(path, src))

	got, err := Load(path)
	require.NoError(t, err)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			require.Equal(t, src.NRGBAAt(x, y).A, got.NRGBAAt(x, y).A, "alpha at (%d, %d)", x, y)
		}
	}
}

func TestSave_NoExtensionDefaultsToPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo")
	require.NoError(t, Save(path, checkerboard(2, 2)))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	format, err := DetectFormatFromReader(f)
	require.NoError(t, err)
	require.Equal(t, FormatPNG, format)
}

func TestLoad_ContentWinsOverExtension(t *testing.T) {
	dir := t.TempDir()
	pngPath := filepath.Join(dir, "logo.png")
	require.NoError(t, Save(pngPath, checkerboard(3, 3)))

	renamed := filepath.Join(dir, "logo.jpg")
	require.NoError(t, os.Rename(pngPath, renamed))

	got, err := Load(renamed)
	require.NoError(t, err)
	require.Equal(t, uint8(0), got.NRGBAAt(0, 0).A)
}

func TestLoad_OpaqueFormatGetsFullAlpha(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.jpg")
	src := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for i := range src.Pix {
		src.Pix[i] = 0x80
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, src, nil))
	require.NoError(t, f.Close())

	got, err := Load(path)
	require.NoError(t, err)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			require.Equal(t, uint8(255), got.NRGBAAt(x, y).A)
		}
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("definitely not a picture"), 0644))

	tiny := filepath.Join(dir, "tiny.png")
	require.NoError(t, os.WriteFile(tiny, []byte{0x89, 0x50}, 0644))

	unknown := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(unknown, []byte("plain text notes"), 0644))

	tests := []struct {
		name string
		path string
		kind error
	}{
		{name: "missing file", path: filepath.Join(dir, "missing.png"), kind: ErrNotFound},
		{name: "directory", path: dir, kind: ErrNotFound},
		{name: "corrupt png", path: garbage, kind: ErrDecode},
		{name: "truncated file", path: tiny, kind: ErrDecode},
		{name: "unsupported format", path: unknown, kind: ErrDecode},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(tc.path)
			require.Error(t, err)
			require.True(t, errors.Is(err, tc.kind), "got %v", err)

			var rasterErr *Error
			require.True(t, errors.As(err, &rasterErr))
			require.Equal(t, tc.path, rasterErr.Path)
		})
	}
}

func TestLoad_MissingFileUnwrapsToNotExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSave_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{name: "lossy format", path: filepath.Join(dir, "logo.jpg")},
		{name: "decode-only format", path: filepath.Join(dir, "logo.webp")},
		{name: "unknown extension", path: filepath.Join(dir, "logo.svg")},
		{name: "missing directory", path: filepath.Join(dir, "nope", "logo.png")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Save(tc.path, checkerboard(2, 2))
			require.ErrorIs(t, err, ErrWrite)
			_, statErr := os.Stat(tc.path)
			require.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestSave_FailureKeepsPreviousFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.png")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0644))

	// The png encoder refuses empty images.
	err := Save(path, image.NewNRGBA(image.Rect(0, 0, 0, 0)))
	require.ErrorIs(t, err, ErrWrite)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "previous", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary file left behind")
}

func TestSave_KeepsExistingMode(t *testing.T) {
	dir := t.TempDir()

	existing := filepath.Join(dir, "existing.png")
	require.NoError(t, os.WriteFile(existing, []byte("previous"), 0600))
	require.NoError(t, os.Chmod(existing, 0600))
	require.NoError(t, Save(existing, checkerboard(2, 2)))

	info, err := os.Stat(existing)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	fresh := filepath.Join(dir, "fresh.png")
	require.NoError(t, Save(fresh, checkerboard(2, 2)))

	info, err = os.Stat(fresh)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestLoad_UnsupportedListsFormats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text notes"), 0644))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrDecode)
	require.ErrorContains(t, err, "supported: bmp, gif, jpeg, png, tiff, webp")
}

func TestToNRGBA(t *testing.T) {
	t.Run("copies nrgba", func(t *testing.T) {
		src := image.NewNRGBA(image.Rect(2, 3, 6, 7))
		src.SetNRGBA(2, 3, color.NRGBA{R: 10, G: 20, B: 30, A: 0})

		dst := ToNRGBA(src)
		require.Equal(t, src.Bounds(), dst.Bounds())
		require.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 0}, dst.NRGBAAt(2, 3))

		dst.SetNRGBA(2, 3, color.NRGBA{A: 255})
		require.Equal(t, uint8(0), src.NRGBAAt(2, 3).A, "source must not be mutated")
	})

	t.Run("gray becomes opaque", func(t *testing.T) {
		src := image.NewGray(image.Rect(0, 0, 2, 2))
		src.SetGray(1, 1, color.Gray{Y: 99})

		dst := ToNRGBA(src)
		require.Equal(t, color.NRGBA{R: 99, G: 99, B: 99, A: 255}, dst.NRGBAAt(1, 1))
	})

	t.Run("premultiplied rgba", func(t *testing.T) {
		src := image.NewRGBA(image.Rect(0, 0, 1, 1))
		src.SetRGBA(0, 0, color.RGBA{R: 100, G: 50, B: 0, A: 200})

		dst := ToNRGBA(src)
		require.Equal(t, uint8(200), dst.NRGBAAt(0, 0).A)
	})
}
