package raster

import (
	"bytes"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected Format
	}{
		{name: "png extension", path: "logo.png", expected: FormatPNG},
		{name: "PNG uppercase", path: "LOGO.PNG", expected: FormatPNG},
		{name: "jpg extension", path: "photo.jpg", expected: FormatJPEG},
		{name: "jpeg extension", path: "photo.jpeg", expected: FormatJPEG},
		{name: "gif extension", path: "anim.gif", expected: FormatGIF},
		{name: "bmp extension", path: "old.bmp", expected: FormatBMP},
		{name: "tif extension", path: "scan.tif", expected: FormatTIFF},
		{name: "tiff extension", path: "scan.tiff", expected: FormatTIFF},
		{name: "webp extension", path: "hero.webp", expected: FormatWebP},
		{name: "unknown extension", path: "logo.svg", expected: FormatUnknown},
		{name: "no extension", path: "logo", expected: FormatUnknown},
		{name: "path with directory", path: "client/public/sagedo_logo_black.png", expected: FormatPNG},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DetectFormat(tc.path)
			if got != tc.expected {
				t.Errorf("DetectFormat(%q) = %v, want %v", tc.path, got, tc.expected)
			}
		})
	}
}

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format   Format
		expected string
	}{
		{FormatPNG, "png"},
		{FormatJPEG, "jpeg"},
		{FormatGIF, "gif"},
		{FormatBMP, "bmp"},
		{FormatTIFF, "tiff"},
		{FormatWebP, "webp"},
		{FormatUnknown, "unknown"},
		{Format(999), "unknown"},
	}

	for _, tc := range tests {
		got := tc.format.String()
		if got != tc.expected {
			t.Errorf("Format(%d).String() = %q, want %q", int(tc.format), got, tc.expected)
		}
	}
}

func TestDetectFormatFromReader(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected Format
	}{
		{
			name:     "png signature",
			data:     []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0d"),
			expected: FormatPNG,
		},
		{
			name:     "jpeg signature",
			data:     []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10},
			expected: FormatJPEG,
		},
		{
			name:     "gif89a signature",
			data:     []byte("GIF89a\x01\x00"),
			expected: FormatGIF,
		},
		{
			name:     "bmp signature",
			data:     []byte("BM\x36\x00\x00\x00"),
			expected: FormatBMP,
		},
		{
			name:     "little endian tiff",
			data:     []byte("II*\x00\x08\x00\x00\x00"),
			expected: FormatTIFF,
		},
		{
			name:     "big endian tiff",
			data:     []byte("MM\x00*\x00\x00\x00\x08"),
			expected: FormatTIFF,
		},
		{
			name:     "webp signature",
			data:     []byte("RIFF\x24\x00\x00\x00WEBPVP8 "),
			expected: FormatWebP,
		},
		{
			name:     "riff without webp",
			data:     []byte("RIFF\x24\x00\x00\x00WAVEfmt "),
			expected: FormatUnknown,
		},
		{
			name:     "unknown format",
			data:     []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07},
			expected: FormatUnknown,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DetectFormatFromReader(bytes.NewReader(tc.data))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("DetectFormatFromReader() = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestDetectFormatFromReader_ShortData(t *testing.T) {
	_, err := DetectFormatFromReader(bytes.NewReader([]byte{0x89, 0x50}))
	if err == nil {
		t.Error("expected error for short data")
	}
}
