// Package raster loads and saves RGBA raster images for the masking pipeline.
package raster

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a raster image format.
type Format int

const (
	FormatUnknown Format = iota
	FormatPNG
	FormatJPEG
	FormatGIF
	FormatBMP
	FormatTIFF
	FormatWebP
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatGIF:
		return "gif"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	case FormatWebP:
		return "webp"
	default:
		return "unknown"
	}
}

// DetectFormat detects the image format from the file path.
func DetectFormat(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png":
		return FormatPNG
	case ".jpg", ".jpeg":
		return FormatJPEG
	case ".gif":
		return FormatGIF
	case ".bmp":
		return FormatBMP
	case ".tif", ".tiff":
		return FormatTIFF
	case ".webp":
		return FormatWebP
	default:
		return FormatUnknown
	}
}

// DetectFormatFromReader detects the format by reading magic bytes.
func DetectFormatFromReader(r io.ReaderAt) (Format, error) {
	buf := make([]byte, 12)
	n, err := r.ReadAt(buf, 0)
	if err != nil && err != io.EOF {
		return FormatUnknown, fmt.Errorf("failed to read magic bytes: %w", err)
	}
	if n < 4 {
		return FormatUnknown, fmt.Errorf("file too small to detect format")
	}
	buf = buf[:n]

	switch {
	case bytes.HasPrefix(buf, []byte("\x89PNG\r\n\x1a\n")):
		return FormatPNG, nil
	case bytes.HasPrefix(buf, []byte{0xFF, 0xD8, 0xFF}):
		return FormatJPEG, nil
	case bytes.HasPrefix(buf, []byte("GIF87a")), bytes.HasPrefix(buf, []byte("GIF89a")):
		return FormatGIF, nil
	case bytes.HasPrefix(buf, []byte("BM")):
		return FormatBMP, nil
	case bytes.HasPrefix(buf, []byte("II*\x00")), bytes.HasPrefix(buf, []byte("MM\x00*")):
		return FormatTIFF, nil
	case n >= 12 && string(buf[:4]) == "RIFF" && string(buf[8:12]) == "WEBP":
		return FormatWebP, nil
	}

	return FormatUnknown, nil
}
