package raster

import (
	"bufio"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/image/draw"
)

// Load reads the image at path and normalizes it to non-premultiplied RGBA.
// Images without an alpha channel come back fully opaque.
func Load(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Kind: ErrNotFound, Path: path, Err: pathCause(err)}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &Error{Kind: ErrNotFound, Path: path, Err: pathCause(err)}
	}
	if info.IsDir() {
		return nil, &Error{Kind: ErrNotFound, Path: path, Err: fmt.Errorf("is a directory")}
	}

	// Content wins over the extension; a renamed file still decodes.
	format, err := DetectFormatFromReader(f)
	if err != nil {
		return nil, &Error{Kind: ErrDecode, Path: path, Err: err}
	}
	if format == FormatUnknown {
		format = DetectFormat(path)
	}
	codec, err := Get(format)
	if err != nil {
		return nil, &Error{Kind: ErrDecode, Path: path,
			Err: fmt.Errorf("unsupported image format (supported: %s)", strings.Join(DefaultRegistry.List(), ", "))}
	}

	img, err := codec.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, &Error{Kind: ErrDecode, Path: path, Err: fmt.Errorf("%s: %w", codec.Name(), err)}
	}
	if img.Bounds().Empty() {
		return nil, &Error{Kind: ErrDecode, Path: path, Err: fmt.Errorf("image has no pixels")}
	}

	return ToNRGBA(img), nil
}

// ToNRGBA returns a copy of img as *image.NRGBA with the same bounds.
// An *image.NRGBA source is copied byte for byte so fully transparent pixels
// keep their color values.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(b)

	if src, ok := img.(*image.NRGBA); ok {
		rowLen := 4 * b.Dx()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			so := src.PixOffset(b.Min.X, y)
			do := dst.PixOffset(b.Min.X, y)
			copy(dst.Pix[do:do+rowLen], src.Pix[so:so+rowLen])
		}
		return dst
	}

	draw.Draw(dst, b, img, b.Min, draw.Src)
	return dst
}

// Save encodes img to path in the format implied by its extension (png when
// there is none). The file is written to a temporary sibling and renamed into
// place, so a failed save leaves any previous file untouched.
func Save(path string, img image.Image) error {
	format := DetectFormat(path)
	if format == FormatUnknown {
		if ext := filepath.Ext(path); ext != "" {
			return &Error{Kind: ErrWrite, Path: path, Err: fmt.Errorf("unsupported output format %q", ext)}
		}
		format = FormatPNG
	}

	codec, err := Get(format)
	if err != nil {
		return &Error{Kind: ErrWrite, Path: path, Err: err}
	}
	if !codec.CanEncode() {
		return &Error{Kind: ErrWrite, Path: path, Err: fmt.Errorf("%s cannot store alpha losslessly", codec.Name())}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &Error{Kind: ErrWrite, Path: path, Err: pathCause(err)}
	}

	errs := newMultiError()
	w := bufio.NewWriter(tmp)
	if err := codec.Encode(w, img); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("encoding %s: %w", codec.Name(), err))
	} else if err := w.Flush(); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := tmp.Chmod(outputMode(path)); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := tmp.Close(); err != nil {
		errs = multierror.Append(errs, err)
	}
	if errs.ErrorOrNil() == nil {
		if err := os.Rename(tmp.Name(), path); err != nil {
			errs = multierror.Append(errs, pathCause(err))
		}
	}

	if errs.ErrorOrNil() != nil {
		if err := os.Remove(tmp.Name()); err != nil && !os.IsNotExist(err) {
			errs = multierror.Append(errs, err)
		}
		return &Error{Kind: ErrWrite, Path: path, Err: errs}
	}
	return nil
}

// outputMode keeps the permissions of a file being replaced; new files get 0644.
func outputMode(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		return info.Mode().Perm()
	}
	return 0644
}
