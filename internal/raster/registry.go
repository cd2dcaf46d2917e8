package raster

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"sort"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// Codec decodes (and optionally encodes) one raster format.
type Codec struct {
	Format     Format
	Extensions []string
	Decode     func(io.Reader) (image.Image, error)

	// Encode is nil for formats that cannot store alpha losslessly.
	Encode func(io.Writer, image.Image) error
}

// Name returns the codec identifier (e.g., "png", "tiff").
func (c *Codec) Name() string {
	return c.Format.String()
}

// CanEncode reports whether the codec can write images.
func (c *Codec) CanEncode() bool {
	return c.Encode != nil
}

// Registry manages codecs by format.
type Registry struct {
	mu     sync.RWMutex
	codecs map[Format]*Codec
}

// NewRegistry creates a new codec registry.
func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[Format]*Codec),
	}
}

// Register adds a codec to the registry.
func (r *Registry) Register(c *Codec) error {
	if c == nil {
		return fmt.Errorf("cannot register nil codec")
	}
	if c.Format == FormatUnknown {
		return fmt.Errorf("codec format cannot be unknown")
	}
	if c.Decode == nil {
		return fmt.Errorf("codec %s has no decoder", c.Name())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.codecs[c.Format]; exists {
		return fmt.Errorf("codec already registered: %s", c.Name())
	}

	r.codecs[c.Format] = c
	return nil
}

// Get returns a codec by format.
func (r *Registry) Get(f Format) (*Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.codecs[f]
	if !ok {
		return nil, fmt.Errorf("codec not found: %s", f)
	}
	return c, nil
}

// List returns all registered codec names (sorted).
func (r *Registry) List() []string {
	codecs := r.Codecs()
	names := make([]string, 0, len(codecs))
	for _, c := range codecs {
		names = append(names, c.Name())
	}
	return names
}

// Codecs returns all registered codecs sorted by name.
func (r *Registry) Codecs() []*Codec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codecs := make([]*Codec, 0, len(r.codecs))
	for _, c := range r.codecs {
		codecs = append(codecs, c)
	}
	sort.Slice(codecs, func(i, j int) bool {
		return codecs[i].Name() < codecs[j].Name()
	})
	return codecs
}

// DefaultRegistry is the global codec registry.
var DefaultRegistry = NewRegistry()

// Get returns a codec from the default registry.
func Get(f Format) (*Codec, error) {
	return DefaultRegistry.Get(f)
}

// Codecs returns all codecs from the default registry.
func Codecs() []*Codec {
	return DefaultRegistry.Codecs()
}

func encodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, img)
}

func encodeTIFF(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}

func init() {
	for _, c := range []*Codec{
		{Format: FormatPNG, Extensions: []string{".png"}, Decode: png.Decode, Encode: encodePNG},
		{Format: FormatJPEG, Extensions: []string{".jpg", ".jpeg"}, Decode: jpeg.Decode},
		{Format: FormatGIF, Extensions: []string{".gif"}, Decode: gif.Decode},
		{Format: FormatBMP, Extensions: []string{".bmp"}, Decode: bmp.Decode},
		{Format: FormatTIFF, Extensions: []string{".tif", ".tiff"}, Decode: tiff.Decode, Encode: encodeTIFF},
		{Format: FormatWebP, Extensions: []string{".webp"}, Decode: webp.Decode},
	} {
		if err := DefaultRegistry.Register(c); err != nil {
			panic(err)
		}
	}
}
