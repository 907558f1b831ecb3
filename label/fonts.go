package label

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// ErrMissingAsset is returned when a font file cannot be loaded, or when text
// has to be rendered without fonts.
var ErrMissingAsset = errors.New("missing asset")

// Default face sizes, in pixels.
const (
	DefaultNameSize    = 24
	DefaultPriceSize   = 32
	DefaultCaptionSize = 18
)

// Fonts are the faces used to render label text. They are loaded once by the
// caller and shared by every composition. A font.Face is not safe for
// concurrent use.
type Fonts struct {
	Top     font.Face // product name
	Bottom  font.Face // price
	Caption font.Face // human-readable text under linear barcodes
}

// FontOptions points at the TrueType/OpenType files to load. An empty path
// selects the embedded Go font of the same weight.
type FontOptions struct {
	RegularPath string
	BoldPath    string
	NameSize    float64
	PriceSize   float64
	CaptionSize float64
}

// LoadFonts parses the configured fonts and builds the three faces. Any
// configured file that is missing or unparsable yields ErrMissingAsset.
func LoadFonts(opts FontOptions) (*Fonts, error) {
	regular, err := parseFont(opts.RegularPath, goregular.TTF)
	if err != nil {
		return nil, err
	}
	bold, err := parseFont(opts.BoldPath, gobold.TTF)
	if err != nil {
		return nil, err
	}

	top, err := newFace(regular, orDefault(opts.NameSize, DefaultNameSize))
	if err != nil {
		return nil, err
	}
	bottom, err := newFace(bold, orDefault(opts.PriceSize, DefaultPriceSize))
	if err != nil {
		return nil, err
	}
	caption, err := newFace(regular, orDefault(opts.CaptionSize, DefaultCaptionSize))
	if err != nil {
		return nil, err
	}
	return &Fonts{Top: top, Bottom: bottom, Caption: caption}, nil
}

func parseFont(path string, fallback []byte) (*opentype.Font, error) {
	data := fallback
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: font %s: %v", ErrMissingAsset, path, err)
		}
		data = b
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: font %s: %v", ErrMissingAsset, fontName(path), err)
	}
	return f, nil
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: font face: %v", ErrMissingAsset, err)
	}
	return face, nil
}

func orDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}

func fontName(path string) string {
	if path == "" {
		return "(embedded)"
	}
	return path
}
