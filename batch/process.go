package batch

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/openclaw/labelgen/label"
	"github.com/openclaw/labelgen/sheet"
	"github.com/openclaw/labelgen/symbol"
)

// Format selects how a batch is written.
type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPNG, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want png or pdf)", s)
	}
}

// Options apply to every item of one run.
type Options struct {
	Symbology string
	Currency  string
	Logo      image.Image
	// Plain returns the bare symbol for items with no name, price or logo
	// instead of a padded label.
	Plain bool
	// Progress, if set, is called after each rendered item.
	Progress func(done, total int)
}

// Processor encodes and composes labels with a fixed set of fonts.
type Processor struct {
	encoder *symbol.Encoder
	fonts   *label.Fonts
	layout  sheet.Layout
	log     *slog.Logger
}

// NewProcessor returns a Processor using fonts for label text and barcode
// captions, and the default sheet layout.
func NewProcessor(fonts *label.Fonts, log *slog.Logger) *Processor {
	if log == nil {
		log = slog.Default()
	}
	enc := &symbol.Encoder{}
	if fonts != nil {
		enc.Caption = fonts.Caption
	}
	return &Processor{
		encoder: enc,
		fonts:   fonts,
		layout:  sheet.DefaultLayout(),
		log:     log,
	}
}

// Label renders a single item.
func (p *Processor) Label(item Item, opts Options) (*image.RGBA, error) {
	raw, err := p.encoder.Encode(item.Data, opts.Symbology)
	if err != nil {
		return nil, err
	}

	price := FormatPrice(item.Price, opts.Currency)
	if opts.Plain && item.ProductName == "" && price == "" && opts.Logo == nil {
		return raw, nil
	}
	return label.Compose(raw, label.Spec{
		ProductName: item.ProductName,
		Price:       price,
		Logo:        opts.Logo,
	}, p.fonts)
}

// Render renders every item in order. It stops at the first failure and
// reports which item caused it.
func (p *Processor) Render(items []Item, opts Options) ([]image.Image, error) {
	if len(items) == 0 {
		return nil, ErrEmptyBatch
	}
	out := make([]image.Image, 0, len(items))
	err := p.each(items, opts, func(_ Item, img *image.RGBA) error {
		out = append(out, img)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// WritePNGs renders every item into its own PNG file in dir and returns the
// paths written. Files written before a failure are left in place.
func (p *Processor) WritePNGs(items []Item, dir string, opts Options) ([]string, error) {
	if len(items) == 0 {
		return nil, ErrEmptyBatch
	}
	var paths []string
	err := p.each(items, opts, func(item Item, img *image.RGBA) error {
		path := filepath.Join(dir, FileName(item))
		if err := sheet.SavePNG(img, path); err != nil {
			return err
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return paths, err
	}
	p.log.Info("batch written", "format", FormatPNG, "items", len(paths), "dir", dir)
	return paths, nil
}

// WritePDF renders every item onto a label sheet at path and returns the
// page count. Nothing is written if any item fails.
func (p *Processor) WritePDF(items []Item, path string, opts Options) (int, error) {
	imgs, err := p.Render(items, opts)
	if err != nil {
		return 0, err
	}
	pages, err := p.layout.Export(imgs, path)
	if err != nil {
		return 0, err
	}
	p.log.Info("batch written", "format", FormatPDF, "items", len(imgs), "pages", pages, "path", path)
	return pages, nil
}

// WriteSheet renders every item onto a label sheet written to w.
func (p *Processor) WriteSheet(w io.Writer, items []Item, opts Options) (int, error) {
	imgs, err := p.Render(items, opts)
	if err != nil {
		return 0, err
	}
	return p.layout.Write(w, imgs)
}

func (p *Processor) each(items []Item, opts Options, fn func(Item, *image.RGBA) error) error {
	for i, item := range items {
		img, err := p.Label(item, opts)
		if err != nil {
			return fmt.Errorf("item %d (%q): %w", i+1, item.Data, err)
		}
		if err := fn(item, img); err != nil {
			return fmt.Errorf("item %d (%q): %w", i+1, item.Data, err)
		}
		p.log.Debug("label rendered", "item", i+1, "data", item.Data, "symbology", opts.Symbology)
		if opts.Progress != nil {
			opts.Progress(i+1, len(items))
		}
	}
	return nil
}

// FileName is the PNG file name used for item: the product name with spaces
// turned into underscores, then the data. Slashes become dashes so the file
// stays in its directory.
func FileName(item Item) string {
	return fmt.Sprintf("%s_%s.png", sanitize(item.ProductName), sanitize(item.Data))
}

func sanitize(s string) string {
	return strings.NewReplacer(" ", "_", "/", "-", `\`, "-").Replace(s)
}
