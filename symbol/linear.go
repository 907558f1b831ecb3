package symbol

import (
	"fmt"
	"image"
	"image/draw"
	"slices"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/codabar"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/code93"
	"github.com/boombuler/barcode/ean"
	"github.com/boombuler/barcode/twooffive"
	"golang.org/x/image/font"

	"github.com/openclaw/labelgen/glyph"
)

// Linear barcode geometry, in pixels.
const (
	moduleWidth   = 3
	barHeight     = 150
	quietModules  = 10
	verticalSpace = 10
	captionGap    = 8
)

// linear describes one registered one-dimensional symbology: the checks run
// before encoding and the boombuler encoder that produces the bars.
type linear struct {
	digitsOnly bool
	lengths    []int
	prefixes   []string
	evenLength bool
	clean      func(string) string
	encoder    func(string) (barcode.Barcode, error)
}

var (
	codabarSym = linear{clean: codabarStartStop, encoder: func(s string) (barcode.Barcode, error) {
		return codabar.Encode(s)
	}}
	ean13Sym  = linear{digitsOnly: true, lengths: []int{12, 13}, encoder: encodeEAN}
	ean8Sym   = linear{digitsOnly: true, lengths: []int{7, 8}, encoder: encodeEAN}
	isbn13Sym = linear{
		digitsOnly: true,
		lengths:    []int{12, 13},
		prefixes:   []string{"978", "979"},
		clean:      stripSeparators,
		encoder:    encodeEAN,
	}
	upcaSym = linear{digitsOnly: true, lengths: []int{11, 12}, encoder: func(s string) (barcode.Barcode, error) {
		return ean.Encode("0" + s)
	}}
)

var linearSymbologies = map[string]linear{
	"codabar": codabarSym,
	"nw-7":    codabarSym,
	"code128": {encoder: func(s string) (barcode.Barcode, error) { return code128.Encode(s) }},
	"code39":  {encoder: encodeCode39},
	"code93": {encoder: func(s string) (barcode.Barcode, error) {
		return code93.Encode(s, true, true)
	}},
	"ean":         ean13Sym,
	"ean13":       ean13Sym,
	"ean13-guard": ean13Sym,
	"gtin":        ean13Sym,
	"ean8":        ean8Sym,
	"ean8-guard":  ean8Sym,
	"ean14":       {digitsOnly: true, lengths: []int{13, 14}, encoder: encodeEAN14},
	"gs1_128": {encoder: func(s string) (barcode.Barcode, error) {
		return code128.Encode(string(code128.FNC1) + s)
	}},
	"jan":    {digitsOnly: true, lengths: []int{12, 13}, prefixes: []string{"45", "49"}, encoder: encodeEAN},
	"isbn":   isbn13Sym,
	"isbn13": isbn13Sym,
	"isbn10": {clean: upperNoSeparators, encoder: encodeISBN10},
	"issn":   {clean: upperNoSeparators, encoder: encodeISSN},
	"pzn":    {digitsOnly: true, lengths: []int{6, 7}, clean: stripPZN, encoder: encodePZN},
	"upc":    upcaSym,
	"upca":   upcaSym,
	"itf": {digitsOnly: true, evenLength: true, encoder: func(s string) (barcode.Barcode, error) {
		return twooffive.Encode(s, true)
	}},
	"2of5": {digitsOnly: true, encoder: func(s string) (barcode.Barcode, error) {
		return twooffive.Encode(s, false)
	}},
}

func encodeCode39(s string) (barcode.Barcode, error) {
	return code39.Encode(s, false, true)
}

func encodeEAN(s string) (barcode.Barcode, error) {
	return ean.Encode(s)
}

// encode validates data against the symbology's constraints and returns the
// unscaled barcode.
func (l linear) encode(name, data string) (barcode.Barcode, error) {
	if l.clean != nil {
		data = l.clean(data)
	}
	if data == "" {
		return nil, fmt.Errorf("%w: %s: data is empty", ErrInvalidData, name)
	}
	if l.digitsOnly && !allDigits(data) {
		return nil, fmt.Errorf("%w: %s accepts digits only, got %q", ErrInvalidData, name, data)
	}
	if len(l.lengths) > 0 && !slices.Contains(l.lengths, len(data)) {
		return nil, fmt.Errorf("%w: %s needs %s digits, got %d", ErrInvalidData, name, joinInts(l.lengths), len(data))
	}
	if l.evenLength && len(data)%2 != 0 {
		return nil, fmt.Errorf("%w: %s needs an even number of digits, got %d", ErrInvalidData, name, len(data))
	}
	if len(l.prefixes) > 0 && !hasAnyPrefix(data, l.prefixes) {
		return nil, fmt.Errorf("%w: %s must start with %s", ErrInvalidData, name, strings.Join(l.prefixes, " or "))
	}

	bc, err := l.encoder(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidData, name, err)
	}
	return bc, nil
}

// renderLinear scales bc to moduleWidth pixels per module and places it on a
// white canvas with quiet zones and an optional caption.
func renderLinear(bc barcode.Barcode, caption font.Face) (*image.RGBA, error) {
	modules := bc.Bounds().Dx()
	scaled, err := barcode.Scale(bc, modules*moduleWidth, barHeight)
	if err != nil {
		return nil, fmt.Errorf("scale barcode: %w", err)
	}

	text := strings.Map(dropFunctionChars, bc.Content())
	textW, textH := glyph.Measure(caption, text)

	quiet := quietModules * moduleWidth
	width := max(scaled.Bounds().Dx(), textW) + 2*quiet
	height := verticalSpace + barHeight + verticalSpace
	if textH > 0 {
		height += captionGap + textH
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	barX := (width - scaled.Bounds().Dx()) / 2
	bars := image.Rect(barX, verticalSpace, barX+scaled.Bounds().Dx(), verticalSpace+barHeight)
	draw.Draw(img, bars, scaled, scaled.Bounds().Min, draw.Src)

	if textH > 0 {
		glyph.Draw(img, caption, text, (width-textW)/2, verticalSpace+barHeight+captionGap)
	}
	return img, nil
}

// codabarStartStop adds the A start/stop characters codabar requires when the
// caller left them out.
func codabarStartStop(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return s
	}
	if !isCodabarGuard(s[0]) {
		s = "A" + s
	}
	if len(s) == 1 || !isCodabarGuard(s[len(s)-1]) {
		s += "A"
	}
	return s
}

func isCodabarGuard(c byte) bool {
	return c >= 'A' && c <= 'D'
}

// dropFunctionChars removes the Code 128 FNC markers from captions.
func dropFunctionChars(r rune) rune {
	switch r {
	case code128.FNC1, code128.FNC2, code128.FNC3, code128.FNC4:
		return -1
	}
	return r
}

func upperNoSeparators(s string) string {
	return strings.ToUpper(stripSeparators(s))
}

func stripSeparators(s string) string {
	return strings.NewReplacer("-", "", " ", "").Replace(s)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, " or ")
}
