// Package symbol turns a data string and a symbology name into a raster
// barcode or QR code.
//
// QR codes are produced with github.com/skip2/go-qrcode and linear barcodes
// with github.com/boombuler/barcode. Every image returned is a fresh, fully
// opaque *image.RGBA that the caller owns.
//
// Failures are reported with the sentinel errors below and can be matched
// with errors.Is:
//
//	img, err := symbol.Encode("ITEM-001", "code128")
//	if errors.Is(err, symbol.ErrInvalidData) {
//		// tell the user the data does not fit the symbology
//	}
package symbol

import (
	"errors"
	"fmt"
	"image"
	"sort"
	"strings"

	"golang.org/x/image/font"
)

// QRCode is the registry name of the QR symbology.
const QRCode = "QR Code"

var (
	// ErrUnsupportedSymbology is returned for a name that is not in the registry.
	ErrUnsupportedSymbology = errors.New("unsupported symbology")
	// ErrInvalidData is returned when the data cannot be represented by the
	// chosen symbology (character set, length, checksum or capacity).
	ErrInvalidData = errors.New("invalid data for symbology")
)

// Encoder renders symbols. The zero value renders linear barcodes without a
// human-readable caption.
type Encoder struct {
	// Caption, when set, is used to print the encoded data under linear
	// barcodes. QR codes never get a caption.
	Caption font.Face
}

// Encode renders data with the default Encoder.
func Encode(data, symbology string) (*image.RGBA, error) {
	var e *Encoder
	return e.Encode(data, symbology)
}

// Encode renders data as the named symbology. Names are matched
// case-insensitively.
func (e *Encoder) Encode(data, symbology string) (*image.RGBA, error) {
	name := normalize(symbology)
	if name == normalize(QRCode) {
		if data == "" {
			return nil, fmt.Errorf("%w: %s: data is empty", ErrInvalidData, QRCode)
		}
		return renderQR(data)
	}

	sym, ok := linearSymbologies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSymbology, symbology)
	}
	bc, err := sym.encode(name, data)
	if err != nil {
		return nil, err
	}

	var caption font.Face
	if e != nil {
		caption = e.Caption
	}
	return renderLinear(bc, caption)
}

// ListSymbologies returns every supported symbology name, QR first and the
// linear barcodes in alphabetical order.
func ListSymbologies() []string {
	names := make([]string, 0, len(linearSymbologies)+1)
	for name := range linearSymbologies {
		names = append(names, name)
	}
	sort.Strings(names)
	return append([]string{QRCode}, names...)
}

// Supported reports whether symbology names a registered symbology.
func Supported(symbology string) bool {
	name := normalize(symbology)
	if name == normalize(QRCode) {
		return true
	}
	_, ok := linearSymbologies[name]
	return ok
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
