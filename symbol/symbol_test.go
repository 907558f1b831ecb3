package symbol_test

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/openclaw/labelgen/symbol"
)

var validData = map[string]string{
	symbol.QRCode: "https://example.com/products/ITEM-001",
	"codabar":     "40156",
	"code128":     "ITEM-001",
	"code39":      "item-001",
	"code93":      "ITEM-001",
	"ean":         "590123412345",
	"ean13":       "5901234123457",
	"ean8":        "9638507",
	"jan":         "490123456789",
	"isbn13":      "978-3-16-148410-0",
	"upca":        "036000291452",
	"itf":         "12345678",
	"2of5":        "12345",
	"nw-7":        "A40156B",
	"ean13-guard": "5901234123457",
	"gtin":        "5901234123457",
	"ean8-guard":  "96385074",
	"ean14":       "12345678901231",
	"gs1_128":     "0112345678901231",
	"isbn":        "9783161484100",
	"isbn10":      "3-598-21508-8",
	"issn":        "0317-8471",
	"pzn":         "PZN-1234562",
	"upc":         "03600029145",
}

func TestEncode(t *testing.T) {
	t.Parallel()

	t.Run("every registered symbology renders valid data", func(t *testing.T) {
		t.Parallel()
		names := symbol.ListSymbologies()
		require.Len(t, names, len(validData), "test data should cover the whole registry")

		for _, name := range names {
			data, ok := validData[name]
			require.True(t, ok, "missing sample data for %s", name)

			img, err := symbol.Encode(data, name)
			require.NoError(t, err, "Encode(%q, %q)", data, name)
			assert.Positive(t, img.Bounds().Dx(), "%s width", name)
			assert.Positive(t, img.Bounds().Dy(), "%s height", name)
		}
	})

	t.Run("rejects letters for a numeric symbology", func(t *testing.T) {
		t.Parallel()
		img, err := symbol.Encode("123abc", "ean13")

		require.Error(t, err)
		assert.Nil(t, img, "no partial output on failure")
		assert.True(t, errors.Is(err, symbol.ErrInvalidData), "got %v", err)
	})

	t.Run("rejects unknown symbology", func(t *testing.T) {
		t.Parallel()
		img, err := symbol.Encode("123", "code-does-not-exist")

		require.Error(t, err)
		assert.Nil(t, img)
		assert.True(t, errors.Is(err, symbol.ErrUnsupportedSymbology), "got %v", err)
	})

	t.Run("rejects empty data", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{symbol.QRCode, "code128", "codabar"} {
			_, err := symbol.Encode("", name)
			assert.True(t, errors.Is(err, symbol.ErrInvalidData), "%s: got %v", name, err)
		}
	})

	t.Run("enforces symbology constraints", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name      string
			data      string
			symbology string
		}{
			{"ean13 wrong length", "12345", "ean13"},
			{"ean13 bad checksum", "5901234123458", "ean13"},
			{"ean8 wrong length", "123456789", "ean8"},
			{"itf odd length", "12345", "itf"},
			{"isbn13 wrong prefix", "1234567890128", "isbn13"},
			{"jan wrong prefix", "590123412345", "jan"},
			{"isbn10 bad check", "3598215089", "isbn10"},
			{"isbn10 letters", "35982A5088", "isbn10"},
			{"issn wrong length", "031784", "issn"},
			{"issn bad check", "03178472", "issn"},
			{"pzn bad check", "1234563", "pzn"},
			{"ean14 bad check", "12345678901234", "ean14"},
			{"ean14 letters", "1234567890ABC", "ean14"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := symbol.Encode(tt.data, tt.symbology)
				assert.True(t, errors.Is(err, symbol.ErrInvalidData), "got %v", err)
			})
		}
	})

	t.Run("matches names case-insensitively", func(t *testing.T) {
		t.Parallel()
		_, err := symbol.Encode("ITEM-001", "  CODE128 ")
		require.NoError(t, err)
		_, err = symbol.Encode("hello", "qr code")
		require.NoError(t, err)
	})
}

func TestEncodeQR(t *testing.T) {
	t.Parallel()

	img, err := symbol.Encode("hello", symbol.QRCode)
	require.NoError(t, err)

	// Version 1 is 21 modules; 2 border modules per side at 10px each.
	assert.Equal(t, 250, img.Bounds().Dx())
	assert.Equal(t, 250, img.Bounds().Dy())

	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{0, 0, 0, 255}
	assert.Equal(t, white, img.RGBAAt(0, 0), "border is white")
	assert.Equal(t, white, img.RGBAAt(19, 19), "border is two modules wide")
	assert.Equal(t, black, img.RGBAAt(20, 20), "finder pattern starts after the border")
}

func TestEncodeCaption(t *testing.T) {
	t.Parallel()

	plain, err := symbol.Encode("ITEM-001", "code128")
	require.NoError(t, err)

	enc := &symbol.Encoder{Caption: newFace(t, 18)}
	captioned, err := enc.Encode("ITEM-001", "code128")
	require.NoError(t, err)

	assert.Greater(t, captioned.Bounds().Dy(), plain.Bounds().Dy(), "caption adds height")

	qr, err := enc.Encode("ITEM-001", symbol.QRCode)
	require.NoError(t, err)
	assert.Equal(t, qr.Bounds().Dx(), qr.Bounds().Dy(), "QR codes never get a caption")
}

func TestListSymbologies(t *testing.T) {
	t.Parallel()

	names := symbol.ListSymbologies()
	require.NotEmpty(t, names)
	assert.Equal(t, symbol.QRCode, names[0])
	assert.IsNonDecreasing(t, names[1:])
	for _, name := range names {
		assert.True(t, symbol.Supported(name), name)
	}
	assert.False(t, symbol.Supported("pdf417"))
}

func newFace(t *testing.T, size float64) font.Face {
	t.Helper()
	f, err := opentype.Parse(goregular.TTF)
	require.NoError(t, err)
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	require.NoError(t, err)
	return face
}

func TestEncodeEquivalents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		data      string
		symbology string
		sameAs    string
		sameData  string
	}{
		{"upc is upca", "03600029145", "upc", "upca", "036000291452"},
		{"gtin is ean13", "590123412345", "gtin", "ean13", "5901234123457"},
		{"nw-7 is codabar", "40156", "nw-7", "codabar", "A40156A"},
		{"isbn10 prints as bookland ean", "3598215088", "isbn10", "ean13", "978359821508"},
		{"isbn10 without check digit", "359821508", "isbn10", "isbn13", "978359821508"},
		{"issn prints with 977 prefix", "03178471", "issn", "ean13", "977031784700"},
		{"pzn gets prefix and check digit", "123456", "pzn", "code39", "PZN-1234562"},
		{"ean14 computes its check digit", "1234567890123", "ean14", "ean14", "12345678901231"},
		{"ean14 is gs1-128 with ai 01", "12345678901231", "ean14", "gs1_128", "0112345678901231"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := symbol.Encode(tt.data, tt.symbology)
			require.NoError(t, err)
			want, err := symbol.Encode(tt.sameData, tt.sameAs)
			require.NoError(t, err)

			assert.Equal(t, want.Bounds(), got.Bounds())
			assert.Equal(t, want.Pix, got.Pix)
		})
	}

	gs1, err := symbol.Encode("0112345678901231", "gs1_128")
	require.NoError(t, err)
	plain, err := symbol.Encode("0112345678901231", "code128")
	require.NoError(t, err)
	assert.NotEqual(t, plain.Bounds(), gs1.Bounds(), "gs1_128 adds an FNC1 symbol")
}
