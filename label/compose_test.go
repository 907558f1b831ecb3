package label_test

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/labelgen/label"
)

const p = label.Padding

func TestCompose(t *testing.T) {
	t.Parallel()

	// Subtests run sequentially: they share font faces.
	fonts, err := label.LoadFonts(label.FontOptions{})
	require.NoError(t, err)

	t.Run("no overlays adds only the margins", func(t *testing.T) {
		sym := solid(120, 80, color.Black)

		out, err := label.Compose(sym, label.Spec{}, fonts)
		require.NoError(t, err)

		assert.Equal(t, 120+2*p, out.Bounds().Dx())
		assert.Equal(t, 80+2*p, out.Bounds().Dy())
		assert.Equal(t, color.RGBA{255, 255, 255, 255}, out.RGBAAt(0, 0))
		assert.Equal(t, color.RGBA{0, 0, 0, 255}, out.RGBAAt(p, p), "symbol starts after the padding")
	})

	t.Run("a wide product name sets the width", func(t *testing.T) {
		sym := solid(20, 20, color.Black)
		name := "An Unusually Long Product Name"
		nameW, nameH := label.Measure(fonts.Top, name)
		require.Greater(t, nameW, 20)

		out, err := label.Compose(sym, label.Spec{ProductName: name}, fonts)
		require.NoError(t, err)

		assert.Equal(t, nameW+2*p, out.Bounds().Dx())
		assert.Equal(t, 20+nameH+p+p, out.Bounds().Dy())
	})

	t.Run("name and price stack under the symbol", func(t *testing.T) {
		sym := solid(300, 100, color.Black)
		_, nameH := label.Measure(fonts.Top, "Blue T-Shirt")
		_, priceH := label.Measure(fonts.Bottom, "$9.99")

		out, err := label.Compose(sym, label.Spec{ProductName: "Blue T-Shirt", Price: "$9.99"}, fonts)
		require.NoError(t, err)

		assert.Equal(t, 300+2*p, out.Bounds().Dx())
		assert.Equal(t, 100+(nameH+p)+(priceH+p)+p, out.Bounds().Dy())
		assert.True(t, hasDarkPixel(out, image.Rect(0, p+100+p, out.Bounds().Dx(), out.Bounds().Dy())),
			"text is drawn below the symbol")
	})

	t.Run("logo is scaled to the fixed height", func(t *testing.T) {
		sym := solid(200, 100, color.Black)
		logo := solid(300, 150, color.RGBA{0, 0, 255, 255})

		out, err := label.Compose(sym, label.Spec{Logo: logo}, fonts)
		require.NoError(t, err)

		assert.Equal(t, 200+2*p, out.Bounds().Dx(), "120px logo is narrower than the symbol")
		assert.Equal(t, 100+label.LogoHeight+p+p, out.Bounds().Dy())
		center := out.RGBAAt(out.Bounds().Dx()/2, p+label.LogoHeight/2)
		assert.GreaterOrEqual(t, center.B, uint8(250))
		assert.LessOrEqual(t, center.R, uint8(5))
	})

	t.Run("text without fonts is a missing asset", func(t *testing.T) {
		_, err := label.Compose(solid(10, 10, color.Black), label.Spec{Price: "$1"}, nil)
		assert.True(t, errors.Is(err, label.ErrMissingAsset), "got %v", err)
	})

	t.Run("inputs are not modified", func(t *testing.T) {
		sym := solid(50, 50, color.Black)
		before := append([]uint8(nil), sym.Pix...)

		_, err := label.Compose(sym, label.Spec{ProductName: "x"}, fonts)
		require.NoError(t, err)
		assert.Equal(t, before, sym.Pix)
	})
}

func TestComposeLogoAlpha(t *testing.T) {
	t.Parallel()

	t.Run("matches a manual blend over white", func(t *testing.T) {
		t.Parallel()
		logo := image.NewNRGBA(image.Rect(0, 0, 30, label.LogoHeight))
		for y := 0; y < label.LogoHeight; y++ {
			for x := 0; x < 30; x++ {
				if x < 15 {
					logo.SetNRGBA(x, y, color.NRGBA{255, 0, 0, 128})
				} else {
					// Invisible pixels with a loud color must not show up.
					logo.SetNRGBA(x, y, color.NRGBA{0, 255, 0, 0})
				}
			}
		}

		out, err := label.Compose(solid(100, 100, color.White), label.Spec{Logo: logo}, nil)
		require.NoError(t, err)

		ox, oy := (out.Bounds().Dx()-30)/2, p
		for y := 0; y < label.LogoHeight; y++ {
			for x := 0; x < 30; x++ {
				want := blendOverWhite(logo.NRGBAAt(x, y))
				got := out.RGBAAt(ox+x, oy+y)
				assertClose(t, want, got, 2, "pixel %d,%d", x, y)
			}
		}
	})

	t.Run("no colored halo after scaling", func(t *testing.T) {
		t.Parallel()
		logo := image.NewNRGBA(image.Rect(0, 0, 40, 120))
		for y := 0; y < 120; y++ {
			for x := 0; x < 40; x++ {
				if x >= 10 && x < 30 && y >= 30 && y < 90 {
					logo.SetNRGBA(x, y, color.NRGBA{0, 0, 0, 255})
				} else {
					logo.SetNRGBA(x, y, color.NRGBA{0, 255, 0, 0})
				}
			}
		}

		out, err := label.Compose(solid(100, 100, color.White), label.Spec{Logo: logo}, nil)
		require.NoError(t, err)

		b := out.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := out.RGBAAt(x, y)
				if c.R != c.G || c.G != c.B {
					t.Fatalf("tinted pixel at %d,%d: %v", x, y, c)
				}
			}
		}
		assert.True(t, hasDarkPixel(out, image.Rect(0, p, b.Dx(), p+label.LogoHeight)), "logo body is drawn")
	})
}

func TestLoadLogo(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	assert.Nil(t, label.LoadLogo(""), "empty path")
	assert.Nil(t, label.LoadLogo(filepath.Join(dir, "missing.png")), "missing file")

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))
	assert.Nil(t, label.LoadLogo(garbage), "undecodable file")

	valid := filepath.Join(dir, "logo.png")
	f, err := os.Create(valid)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, solid(8, 4, color.Black)))
	require.NoError(t, f.Close())

	logo := label.LoadLogo(valid)
	require.NotNil(t, logo)
	assert.Equal(t, 8, logo.Bounds().Dx())
}

func TestLoadFonts(t *testing.T) {
	t.Parallel()

	t.Run("embedded fonts by default", func(t *testing.T) {
		t.Parallel()
		fonts, err := label.LoadFonts(label.FontOptions{})
		require.NoError(t, err)
		assert.NotNil(t, fonts.Top)
		assert.NotNil(t, fonts.Bottom)
		assert.NotNil(t, fonts.Caption)
	})

	t.Run("missing font file", func(t *testing.T) {
		t.Parallel()
		_, err := label.LoadFonts(label.FontOptions{RegularPath: filepath.Join(t.TempDir(), "Roboto-Regular.ttf")})
		assert.True(t, errors.Is(err, label.ErrMissingAsset), "got %v", err)
	})

	t.Run("unparsable font file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "broken.ttf")
		require.NoError(t, os.WriteFile(path, []byte("nope"), 0o644))
		_, err := label.LoadFonts(label.FontOptions{BoldPath: path})
		assert.True(t, errors.Is(err, label.ErrMissingAsset), "got %v", err)
	})
}

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func blendOverWhite(c color.NRGBA) color.RGBA {
	mix := func(v uint8) uint8 {
		return uint8((uint32(v)*uint32(c.A) + 255*(255-uint32(c.A)) + 127) / 255)
	}
	return color.RGBA{mix(c.R), mix(c.G), mix(c.B), 255}
}

func assertClose(t *testing.T, want, got color.RGBA, tol float64, msg string, args ...any) {
	t.Helper()
	msgAndArgs := append([]any{msg}, args...)
	assert.InDelta(t, want.R, got.R, tol, msgAndArgs...)
	assert.InDelta(t, want.G, got.G, tol, msgAndArgs...)
	assert.InDelta(t, want.B, got.B, tol, msgAndArgs...)
}

func hasDarkPixel(img *image.RGBA, r image.Rectangle) bool {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y).R < 128 {
				return true
			}
		}
	}
	return false
}
