// Package label composes a raw barcode or QR image with an optional logo,
// product name and price into a single padded label image.
//
// Layout, top to bottom, every element horizontally centered:
//
//	padding
//	logo     (scaled to LogoHeight, if any) + padding
//	symbol                                 + padding
//	name     (if any)                      + padding/2
//	price    (if any)
//	bottom margin
package label

import (
	"fmt"
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/openclaw/labelgen/glyph"
)

const (
	// Padding separates sections and surrounds the label.
	Padding = 15
	// LogoHeight is the rendered logo height; width follows the aspect ratio.
	LogoHeight = 60
)

// Spec holds the optional overlays of a label. Empty strings and a nil Logo
// mean "absent".
type Spec struct {
	ProductName string
	Price       string
	Logo        image.Image
}

// Compose lays the symbol and spec out on a new white canvas. Neither symbol
// nor spec.Logo is modified.
func Compose(symbol image.Image, spec Spec, fonts *Fonts) (*image.RGBA, error) {
	top, bottom, err := faces(spec, fonts)
	if err != nil {
		return nil, err
	}

	logo := scaleLogo(spec.Logo)
	nameW, nameH := glyph.Measure(top, spec.ProductName)
	priceW, priceH := glyph.Measure(bottom, spec.Price)

	sb := symbol.Bounds()
	logoW := 0
	if logo != nil {
		logoW = logo.Bounds().Dx()
	}

	width := max(sb.Dx(), nameW, priceW, logoW) + 2*Padding

	extra := 0
	if logo != nil {
		extra += LogoHeight + Padding
	}
	if spec.ProductName != "" {
		extra += nameH + Padding
	}
	if spec.Price != "" {
		extra += priceH + Padding
	}
	if logo == nil && spec.ProductName == "" && spec.Price == "" {
		extra = Padding
	}
	height := sb.Dy() + extra + Padding

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	y := Padding
	if logo != nil {
		x := (width - logoW) / 2
		draw.Draw(canvas, image.Rect(x, y, x+logoW, y+LogoHeight), logo, image.Point{}, draw.Over)
		y += LogoHeight + Padding
	}

	x := (width - sb.Dx()) / 2
	draw.Draw(canvas, image.Rect(x, y, x+sb.Dx(), y+sb.Dy()), symbol, sb.Min, draw.Over)
	y += sb.Dy() + Padding

	if spec.ProductName != "" {
		glyph.Draw(canvas, top, spec.ProductName, (width-nameW)/2, y)
		y += nameH + Padding/2
	}
	if spec.Price != "" {
		glyph.Draw(canvas, bottom, spec.Price, (width-priceW)/2, y)
	}
	return canvas, nil
}

// Measure returns the ink width and height of s rendered with face.
func Measure(face font.Face, s string) (int, int) {
	return glyph.Measure(face, s)
}

func faces(spec Spec, fonts *Fonts) (font.Face, font.Face, error) {
	var top, bottom font.Face
	if fonts != nil {
		top, bottom = fonts.Top, fonts.Bottom
	}
	if spec.ProductName != "" && top == nil {
		return nil, nil, fmt.Errorf("%w: no font for product name", ErrMissingAsset)
	}
	if spec.Price != "" && bottom == nil {
		return nil, nil, fmt.Errorf("%w: no font for price", ErrMissingAsset)
	}
	return top, bottom, nil
}

// scaleLogo resizes logo to LogoHeight keeping its aspect ratio. The result
// is premultiplied, so fully transparent pixels carry no color into the
// resampling or the final blend.
func scaleLogo(logo image.Image) *image.RGBA {
	if logo == nil {
		return nil
	}
	b := logo.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil
	}
	w := b.Dx() * LogoHeight / b.Dy()
	if w <= 0 {
		return nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, LogoHeight))
	if w == b.Dx() && b.Dy() == LogoHeight {
		draw.Draw(dst, dst.Bounds(), logo, b.Min, draw.Src)
		return dst
	}
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), logo, b, xdraw.Src, nil)
	clampPremultiplied(dst)
	return dst
}

// clampPremultiplied keeps every color channel at or below alpha, undoing the
// overshoot the Catmull-Rom kernel can produce at hard alpha edges.
func clampPremultiplied(img *image.RGBA) {
	for i := 0; i+3 < len(img.Pix); i += 4 {
		a := img.Pix[i+3]
		for c := 0; c < 3; c++ {
			if img.Pix[i+c] > a {
				img.Pix[i+c] = a
			}
		}
	}
}
