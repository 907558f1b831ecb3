// Package glyph measures and draws single lines of text by their ink bounds,
// so callers can lay text out with the same pixel extents they measured.
package glyph

import (
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Measure returns the pixel width and height of the ink bounding box of s
// rendered with face. Empty text, or a nil face, measures 0x0.
func Measure(face font.Face, s string) (int, int) {
	if face == nil || s == "" {
		return 0, 0
	}
	r := inkBounds(face, s)
	return r.Dx(), r.Dy()
}

// Draw renders s in black so that its ink bounding box starts at (x, y).
func Draw(dst draw.Image, face font.Face, s string, x, y int) {
	if face == nil || s == "" {
		return
	}
	r := inkBounds(face, s)
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.Black,
		Face: face,
		Dot:  fixed.P(x-r.Min.X, y-r.Min.Y),
	}
	d.DrawString(s)
}

// inkBounds rounds the fractional glyph bounds outward to whole pixels,
// relative to a dot at the origin.
func inkBounds(face font.Face, s string) image.Rectangle {
	b, _ := font.BoundString(face, s)
	return image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil())
}
