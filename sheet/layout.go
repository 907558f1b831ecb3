// Package sheet packs label images onto fixed print grids and writes them as
// a paginated PDF. Single labels are saved as PNG files. Every file is
// written to a temporary name first and renamed into place.
package sheet

import (
	"errors"
	"fmt"
	"image"
)

// ErrLayout is returned for a layout without cells or printable area.
var ErrLayout = errors.New("invalid sheet layout")

// Layout is the page geometry of a label sheet. All lengths are in PDF points
// (1/72 inch).
type Layout struct {
	PageWidth  float64
	PageHeight float64
	MarginX    float64
	MarginY    float64
	Cols       int
	Rows       int
	// Fill is the share of the binding cell dimension an image may use.
	Fill float64
}

// DefaultLayout is a US Letter page with half-inch margins and a 3x10 grid.
func DefaultLayout() Layout {
	return Layout{
		PageWidth:  612,
		PageHeight: 792,
		MarginX:    36,
		MarginY:    36,
		Cols:       3,
		Rows:       10,
		Fill:       0.9,
	}
}

// Placement is where one image lands. X and Y are the top-left corner
// measured from the top-left of the page.
type Placement struct {
	Page int
	Row  int
	Col  int
	X    float64
	Y    float64
	W    float64
	H    float64
}

// Empty reports whether the placement has no drawable area. Degenerate
// images still occupy their cell but are not drawn.
func (p Placement) Empty() bool {
	return p.W <= 0 || p.H <= 0
}

// PerPage is the number of cells on one page.
func (l Layout) PerPage() int {
	return l.Cols * l.Rows
}

// Cell returns the width and height of one grid cell.
func (l Layout) Cell() (float64, float64) {
	w := (l.PageWidth - 2*l.MarginX) / float64(l.Cols)
	h := (l.PageHeight - 2*l.MarginY) / float64(l.Rows)
	return w, h
}

// Validate reports whether the layout has at least one cell of positive size
// and a fill factor in (0, 1].
func (l Layout) Validate() error {
	if l.Cols <= 0 || l.Rows <= 0 {
		return fmt.Errorf("%w: grid is %dx%d", ErrLayout, l.Cols, l.Rows)
	}
	if w, h := l.Cell(); w <= 0 || h <= 0 {
		return fmt.Errorf("%w: margins leave no printable area", ErrLayout)
	}
	if l.Fill <= 0 || l.Fill > 1 {
		return fmt.Errorf("%w: fill %g is outside (0, 1]", ErrLayout, l.Fill)
	}
	return nil
}

// Pages returns how many pages n images fill. An invalid layout fills none.
func (l Layout) Pages(n int) int {
	per := l.PerPage()
	if per <= 0 {
		return 0
	}
	return (n + per - 1) / per
}

// Place assigns every image size a cell in row-major order, starting a new
// page whenever the grid is full. Each image keeps its aspect ratio, is
// bounded by whichever cell dimension binds first, and is centered in its
// cell. A zero-width image has aspect ratio 0 and gets a zero-height
// placement. An invalid layout places nothing.
func (l Layout) Place(sizes []image.Point) []Placement {
	if l.Validate() != nil {
		return nil
	}
	cellW, cellH := l.Cell()
	cellAspect := cellH / cellW
	per := l.PerPage()

	out := make([]Placement, len(sizes))
	for i, size := range sizes {
		slot := i % per
		row, col := slot/l.Cols, slot%l.Cols

		var aspect float64
		if size.X > 0 {
			aspect = float64(size.Y) / float64(size.X)
		}

		var w, h float64
		if aspect > cellAspect {
			h = cellH * l.Fill
			w = h / aspect
		} else {
			w = cellW * l.Fill
			h = w * aspect
		}

		cellX := l.MarginX + float64(col)*cellW
		cellY := l.MarginY + float64(row)*cellH
		out[i] = Placement{
			Page: i / per,
			Row:  row,
			Col:  col,
			X:    cellX + (cellW-w)/2,
			Y:    cellY + (cellH-h)/2,
			W:    w,
			H:    h,
		}
	}
	return out
}
