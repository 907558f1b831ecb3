package sheet

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/go-pdf/fpdf"
)

// Export writes images to path as a PDF using the default layout.
func Export(images []image.Image, path string) error {
	_, err := DefaultLayout().Export(images, path)
	return err
}

// Export writes the sheet to a temporary file next to path and renames it
// into place, so path either holds a complete document or is left untouched.
// It returns the number of pages written.
func (l Layout) Export(images []image.Image, path string) (int, error) {
	var pages int
	err := writeAtomic(path, func(w io.Writer) error {
		var err error
		pages, err = l.Write(w, images)
		return err
	})
	if err != nil {
		return 0, err
	}
	return pages, nil
}

// Write renders images onto as many pages as the layout needs and writes the
// finished PDF to w. An empty list produces a single blank page. An invalid
// layout yields ErrLayout.
func (l Layout) Write(w io.Writer, images []image.Image) (int, error) {
	if err := l.Validate(); err != nil {
		return 0, err
	}
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: l.PageWidth, Ht: l.PageHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	sizes := make([]image.Point, len(images))
	for i, img := range images {
		if img != nil {
			sizes[i] = img.Bounds().Size()
		}
	}

	page := -1
	for i, pl := range l.Place(sizes) {
		for page < pl.Page {
			pdf.AddPage()
			page++
		}
		if pl.Empty() {
			continue
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, images[i]); err != nil {
			return 0, fmt.Errorf("encode label %d: %w", i+1, err)
		}
		name := fmt.Sprintf("label-%d", i)
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, opts, &buf)
		pdf.ImageOptions(name, pl.X, pl.Y, pl.W, pl.H, false, opts, 0, "")
	}
	if page < 0 {
		pdf.AddPage()
		page = 0
	}

	if pdf.Err() {
		return 0, fmt.Errorf("render sheet: %w", pdf.Error())
	}
	if err := pdf.Output(w); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return page + 1, nil
}
