package symbol

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/skip2/go-qrcode"
)

const (
	// qrModuleSize is the edge length of one QR module in pixels.
	qrModuleSize = 10
	// qrBorder is the white quiet zone around the symbol, in modules.
	qrBorder = 2
)

// renderQR encodes data at the Low recovery level. go-qrcode picks the
// smallest version that holds the payload.
func renderQR(data string) (*image.RGBA, error) {
	q, err := qrcode.New(data, qrcode.Low)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidData, QRCode, err)
	}
	q.DisableBorder = true
	bits := q.Bitmap()

	size := (len(bits) + 2*qrBorder) * qrModuleSize
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	for y, row := range bits {
		for x, dark := range row {
			if !dark {
				continue
			}
			px := (x + qrBorder) * qrModuleSize
			py := (y + qrBorder) * qrModuleSize
			cell := image.Rect(px, py, px+qrModuleSize, py+qrModuleSize)
			draw.Draw(img, cell, image.Black, image.Point{}, draw.Src)
		}
	}
	return img, nil
}
