package sheet

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/openclaw/labelgen/internal/atomicfile"
)

// ErrIO is returned when output cannot be written to its destination.
var ErrIO = errors.New("output failed")

// FileMode is the permission of every saved PNG and PDF.
const FileMode = 0o644

// SavePNG writes img to path as a PNG file, atomically.
func SavePNG(img image.Image, path string) error {
	return writeAtomic(path, func(w io.Writer) error {
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("%w: encode png: %v", ErrIO, err)
		}
		return nil
	})
}

// writeAtomic replaces path with what write produces. Errors from write are
// returned as they are; filesystem failures wrap ErrIO.
func writeAtomic(path string, write func(io.Writer) error) error {
	var werr error
	err := atomicfile.Write(path, FileMode, func(w io.Writer) error {
		werr = write(w)
		return werr
	})
	if werr != nil {
		return werr
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}
