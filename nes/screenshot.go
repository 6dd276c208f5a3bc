package nes

import (
	"image"
	"image/png"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// WriteScreenshot encodes the frame as PNG, scaled up by an integer factor with
// nearest-neighbor sampling so pixels stay sharp.
func WriteScreenshot(w io.Writer, frame *image.RGBA, scale int) error {
	if scale < 1 {
		return errors.Errorf("invalid screenshot scale %d", scale)
	}
	b := frame.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), frame, b, draw.Src, nil)
	if err := png.Encode(w, dst); err != nil {
		return errors.Wrap(err, "encoding screenshot")
	}
	return nil
}
