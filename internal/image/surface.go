package imagepkg

import (
	"errors"
	"image"

	"github.com/fogleman/gg"
)

// Card dimensions in pixels, independent of display scaling.
const (
	CardWidth  = 1050
	CardHeight = 600
)

var ErrDrawingContextUnavailable = errors.New("drawing context unavailable")

// Surface is anything a card can be painted on.
type Surface interface {
	Context2D() (*gg.Context, error)
}

// Canvas is an in-memory RGBA surface.
type Canvas struct {
	img *image.RGBA
}

func NewCanvas(w, h int) *Canvas {
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// NewCardCanvas returns a canvas of the standard card size.
func NewCardCanvas() *Canvas {
	return NewCanvas(CardWidth, CardHeight)
}

func (c *Canvas) Context2D() (*gg.Context, error) {
	if c == nil || c.img == nil || c.img.Bounds().Empty() {
		return nil, ErrDrawingContextUnavailable
	}
	return gg.NewContextForRGBA(c.img), nil
}

// Image exposes the backing pixels.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}
