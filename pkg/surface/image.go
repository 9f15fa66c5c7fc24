// Package surface defines the captured-image value type and the contracts an
// embedding host must provide for its renderable surfaces.
package surface

import (
	"image"

	"github.com/go-drift/backdrop/pkg/graphics"
)

// Captured is one captured frame of the backdrop: a pixel buffer plus the
// compositing metadata needed to put it back on screen.
//
// A Captured is immutable once produced. Ownership transfers through the
// pipeline (compositor → blur → presentation); stages never share one.
type Captured struct {
	// Pixels is the buffer at Scale pixel density.
	Pixels *image.RGBA

	// Scale is the pixel density the buffer was rendered at
	// (pixels per logical point).
	Scale float64

	// Bounds is the logical rectangle the buffer covers, expressed in the
	// capture source's coordinate space.
	Bounds graphics.Rect
}

// LogicalSize returns the logical size the buffer covers.
func (c *Captured) LogicalSize() graphics.Size {
	return c.Bounds.Size()
}

// Clone returns a deep copy with its own pixel buffer.
func (c *Captured) Clone() *Captured {
	if c == nil {
		return nil
	}
	pix := image.NewRGBA(c.Pixels.Rect)
	copy(pix.Pix, c.Pixels.Pix)
	return &Captured{
		Pixels: pix,
		Scale:  c.Scale,
		Bounds: c.Bounds,
	}
}
