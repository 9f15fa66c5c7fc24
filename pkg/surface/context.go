package surface

import (
	"image"
	"image/color"
	stddraw "image/draw"
	"math"

	"golang.org/x/image/draw"

	"github.com/go-drift/backdrop/pkg/graphics"
)

// Context is an offscreen render target a Source draws into during capture.
//
// The target buffer is sized from the capture rectangle and the quality
// scale factor. Drawing helpers translate logical source-space coordinates
// into buffer pixels, so a Source renders with its own coordinates and the
// context handles the capture offset and density.
type Context struct {
	target *image.RGBA
	scale  float64
	origin graphics.Offset // logical origin of the capture rect in source space
	bounds graphics.Rect
	interp draw.Interpolator
}

// NewContext allocates an offscreen context covering the given logical
// rectangle at the given pixel scale. Returns nil when the rectangle or
// scale is degenerate and no buffer can be allocated.
func NewContext(bounds graphics.Rect, scale float64, interp draw.Interpolator) *Context {
	if bounds.IsEmpty() || scale <= 0 {
		return nil
	}
	w := int(math.Ceil(bounds.Width() * scale))
	h := int(math.Ceil(bounds.Height() * scale))
	if w <= 0 || h <= 0 {
		return nil
	}
	if interp == nil {
		interp = draw.NearestNeighbor
	}
	return &Context{
		target: image.NewRGBA(image.Rect(0, 0, w, h)),
		scale:  scale,
		origin: bounds.Origin(),
		bounds: bounds,
		interp: interp,
	}
}

// Scale returns the pixel density of the target buffer.
func (c *Context) Scale() float64 { return c.scale }

// Bounds returns the logical rectangle the context covers, in the capture
// source's coordinate space.
func (c *Context) Bounds() graphics.Rect { return c.bounds }

// Fill paints a uniform color over a logical rectangle.
func (c *Context) Fill(r graphics.Rect, col graphics.Color) {
	cr, cg, cb, ca := col.Components()
	src := image.NewUniform(color.RGBA{R: cr, G: cg, B: cb, A: ca})
	stddraw.Draw(c.target, c.pixelRect(r), src, image.Point{}, stddraw.Over)
}

// DrawImage scales img into the logical destination rectangle using the
// context's interpolator.
func (c *Context) DrawImage(img image.Image, dst graphics.Rect) {
	if img == nil || dst.IsEmpty() {
		return
	}
	c.interp.Scale(c.target, c.pixelRect(dst), img, img.Bounds(), draw.Over, nil)
}

// pixelRect converts a logical source-space rectangle into target pixels.
func (c *Context) pixelRect(r graphics.Rect) image.Rectangle {
	return image.Rect(
		int(math.Round((r.Left-c.origin.X)*c.scale)),
		int(math.Round((r.Top-c.origin.Y)*c.scale)),
		int(math.Round((r.Right-c.origin.X)*c.scale)),
		int(math.Round((r.Bottom-c.origin.Y)*c.scale)),
	)
}

// Captured seals the context into an immutable captured frame.
// The context must not be drawn into afterwards.
func (c *Context) Captured() *Captured {
	return &Captured{
		Pixels: c.target,
		Scale:  c.scale,
		Bounds: c.bounds,
	}
}
