package surface

import "github.com/go-drift/backdrop/pkg/graphics"

// Source is an external renderable surface the backdrop can capture: the
// component's superview, the window, or the component's own surface when
// only coordinate conversion is needed.
//
// The host owns layout and z-ordering; the backdrop only reads rendered
// content through RenderInto and maps rectangles between coordinate spaces
// through ConvertRect.
type Source interface {
	// RenderInto draws the surface's current content into the offscreen
	// context. Implementations must only be invoked on the presentation
	// thread; the compositor guarantees that.
	RenderInto(ctx *Context)

	// ConvertRect maps a rectangle from this surface's coordinate space
	// into the target surface's space.
	ConvertRect(r graphics.Rect, to Source) graphics.Rect

	// Bounds returns the surface's model bounds in its own space.
	Bounds() graphics.Rect

	// PresentationBounds returns the surface's on-screen bounds as currently
	// displayed, which may differ from Bounds mid-animation.
	PresentationBounds() graphics.Rect
}

// Layer is a paintable entry in a source's sibling stack. The compositor
// hides the backdrop's own layer and every paint sibling above it during
// capture so the snapshot does not include the blur itself.
type Layer interface {
	Hidden() bool
	SetHidden(hidden bool)
}
