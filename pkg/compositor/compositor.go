// Package compositor renders a capture source into an offscreen captured
// frame on the presentation thread.
package compositor

import (
	stderrors "errors"

	"github.com/go-drift/backdrop/pkg/dispatch"
	"github.com/go-drift/backdrop/pkg/errors"
	"github.com/go-drift/backdrop/pkg/surface"
)

var errNoContext = stderrors.New("could not allocate offscreen context")

// Request describes one capture.
type Request struct {
	// Source is the surface being captured (superview or window).
	Source surface.Source

	// Owner is the backdrop component's own surface, used for coordinate
	// conversion when Convert is set.
	Owner surface.Source

	// Convert selects the capture rectangle: when true, the owner's
	// presentation-time bounds converted into the source's space; when
	// false, the source's raw bounds.
	Convert bool

	// Hide lists the layers to hide for the duration of the render, in
	// paint order: the component's own layer followed by every paint
	// sibling above it. Hiding them keeps the snapshot from including the
	// blur surface itself.
	Hide []surface.Layer
}

// Compositor captures a source surface into a pixel buffer.
//
// The render call always executes on the presentation queue, the only
// context allowed to read the live render tree. Callers on other goroutines
// block until the capture completes; the presentation queue never waits on
// a caller, so the rendezvous is bounded.
type Compositor struct {
	queue dispatch.Exclusive

	// DeviceScale is the native pixels-per-point factor of the display.
	DeviceScale float64

	// Quality selects the capture scale and interpolation preset.
	Quality Quality
}

// New creates a compositor bound to the presentation queue.
func New(queue dispatch.Exclusive) *Compositor {
	return &Compositor{
		queue:       queue,
		DeviceScale: 1,
	}
}

// Capture renders the request's source into a new captured frame.
// Returns nil when the capture rectangle is degenerate or the offscreen
// context cannot be allocated; the cycle is skipped, never surfaced.
func (c *Compositor) Capture(req Request) *surface.Captured {
	if req.Source == nil {
		return nil
	}
	scale, interp := c.Quality.parameters(c.DeviceScale)

	var result *surface.Captured
	dispatch.Sync(c.queue, func() {
		defer errors.Recover("compositor.Capture")

		rect := req.Source.Bounds()
		if req.Convert && req.Owner != nil {
			rect = req.Owner.ConvertRect(req.Owner.PresentationBounds(), req.Source)
		}
		ctx := surface.NewContext(rect, scale, interp)
		if ctx == nil {
			errors.Report(&errors.BackdropError{
				Op:   "compositor.Capture",
				Kind: errors.KindOffscreen,
				Err:  errNoContext,
			})
			return
		}

		hidden := hideLayers(req.Hide)
		defer restoreLayers(hidden)

		req.Source.RenderInto(ctx)
		result = ctx.Captured()
	})
	return result
}

// hideLayers hides every layer that is currently visible and returns the
// ones it hid, in the order it hid them. Layers the host already hid are
// left alone so restore cannot make them visible.
func hideLayers(layers []surface.Layer) []surface.Layer {
	hidden := make([]surface.Layer, 0, len(layers))
	for _, l := range layers {
		if l == nil || l.Hidden() {
			continue
		}
		l.SetHidden(true)
		hidden = append(hidden, l)
	}
	return hidden
}

// restoreLayers re-shows layers in the same order they were hidden.
// Runs via defer so visibility is restored even if the render panics.
func restoreLayers(hidden []surface.Layer) {
	for _, l := range hidden {
		l.SetHidden(false)
	}
}
