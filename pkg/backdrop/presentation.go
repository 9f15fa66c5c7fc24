package backdrop

import (
	"image"

	"github.com/go-drift/backdrop/pkg/animation"
	"github.com/go-drift/backdrop/pkg/graphics"
	"github.com/go-drift/backdrop/pkg/surface"
)

// PresentationLayer is the visible surface of a backdrop view.
//
// It holds the currently displayed blurred bitmap together with a
// presentation-time radius sampler that is independent of the discrete
// captured bitmap, so radius transitions can animate smoothly between
// captures. All mutation happens on the presentation thread.
type PresentationLayer struct {
	hidden        bool
	contents      *image.RGBA
	contentsScale float64
	contentsRect  graphics.Rect
	sampler       animation.RadiusSampler
}

// NewPresentationLayer creates a layer whose radius starts at the given
// static value.
func NewPresentationLayer(radius float64) *PresentationLayer {
	return &PresentationLayer{
		sampler: animation.StaticRadius(radius),
	}
}

// Hidden reports whether the layer is currently hidden.
// Part of the [surface.Layer] contract so the compositor can hide this
// layer during capture to avoid blurring its own output.
func (l *PresentationLayer) Hidden() bool { return l.hidden }

// SetHidden toggles the layer's visibility.
func (l *PresentationLayer) SetHidden(hidden bool) { l.hidden = hidden }

// Draw presents a blurred frame.
//
// The display rectangle is owner's bounds converted into base's coordinate
// space when fixOrigin is set — compensating for the component having moved
// or scrolled since the frame was captured — and owner's own bounds
// otherwise. The frame's pixel density is recorded alongside the contents so
// downstream compositing is not softened by a scale mismatch.
func (l *PresentationLayer) Draw(img *surface.Captured, fixOrigin bool, base, owner surface.Source) {
	if img == nil {
		return
	}
	var rect graphics.Rect
	if owner != nil {
		rect = owner.Bounds()
		if fixOrigin && base != nil {
			rect = owner.ConvertRect(owner.Bounds(), base)
		}
	} else {
		rect = img.Bounds
	}
	l.contents = img.Pixels
	l.contentsScale = img.Scale
	l.contentsRect = rect
}

// Clear discards the displayed contents without touching the radius state.
func (l *PresentationLayer) Clear() {
	l.contents = nil
	l.contentsScale = 0
	l.contentsRect = graphics.Rect{}
}

// Contents returns the currently displayed bitmap, or nil when nothing is
// presented.
func (l *PresentationLayer) Contents() *image.RGBA { return l.contents }

// ContentsScale returns the pixel density of the displayed bitmap.
func (l *PresentationLayer) ContentsScale() float64 { return l.contentsScale }

// ContentsRect returns the display rectangle of the current contents.
func (l *PresentationLayer) ContentsRect() graphics.Rect { return l.contentsRect }

// PresentationRadius returns the radius currently showing on screen: the
// interpolated value while a radius animation is in flight, the model value
// otherwise. Blur passes must use this, not the model radius.
func (l *PresentationLayer) PresentationRadius() float64 {
	return l.sampler.CurrentValue()
}

// setSampler swaps the radius sampler. Called when a radius animation
// starts, ticks, or settles.
func (l *PresentationLayer) setSampler(s animation.RadiusSampler) {
	if s != nil {
		l.sampler = s
	}
}
