package backdrop

import (
	stderrors "errors"
	"fmt"
	"sync/atomic"

	"github.com/go-drift/backdrop/pkg/animation"
	"github.com/go-drift/backdrop/pkg/blur"
	"github.com/go-drift/backdrop/pkg/compositor"
	"github.com/go-drift/backdrop/pkg/errors"
	"github.com/go-drift/backdrop/pkg/surface"
)

// TrackingMode governs which frame-clock channel drives recapture, or
// whether the view captures at all after the initial snapshot.
type TrackingMode int

const (
	// TrackingModeNone captures the backdrop once and reuses the snapshot.
	TrackingModeNone TrackingMode = iota
	// TrackingModeTracking recaptures on frames that occur during active
	// user interaction (scrolling).
	TrackingModeTracking
	// TrackingModeCommon recaptures on every frame.
	TrackingModeCommon
)

var _TrackingMode_names = []string{"none", "tracking", "common"}

func (m TrackingMode) String() string {
	if int(m) >= 0 && int(m) < len(_TrackingMode_names) {
		return _TrackingMode_names[m]
	}
	return fmt.Sprintf("TrackingMode(%d)", int(m))
}

// ParseTrackingMode resolves a tracking mode name as used in style files.
func ParseTrackingMode(name string) (TrackingMode, error) {
	for i, n := range _TrackingMode_names {
		if n == name {
			return TrackingMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tracking mode %q", name)
}

// State identifies where the refresh controller is in its lifecycle.
type State int

const (
	// StateDetached means no frame-clock subscription and no host hierarchy.
	StateDetached State = iota
	// StateStaticCaptured means tracking mode none with a one-shot snapshot.
	StateStaticCaptured
	// StateLiveTracking means subscribed to the interaction frame channel.
	StateLiveTracking
	// StateLiveAlways means subscribed to the continuous frame channel.
	StateLiveAlways
)

func (s State) String() string {
	switch s {
	case StateStaticCaptured:
		return "static-captured"
	case StateLiveTracking:
		return "live-tracking"
	case StateLiveAlways:
		return "live-always"
	default:
		return "detached"
	}
}

// Attachment connects a view to its host hierarchy. The host implements
// this; the backdrop only reads through it.
type Attachment interface {
	// Superview returns the nearest ancestor surface, or nil.
	Superview() surface.Source
	// Window returns the top-level window surface, or nil.
	Window() surface.Source
	// OwnSurface returns the component's own surface in the hierarchy,
	// used for coordinate conversion.
	OwnSurface() surface.Source
	// PaintSiblingsAbove returns the layers painted above the component in
	// its source's sibling stack, in paint order.
	PaintSiblingsAbove() []surface.Layer
}

var errNoSource = stderrors.New("no capture source reachable")

// controller is the frame-synchronization state machine: it decides per
// frame callback whether to recapture, runs the blur synchronously or
// asynchronously, and serializes the handoff back to the presentation
// layer. Except for the async blur completion (which the pipeline marshals
// onto the presentation queue), every method runs on the presentation
// thread.
type controller struct {
	comp  *compositor.Compositor
	pipe  *blur.Pipeline
	layer *PresentationLayer

	// config samples the blur configuration for the next pass, with the
	// radius already resolved to the presentation-time value.
	config func() blur.Config

	att    Attachment
	state  State
	mode   TrackingMode
	deep   bool
	async  bool
	cache  *surface.Captured
	ticker *animation.Ticker

	// generation orders capture→blur cycles. A completion whose token is
	// no longer the latest issued is dropped, so a slow stale blur can
	// never overwrite a fresher frame.
	generation atomic.Uint64
}

// attach enters a live hierarchy and establishes the subscription (or
// one-shot snapshot) the current tracking mode calls for.
func (c *controller) attach(att Attachment) {
	if att == nil {
		return
	}
	c.att = att
	// Re-entering a live context invalidates any stale static snapshot.
	if c.mode == TrackingModeNone {
		c.cache = nil
	}
	c.applyMode()
}

// detach leaves the hierarchy: the clock subscription is torn down but the
// cached snapshot is kept until Refresh or Remove.
func (c *controller) detach() {
	c.unsubscribe()
	c.att = nil
	c.state = StateDetached
}

// setTrackingMode re-establishes the subscription per the new mode's rule,
// synchronously, before the next frame.
func (c *controller) setTrackingMode(mode TrackingMode) {
	if c.mode == mode {
		return
	}
	c.mode = mode
	if c.att == nil {
		return
	}
	if mode == TrackingModeNone {
		c.cache = nil
	}
	c.applyMode()
}

// applyMode tears down any existing subscription and installs the one the
// current mode requires. Requires an attachment.
func (c *controller) applyMode() {
	c.unsubscribe()
	switch c.mode {
	case TrackingModeTracking:
		c.state = StateLiveTracking
		c.subscribe(animation.ChannelInteraction)
	case TrackingModeCommon:
		c.state = StateLiveAlways
		c.subscribe(animation.ChannelContinuous)
	default:
		c.state = StateStaticCaptured
		c.runCycle()
	}
}

func (c *controller) subscribe(channel animation.Channel) {
	c.ticker = animation.NewTicker(channel, c.runCycle)
	c.ticker.Start()
}

func (c *controller) unsubscribe() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}

// refresh discards the snapshot and forces one full capture cycle
// regardless of the current state.
func (c *controller) refresh() {
	c.cache = nil
	c.runCycle()
}

// remove discards the snapshot and clears the visible contents without
// recapturing.
func (c *controller) remove() {
	c.cache = nil
	c.layer.Clear()
}

// runCycle performs one capture→blur→present cycle: reuse the static
// snapshot if one exists, otherwise capture fresh, then hand the frame to
// the blur pipeline.
func (c *controller) runCycle() {
	src := c.captureSource()
	if src == nil {
		errors.Report(&errors.BackdropError{
			Op:   "backdrop.controller.runCycle",
			Kind: errors.KindCapture,
			Err:  errNoSource,
		})
		return
	}
	img := c.cache
	usedCache := img != nil
	if img == nil {
		img = c.comp.Capture(compositor.Request{
			Source:  src,
			Owner:   c.att.OwnSurface(),
			Convert: !c.deep,
			Hide:    c.hideList(),
		})
		if img == nil {
			return
		}
		if c.mode == TrackingModeNone {
			c.cache = img
		}
	}
	c.process(img, usedCache, src, c.async)
}

// reblurCached re-runs blur→present on the cached snapshot without
// recapturing. Returns false when there is nothing cached. This is the
// cheap path for ratio and config mutations in the static state.
func (c *controller) reblurCached(async bool) bool {
	if c.cache == nil {
		return false
	}
	var src surface.Source
	if c.att != nil {
		src = c.captureSource()
	}
	c.process(c.cache, true, src, async)
	return true
}

// process issues a generation token and sends one frame through the blur
// pipeline. The completion drops superseded results and otherwise presents,
// fixing the origin only when deep rendering is active and the frame came
// from the static cache (the component may have moved relative to its
// capture source since then).
func (c *controller) process(img *surface.Captured, usedCache bool, src surface.Source, async bool) {
	gen := c.generation.Add(1)
	cfg := c.config()
	fixOrigin := c.deep && usedCache
	var owner surface.Source
	if c.att != nil {
		owner = c.att.OwnSurface()
	}
	c.pipe.Process(img, cfg, async, func(out *surface.Captured) {
		if c.generation.Load() != gen {
			return
		}
		c.layer.Draw(out, fixOrigin, src, owner)
	})
}

// captureSource resolves the surface to capture per the deep-rendering
// flag: the window when deep, the nearest ancestor otherwise.
func (c *controller) captureSource() surface.Source {
	if c.att == nil {
		return nil
	}
	if c.deep {
		return c.att.Window()
	}
	return c.att.Superview()
}

// hideList is the ordered set of layers to hide during capture: the view's
// own layer first, then every paint sibling above it.
func (c *controller) hideList() []surface.Layer {
	siblings := c.att.PaintSiblingsAbove()
	layers := make([]surface.Layer, 0, len(siblings)+1)
	layers = append(layers, c.layer)
	return append(layers, siblings...)
}
