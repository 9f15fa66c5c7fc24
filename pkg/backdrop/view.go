package backdrop

import (
	"sync"
	"time"

	"github.com/go-drift/backdrop/pkg/animation"
	"github.com/go-drift/backdrop/pkg/blur"
	"github.com/go-drift/backdrop/pkg/compositor"
	"github.com/go-drift/backdrop/pkg/dispatch"
	"github.com/go-drift/backdrop/pkg/graphics"
)

// defaultBackground is the shared blur pool used when the embedder does not
// inject its own background context.
var defaultBackground = sync.OnceValue(func() dispatch.Queue {
	return dispatch.NewPool(0)
})

// Options configures a new View.
type Options struct {
	// Presentation is the exclusive queue standing in for the presentation
	// thread. Required.
	Presentation dispatch.Exclusive

	// Background is the execution context asynchronous blur work runs on.
	// When nil, a shared process-wide pool is used.
	Background dispatch.Queue

	// Blur is the external blur kernel. Required for any non-zero radius.
	Blur blur.Func

	// DeviceScale is the display's native pixels-per-point factor.
	// Defaults to 1.
	DeviceScale float64
}

// View is the owner-facing surface of the backdrop component.
//
// All properties are mutable at any time from the presentation thread; the
// View is not safe for concurrent mutation from other goroutines. In the
// static tracking mode, each configuration change that is not part of a
// radius animation immediately re-blurs the cached snapshot.
type View struct {
	comp  *compositor.Compositor
	pipe  *blur.Pipeline
	layer *PresentationLayer
	ctrl  controller

	cfg       blur.Config
	anim      animation.RadiusAnimation
	animating bool // inside an Animate mutation block
}

// NewView creates a detached backdrop view.
func NewView(opts Options) *View {
	background := opts.Background
	if background == nil {
		background = defaultBackground()
	}
	comp := compositor.New(opts.Presentation)
	if opts.DeviceScale > 0 {
		comp.DeviceScale = opts.DeviceScale
	}

	v := &View{
		comp:  comp,
		pipe:  blur.NewPipeline(opts.Blur, opts.Presentation, background),
		layer: NewPresentationLayer(blur.DefaultConfig().Radius),
		cfg:   blur.DefaultConfig(),
	}
	v.ctrl = controller{
		comp:  v.comp,
		pipe:  v.pipe,
		layer: v.layer,
		config: func() blur.Config {
			cfg := v.cfg
			cfg.Radius = v.layer.PresentationRadius()
			return cfg
		},
	}
	v.anim.OnTick = v.radiusTick
	return v
}

// Layer returns the view's presentation layer. The host composites its
// contents and registers it in the paint hierarchy.
func (v *View) Layer() *PresentationLayer { return v.layer }

// State returns the refresh controller's current lifecycle state.
func (v *View) State() State { return v.ctrl.state }

// AttachTo enters a live hierarchy. Per the tracking mode this either takes
// a one-shot snapshot or subscribes to a frame-clock channel.
func (v *View) AttachTo(att Attachment) {
	v.ctrl.attach(att)
}

// Detach leaves the hierarchy: the frame-clock subscription is torn down,
// the cached snapshot and displayed contents are left as-is.
func (v *View) Detach() {
	v.ctrl.detach()
}

// BlurRadius returns the model blur radius in logical points.
func (v *View) BlurRadius() float64 { return v.cfg.Radius }

// SetBlurRadius sets the blur radius. Outside an Animate block the change
// applies immediately; inside one it becomes the animation target.
func (v *View) SetBlurRadius(radius float64) {
	if radius < 0 {
		radius = 0
	}
	v.cfg.Radius = radius
	if v.animating {
		return
	}
	v.anim.Stop()
	v.layer.setSampler(animation.StaticRadius(radius))
	v.configChanged()
}

// BlurRatio returns the 0..1 scalar applied to the effective radius.
func (v *View) BlurRatio() float64 { return v.cfg.Ratio }

// SetBlurRatio scales the effective blur radius without recapturing. In the
// static state this re-blurs the cached snapshot, which is what makes cheap
// "no blur ↔ full blur" transitions possible.
func (v *View) SetBlurRatio(ratio float64) {
	v.cfg.Ratio = ratio
	v.configChanged()
}

// Iterations returns the number of convolution passes.
func (v *View) Iterations() int { return v.cfg.Iterations }

// SetIterations sets the number of convolution passes (minimum 1).
func (v *View) SetIterations(n int) {
	v.cfg.Iterations = n
	v.configChanged()
}

// BlendColor returns the tint composited over the blurred result, or nil.
func (v *View) BlendColor() *graphics.Color { return v.cfg.Tint }

// SetBlendColor sets the tint composited over the blurred result.
// Pass nil to remove the tint.
func (v *View) SetBlendColor(color *graphics.Color) {
	v.cfg.Tint = color
	v.configChanged()
}

// BlendMode returns how the tint is composited.
func (v *View) BlendMode() graphics.BlendMode { return v.cfg.BlendMode }

// SetBlendMode sets how the tint is composited.
func (v *View) SetBlendMode(mode graphics.BlendMode) {
	v.cfg.BlendMode = mode
	v.configChanged()
}

// TrackingMode returns the current frame-clock policy.
func (v *View) TrackingMode() TrackingMode { return v.ctrl.mode }

// SetTrackingMode changes the frame-clock policy. While attached, the
// existing subscription is torn down and re-established synchronously
// before the next frame.
func (v *View) SetTrackingMode(mode TrackingMode) {
	v.ctrl.setTrackingMode(mode)
}

// DrawsAsynchronously returns whether blur work runs on the background
// context.
func (v *View) DrawsAsynchronously() bool { return v.ctrl.async }

// SetDrawsAsynchronously moves blur work onto the background context. The
// completion is still applied on the presentation queue.
func (v *View) SetDrawsAsynchronously(async bool) {
	v.ctrl.async = async
}

// DeepRendering returns whether captures read the window instead of the
// nearest ancestor surface.
func (v *View) DeepRendering() bool { return v.ctrl.deep }

// SetDeepRendering switches the capture source between the nearest ancestor
// surface and the top-level window.
func (v *View) SetDeepRendering(deep bool) {
	v.ctrl.deep = deep
}

// CaptureQuality returns the capture quality preset.
func (v *View) CaptureQuality() compositor.Quality { return v.comp.Quality }

// SetCaptureQuality selects the capture scale and interpolation preset.
func (v *View) SetCaptureQuality(q compositor.Quality) {
	v.comp.Quality = q
}

// Refresh discards the cached snapshot, resets the blur ratio to full
// strength and forces one immediate capture→blur→present cycle.
func (v *View) Refresh() {
	v.cfg.Ratio = 1
	v.ctrl.refresh()
}

// Remove performs the same reset as Refresh but clears the visible contents
// instead of recapturing.
func (v *View) Remove() {
	v.cfg.Ratio = 1
	v.ctrl.remove()
}

// Animate wraps a radius mutation in a presentation-time transition: the
// on-screen radius interpolates from its current presentation value to the
// value mutate sets, over the given duration and curve. Each animation
// frame produces a re-blur at the interpolated radius instead of snapping.
//
//	view.Animate(250*time.Millisecond, animation.EaseInOut, func() {
//	    view.SetBlurRadius(20)
//	})
func (v *View) Animate(duration time.Duration, curve func(float64) float64, mutate func()) {
	if mutate == nil {
		return
	}
	from := v.layer.PresentationRadius()
	v.animating = true
	mutate()
	v.animating = false

	v.anim.Duration = duration
	v.anim.Curve = curve
	v.anim.Start(from, v.cfg.Radius)
}

// radiusTick applies one animation frame: swap in the interpolated sampler
// and, in the static state, re-blur the cached snapshot at the new radius.
// Live states pick the sampler up on their next frame callback.
func (v *View) radiusTick(s animation.RadiusSampler, _ bool) {
	v.layer.setSampler(s)
	if v.ctrl.state == StateStaticCaptured {
		v.ctrl.reblurCached(v.ctrl.async)
	}
}

// configChanged applies a discrete (non-animated) configuration mutation.
// In the static state with a cached snapshot this is a synchronous re-blur
// and redraw; live states pick the change up on their next frame.
func (v *View) configChanged() {
	if v.ctrl.state == StateStaticCaptured {
		v.ctrl.reblurCached(false)
	}
}
