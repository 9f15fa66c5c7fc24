package blur

import (
	stderrors "errors"

	"github.com/go-drift/backdrop/pkg/dispatch"
	"github.com/go-drift/backdrop/pkg/errors"
	"github.com/go-drift/backdrop/pkg/surface"
)

var errNoOutput = stderrors.New("blur kernel produced no output")

// Pipeline runs the blur kernel on the right execution context.
//
// Its sole responsibility is thread placement and ordering, not the
// convolution: synchronous requests run inline on the calling goroutine,
// asynchronous ones run on the background context with the completion
// marshalled back onto the presentation queue. The handoff back is
// enqueue-only — the background worker never waits for the presentation
// queue to apply the result.
type Pipeline struct {
	fn           Func
	presentation dispatch.Exclusive
	background   dispatch.Queue
}

// NewPipeline creates a pipeline around the given kernel and execution
// contexts.
func NewPipeline(fn Func, presentation dispatch.Exclusive, background dispatch.Queue) *Pipeline {
	return &Pipeline{
		fn:           fn,
		presentation: presentation,
		background:   background,
	}
}

// Process blurs img per cfg and delivers the result via completion.
//
// Sync (async=false): the kernel and the completion run inline.
// Async (async=true): the kernel runs on the background context and the
// completion is enqueued onto the presentation queue.
//
// When the kernel yields nothing the completion is never invoked, leaving
// whatever is currently presented untouched. An effective radius of zero
// bypasses the kernel entirely and delivers an unblurred copy of img.
func (p *Pipeline) Process(img *surface.Captured, cfg Config, async bool, completion func(*surface.Captured)) {
	if img == nil || completion == nil {
		return
	}
	cfg = cfg.normalized()

	if !async {
		if out := p.run(img, cfg); out != nil {
			completion(out)
		}
		return
	}

	p.background.Async(func() {
		defer errors.Recover("blur.Pipeline.Process")
		out := p.run(img, cfg)
		if out == nil {
			return
		}
		p.presentation.Async(func() {
			completion(out)
		})
	})
}

// run executes one blur pass and returns the result, or nil when the kernel
// declines the input.
func (p *Pipeline) run(img *surface.Captured, cfg Config) *surface.Captured {
	radius := cfg.EffectiveRadius()
	if radius <= 0 {
		// Ratio has scaled the blur away; the result is the source itself.
		// Copy so the cached frame stays immutable.
		return img.Clone()
	}
	if p.fn == nil {
		return nil
	}
	// Radius is configured in logical points; the kernel works in pixels.
	out := p.fn(img.Pixels, radius*img.Scale, cfg.Iterations, cfg.Tint, cfg.BlendMode)
	if out == nil {
		errors.Report(&errors.BackdropError{
			Op:   "blur.Pipeline.run",
			Kind: errors.KindBlur,
			Err:  errNoOutput,
		})
		return nil
	}
	return &surface.Captured{
		Pixels: out,
		Scale:  img.Scale,
		Bounds: img.Bounds,
	}
}
