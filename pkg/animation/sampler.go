package animation

// RadiusSampler yields the presentation-time value of the blur radius.
//
// While a radius change is animating, the value actually showing on screen
// differs from the model value the owner last set. Consumers deciding what
// radius to request for the next blur pass must sample this interface, not
// the model value, so a continuous animation produces continuously-updated
// blur strength instead of snapping to the target.
type RadiusSampler interface {
	CurrentValue() float64
}

// StaticRadius is a sampler for a radius that is not animating.
type StaticRadius float64

func (s StaticRadius) CurrentValue() float64 { return float64(s) }

// InterpolatingRadius is a sampler for a radius mid-animation.
type InterpolatingRadius struct {
	From     float64
	To       float64
	Progress float64 // eased progress, clamped to [0, 1]
}

func (s InterpolatingRadius) CurrentValue() float64 {
	p := clampUnit(s.Progress)
	return s.From + (s.To-s.From)*p
}
