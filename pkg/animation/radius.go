package animation

import "time"

// RadiusAnimation drives an interpolated blur-radius transition over time.
//
// On each frame tick it produces an [InterpolatingRadius] sampler with eased
// progress and hands it to the OnTick callback; when the duration elapses it
// delivers a final [StaticRadius] at the target value and stops. The
// animation rides the continuous frame channel so it keeps progressing even
// when no interaction is active.
type RadiusAnimation struct {
	// Duration is the length of the transition.
	Duration time.Duration

	// Curve transforms linear progress (optional, defaults to LinearCurve).
	Curve func(float64) float64

	// OnTick receives the sampler for each frame. done is true exactly once,
	// on the final tick. OnTick runs on the frame-clock goroutine.
	OnTick func(sampler RadiusSampler, done bool)

	from   float64
	to     float64
	start  time.Time
	ticker *Ticker
}

// Start begins animating from the given value to the target.
// An in-flight animation is stopped first.
func (a *RadiusAnimation) Start(from, to float64) {
	a.Stop()
	a.from = from
	a.to = to
	a.start = Now()

	if a.Duration <= 0 {
		a.finish()
		return
	}
	a.ticker = NewTicker(ChannelContinuous, a.tick)
	a.ticker.Start()
}

func (a *RadiusAnimation) tick() {
	progress := float64(Now().Sub(a.start)) / float64(a.Duration)
	if progress >= 1 {
		a.finish()
		return
	}
	eased := progress
	if a.Curve != nil {
		eased = a.Curve(progress)
	}
	if a.OnTick != nil {
		a.OnTick(InterpolatingRadius{From: a.from, To: a.to, Progress: eased}, false)
	}
}

func (a *RadiusAnimation) finish() {
	a.Stop()
	if a.OnTick != nil {
		a.OnTick(StaticRadius(a.to), true)
	}
}

// Stop halts the animation without delivering a final value.
func (a *RadiusAnimation) Stop() {
	if a.ticker != nil {
		a.ticker.Stop()
		a.ticker = nil
	}
}

// IsAnimating returns true while a transition is in flight.
func (a *RadiusAnimation) IsAnimating() bool {
	return a.ticker != nil && a.ticker.IsActive()
}
