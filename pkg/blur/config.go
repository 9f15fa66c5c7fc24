// Package blur places blur work on the right execution context and hands
// results back to the presentation thread. The convolution itself is a
// black-box [Func] supplied by the embedder.
package blur

import (
	"image"

	"github.com/go-drift/backdrop/pkg/graphics"
)

// Config describes one blur pass.
type Config struct {
	// Radius is the requested blur radius in logical points. Negative
	// values are treated as zero.
	Radius float64

	// Iterations is the number of convolution passes; values below 1 are
	// treated as 1. More passes approximate a Gaussian more closely.
	Iterations int

	// Ratio scales the effective radius, clamped to [0, 1]. It enables
	// cheap "almost no blur ↔ full blur" transitions over a cached frame
	// without recapturing.
	Ratio float64

	// Tint is an optional color composited over the blurred result.
	Tint *graphics.Color

	// BlendMode controls how Tint is composited.
	BlendMode graphics.BlendMode
}

// DefaultConfig returns the configuration a fresh backdrop view starts with.
func DefaultConfig() Config {
	return Config{
		Radius:     10,
		Iterations: 3,
		Ratio:      1,
	}
}

// normalized clamps all fields into their valid ranges.
func (c Config) normalized() Config {
	if c.Radius < 0 {
		c.Radius = 0
	}
	if c.Iterations < 1 {
		c.Iterations = 1
	}
	if c.Ratio < 0 {
		c.Ratio = 0
	}
	if c.Ratio > 1 {
		c.Ratio = 1
	}
	return c
}

// EffectiveRadius returns the radius actually applied: Radius scaled by
// Ratio.
func (c Config) EffectiveRadius() float64 {
	n := c.normalized()
	return n.Radius * n.Ratio
}

// Func is the external blur kernel contract.
//
// It convolves src with the given radius (in source pixels) over the given
// number of iterations, optionally compositing tint with the blend mode,
// and returns a new buffer. It must return nil on invalid or degenerate
// input; the pipeline turns that into a no-op rather than clearing the
// previously presented frame.
//
// The pipeline resolves Ratio before invoking the kernel, so Func only ever
// sees the effective radius. A Func must be safe to call from the
// background execution context.
type Func func(src *image.RGBA, radius float64, iterations int, tint *graphics.Color, mode graphics.BlendMode) *image.RGBA
