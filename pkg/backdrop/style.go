package backdrop

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/backdrop/pkg/compositor"
	"github.com/go-drift/backdrop/pkg/graphics"
)

// Style is a declarative effect preset, typically loaded from a YAML
// document shipped alongside the host application's theme:
//
//	radius: 16
//	iterations: 3
//	tint: "#66FFFFFF"
//	blend_mode: src_over
//	tracking: common
//	quality: high
//	async: true
//
// Only fields present in the document are applied; everything else keeps
// the view's current value.
type Style struct {
	Radius     *float64 `yaml:"radius,omitempty"`
	Iterations *int     `yaml:"iterations,omitempty"`
	Ratio      *float64 `yaml:"ratio,omitempty"`
	Tint       string   `yaml:"tint,omitempty"`
	BlendMode  string   `yaml:"blend_mode,omitempty"`
	Tracking   string   `yaml:"tracking,omitempty"`
	Quality    string   `yaml:"quality,omitempty"`
	Async      *bool    `yaml:"async,omitempty"`
	Deep       *bool    `yaml:"deep,omitempty"`
}

// ParseStyle reads a style from YAML.
func ParseStyle(data []byte) (*Style, error) {
	var s Style
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse backdrop style: %w", err)
	}
	return &s, nil
}

// ApplyTo applies the style's set fields to a view. Named fields are
// validated before anything is mutated, so a bad style leaves the view
// untouched.
func (s *Style) ApplyTo(v *View) error {
	var (
		tint     *graphics.Color
		mode     graphics.BlendMode
		tracking TrackingMode
		quality  compositor.Quality
		err      error
	)
	if s.Tint != "" {
		c, err := graphics.ParseColor(s.Tint)
		if err != nil {
			return err
		}
		tint = &c
	}
	if s.BlendMode != "" {
		if mode, err = graphics.ParseBlendMode(s.BlendMode); err != nil {
			return err
		}
	}
	if s.Tracking != "" {
		if tracking, err = ParseTrackingMode(s.Tracking); err != nil {
			return err
		}
	}
	if s.Quality != "" {
		if quality, err = compositor.ParseQuality(s.Quality); err != nil {
			return err
		}
	}

	if s.Radius != nil {
		v.SetBlurRadius(*s.Radius)
	}
	if s.Iterations != nil {
		v.SetIterations(*s.Iterations)
	}
	if s.Ratio != nil {
		v.SetBlurRatio(*s.Ratio)
	}
	if tint != nil {
		v.SetBlendColor(tint)
	}
	if s.BlendMode != "" {
		v.SetBlendMode(mode)
	}
	if s.Quality != "" {
		v.SetCaptureQuality(quality)
	}
	if s.Async != nil {
		v.SetDrawsAsynchronously(*s.Async)
	}
	if s.Deep != nil {
		v.SetDeepRendering(*s.Deep)
	}
	if s.Tracking != "" {
		v.SetTrackingMode(tracking)
	}
	return nil
}
