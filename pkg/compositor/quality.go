package compositor

import (
	"fmt"

	"golang.org/x/image/draw"
)

// Quality selects the trade-off between capture fidelity and cost.
//
// A preset fixes two axes: the pixel scale the offscreen buffer is rendered
// at (native device scale vs. one pixel per logical point) and the
// interpolation used when sources scale imagery into the buffer.
type Quality int

const (
	// QualityDefault captures at native device scale with default
	// interpolation.
	QualityDefault Quality = iota
	// QualityLow captures at point scale with no interpolation.
	QualityLow
	// QualityMedium captures at point scale with default interpolation.
	QualityMedium
	// QualityHigh captures at native device scale with default interpolation.
	QualityHigh
)

var _Quality_names = []string{"default", "low", "medium", "high"}

func (q Quality) String() string {
	if int(q) >= 0 && int(q) < len(_Quality_names) {
		return _Quality_names[q]
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}

// ParseQuality resolves a quality preset name as used in style files.
func ParseQuality(name string) (Quality, error) {
	for i, n := range _Quality_names {
		if n == name {
			return Quality(i), nil
		}
	}
	return 0, fmt.Errorf("unknown capture quality %q", name)
}

// parameters returns the pixel scale and interpolator for the preset given
// the device's native scale factor.
func (q Quality) parameters(deviceScale float64) (float64, draw.Interpolator) {
	if deviceScale <= 0 {
		deviceScale = 1
	}
	switch q {
	case QualityLow:
		return 1, draw.NearestNeighbor
	case QualityMedium:
		return 1, draw.ApproxBiLinear
	case QualityHigh:
		return deviceScale, draw.ApproxBiLinear
	default:
		return deviceScale, draw.ApproxBiLinear
	}
}
