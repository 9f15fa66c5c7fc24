package graphics

import "fmt"

// BlendMode controls how a tint color is composited over blurred content.
type BlendMode int

const (
	BlendModeSrcOver BlendMode = iota // src_over
	BlendModeSrcATop                  // src_atop
	BlendModePlus                     // plus
	BlendModeMultiply                 // multiply
	BlendModeScreen                   // screen
	BlendModeOverlay                  // overlay
	BlendModeDarken                   // darken
	BlendModeLighten                  // lighten
)

var _BlendMode_names = []string{
	"src_over",
	"src_atop",
	"plus",
	"multiply",
	"screen",
	"overlay",
	"darken",
	"lighten",
}

func (b BlendMode) String() string {
	if int(b) >= 0 && int(b) < len(_BlendMode_names) {
		return _BlendMode_names[b]
	}
	return fmt.Sprintf("BlendMode(%d)", int(b))
}

// ParseBlendMode resolves a blend mode name as used in style files.
func ParseBlendMode(name string) (BlendMode, error) {
	for i, n := range _BlendMode_names {
		if n == name {
			return BlendMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown blend mode %q", name)
}
