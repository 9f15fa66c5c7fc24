package backdrop

import (
	"testing"

	"github.com/go-drift/backdrop/pkg/compositor"
	"github.com/go-drift/backdrop/pkg/graphics"
)

func TestStyleApplyFullDocument(t *testing.T) {
	v := newTestView(nil)
	host := newTestHost()
	v.AttachTo(host)
	defer v.Detach()

	s, err := ParseStyle([]byte(`
radius: 16
iterations: 2
ratio: 0.5
tint: "#66FFFFFF"
blend_mode: plus
tracking: common
quality: low
async: true
deep: true
`))
	if err != nil {
		t.Fatalf("ParseStyle: %v", err)
	}
	if err := s.ApplyTo(v); err != nil {
		t.Fatalf("ApplyTo: %v", err)
	}

	if v.BlurRadius() != 16 {
		t.Errorf("radius = %v, want 16", v.BlurRadius())
	}
	if v.Iterations() != 2 {
		t.Errorf("iterations = %v, want 2", v.Iterations())
	}
	if v.BlurRatio() != 0.5 {
		t.Errorf("ratio = %v, want 0.5", v.BlurRatio())
	}
	if tint := v.BlendColor(); tint == nil || *tint != graphics.RGBA8(255, 255, 255, 0x66) {
		t.Errorf("tint = %v", tint)
	}
	if v.BlendMode() != graphics.BlendModePlus {
		t.Errorf("blend mode = %v, want plus", v.BlendMode())
	}
	if v.TrackingMode() != TrackingModeCommon {
		t.Errorf("tracking = %v, want common", v.TrackingMode())
	}
	if v.CaptureQuality() != compositor.QualityLow {
		t.Errorf("quality = %v, want low", v.CaptureQuality())
	}
	if !v.DrawsAsynchronously() {
		t.Error("async not applied")
	}
	if !v.DeepRendering() {
		t.Error("deep not applied")
	}
}

func TestStylePartialDocumentKeepsOtherFields(t *testing.T) {
	v := newTestView(nil)
	v.SetIterations(5)

	s, err := ParseStyle([]byte("radius: 24"))
	if err != nil {
		t.Fatalf("ParseStyle: %v", err)
	}
	if err := s.ApplyTo(v); err != nil {
		t.Fatalf("ApplyTo: %v", err)
	}
	if v.BlurRadius() != 24 {
		t.Fatalf("radius = %v, want 24", v.BlurRadius())
	}
	if v.Iterations() != 5 {
		t.Fatalf("iterations = %v, want untouched 5", v.Iterations())
	}
	if v.TrackingMode() != TrackingModeNone {
		t.Fatalf("tracking = %v, want untouched none", v.TrackingMode())
	}
}

func TestStyleInvalidFieldLeavesViewUntouched(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad tint", "radius: 16\ntint: \"not-a-color\""},
		{"bad blend mode", "radius: 16\nblend_mode: subtract"},
		{"bad tracking", "radius: 16\ntracking: sometimes"},
		{"bad quality", "radius: 16\nquality: ultra"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestView(nil)
			s, err := ParseStyle([]byte(tt.doc))
			if err != nil {
				t.Fatalf("ParseStyle: %v", err)
			}
			if err := s.ApplyTo(v); err == nil {
				t.Fatal("expected an error")
			}
			if v.BlurRadius() != 10 {
				t.Fatalf("failed apply mutated the view: radius = %v", v.BlurRadius())
			}
		})
	}
}

func TestParseStyleRejectsMalformedYAML(t *testing.T) {
	if _, err := ParseStyle([]byte("radius: [")); err == nil {
		t.Fatal("expected a parse error")
	}
}
