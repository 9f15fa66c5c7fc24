package graphics

import "testing"

func TestRectFromLTWH(t *testing.T) {
	r := RectFromLTWH(10, 20, 30, 40)
	if r.Width() != 30 || r.Height() != 40 {
		t.Fatalf("got %vx%v, want 30x40", r.Width(), r.Height())
	}
	if r.Origin() != (Offset{X: 10, Y: 20}) {
		t.Fatalf("origin = %v, want (10,20)", r.Origin())
	}
}

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{
			name: "overlap",
			a:    RectFromLTWH(0, 0, 10, 10),
			b:    RectFromLTWH(5, 5, 10, 10),
			want: Rect{Left: 5, Top: 5, Right: 10, Bottom: 10},
		},
		{
			name: "disjoint",
			a:    RectFromLTWH(0, 0, 5, 5),
			b:    RectFromLTWH(10, 10, 5, 5),
			want: Rect{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersect(tt.b); got != tt.want {
				t.Fatalf("Intersect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectTranslate(t *testing.T) {
	r := RectFromLTWH(1, 2, 3, 4).Translate(10, 20)
	want := RectFromLTWH(11, 22, 3, 4)
	if r != want {
		t.Fatalf("Translate = %v, want %v", r, want)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{in: "#FF0000", want: RGB(255, 0, 0)},
		{in: "#80FFFFFF", want: RGBA8(255, 255, 255, 0x80)},
		{in: "  #000000  ", want: ColorBlack},
		{in: "abcdef", want: RGB(0xAB, 0xCD, 0xEF)},
		{in: "#FFF", wantErr: true},
		{in: "#GG0000", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseColor(%q): expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %#x, want %#x", tt.in, uint32(got), uint32(tt.want))
		}
	}
}

func TestParseBlendMode(t *testing.T) {
	m, err := ParseBlendMode("multiply")
	if err != nil || m != BlendModeMultiply {
		t.Fatalf("ParseBlendMode(multiply) = %v, %v", m, err)
	}
	if _, err := ParseBlendMode("nope"); err == nil {
		t.Fatal("expected error for unknown blend mode")
	}
	if got := BlendModeScreen.String(); got != "screen" {
		t.Fatalf("String() = %q, want screen", got)
	}
}

func TestColorComponents(t *testing.T) {
	c := RGBA8(1, 2, 3, 4)
	r, g, b, a := c.Components()
	if r != 1 || g != 2 || b != 3 || a != 4 {
		t.Fatalf("Components() = %d,%d,%d,%d", r, g, b, a)
	}
	if got := c.WithAlpha(1).Alpha(); got != 1 {
		t.Fatalf("WithAlpha(1).Alpha() = %v", got)
	}
}
