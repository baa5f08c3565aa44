package vecraster

import (
	"math"
	"testing"
)

func TestHex(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want RGBA
	}{
		{"short rgb", "#f00", RGBA{1, 0, 0, 1}},
		{"short rgba", "#f008", RGBA{1, 0, 0, 136.0 / 255}},
		{"long rrggbb", "#3498db", RGBA{52.0 / 255, 152.0 / 255, 219.0 / 255, 1}},
		{"long rrggbbaa", "3498db80", RGBA{52.0 / 255, 152.0 / 255, 219.0 / 255, 128.0 / 255}},
		{"invalid length", "12345", RGBA{0, 0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hex(tt.hex)
			if absDiff(got.R, tt.want.R) > 1e-6 || absDiff(got.G, tt.want.G) > 1e-6 || absDiff(got.B, tt.want.B) > 1e-6 || absDiff(got.A, tt.want.A) > 1e-6 {
				t.Errorf("Hex(%q) = %v, want %v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestHexPalette(t *testing.T) {
	tests := []struct {
		name string
		rgb  uint32
		want RGBA
	}{
		{"black", 0x000000, RGBA{0, 0, 0, 1}},
		{"white", 0xFFFFFF, RGBA{1, 1, 1, 1}},
		{"red", 0xFF0000, RGBA{1, 0, 0, 1}},
		{"custom", 0x3498DB, RGBA{52.0 / 255, 152.0 / 255, 219.0 / 255, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HexPalette(tt.rgb)
			if absDiff(got.R, tt.want.R) > 1e-6 || absDiff(got.G, tt.want.G) > 1e-6 || absDiff(got.B, tt.want.B) > 1e-6 {
				t.Errorf("HexPalette(%#x) = %v, want %v", tt.rgb, got, tt.want)
			}
		})
	}
}

func TestHSVToRGBPrimaries(t *testing.T) {
	tests := []struct {
		name       string
		h, s, v    float64
		wantR, wantG, wantB float64
	}{
		{"red", 0, 1, 1, 1, 0, 0},
		{"green", 120, 1, 1, 0, 1, 0},
		{"blue", 240, 1, 1, 0, 0, 1},
		{"white", 0, 0, 1, 1, 1, 1},
		{"black", 0, 0, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HSVToRGB(tt.h, tt.s, tt.v)
			if absDiff(got.R, tt.wantR) > 1e-6 || absDiff(got.G, tt.wantG) > 1e-6 || absDiff(got.B, tt.wantB) > 1e-6 {
				t.Errorf("HSVToRGB(%v,%v,%v) = %v, want (%v,%v,%v)", tt.h, tt.s, tt.v, got, tt.wantR, tt.wantG, tt.wantB)
			}
		})
	}
}

func TestRGBToHSVGrayscaleSentinel(t *testing.T) {
	tests := []RGBA{
		RGB(0, 0, 0),
		RGB(0.5, 0.5, 0.5),
		RGB(1, 1, 1),
	}
	for _, c := range tests {
		h, s, _ := RGBToHSV(c)
		if h != -1 {
			t.Errorf("RGBToHSV(%v) hue = %v, want sentinel -1", c, h)
		}
		if s != 0 {
			t.Errorf("RGBToHSV(%v) saturation = %v, want 0", c, s)
		}
	}
}

func TestRGBToHSVRoundTrip(t *testing.T) {
	colors := []RGBA{Red, Green, Blue, Yellow, Cyan, Magenta, RGB(0.2, 0.6, 0.9)}
	for _, c := range colors {
		h, s, v := RGBToHSV(c)
		if h < 0 {
			t.Fatalf("unexpected grayscale sentinel for %v", c)
		}
		back := HSVToRGB(h, s, v)
		if absDiff(back.R, c.R) > 1e-6 || absDiff(back.G, c.G) > 1e-6 || absDiff(back.B, c.B) > 1e-6 {
			t.Errorf("round-trip %v -> hsv(%v,%v,%v) -> %v", c, h, s, v, back)
		}
	}
}

func TestRGBALerp(t *testing.T) {
	got := Black.Lerp(White, 0.5)
	want := RGBA{0.5, 0.5, 0.5, 1}
	if absDiff(got.R, want.R) > 1e-9 || absDiff(got.G, want.G) > 1e-9 || absDiff(got.B, want.B) > 1e-9 {
		t.Errorf("Lerp(Black, White, 0.5) = %v, want %v", got, want)
	}
}

func TestRGBAFromColorRoundtrip(t *testing.T) {
	original := RGB(0.8, 0.3, 0.5)
	roundtripped := FromColor(original.Color())
	const tolerance = 1.0 / 255
	if absDiff(original.R, roundtripped.R) > tolerance ||
		absDiff(original.G, roundtripped.G) > tolerance ||
		absDiff(original.B, roundtripped.B) > tolerance {
		t.Errorf("roundtrip: %v -> %v", original, roundtripped)
	}
}

func absDiff(a, b float64) float64 {
	return math.Abs(a - b)
}
