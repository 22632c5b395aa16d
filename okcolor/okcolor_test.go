package okcolor

import (
	"image/color"
	"math"
	"testing"
)

const eps = 1e-4

func TestLightness(t *testing.T) {
	tests := []struct {
		name string
		c    color.Color
		want float64
	}{
		{"black", color.Black, 0},
		{"white", color.White, 1},
		{"transparent", color.Transparent, 1},
		{"opaque white gray16", color.Gray16{Y: 0xffff}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lightness(tt.c); math.Abs(got-tt.want) > 1e-4 {
				t.Errorf("Lightness(%v) = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}

func TestLightnessOrdering(t *testing.T) {
	prev := -1.0
	for y := 0; y <= 255; y += 15 {
		l := Lightness(color.Gray{Y: uint8(y)})
		if l <= prev {
			t.Fatalf("Lightness(gray %d) = %v, not above %v", y, l, prev)
		}
		prev = l
	}

	// sRGB 50% gray is perceptually close to the middle.
	if l := Lightness(color.Gray{Y: 0x80}); l < 0.55 || l > 0.65 {
		t.Errorf("Lightness(gray 0x80) = %v, want about 0.6", l)
	}
}

func TestLightnessIgnoresPremultiply(t *testing.T) {
	opaque := Lightness(color.NRGBA{R: 200, G: 100, B: 50, A: 0xff})
	half := Lightness(color.NRGBA{R: 200, G: 100, B: 50, A: 0x80})
	if math.Abs(opaque-half) > 0.01 {
		t.Errorf("Lightness() = %v at half alpha, want %v", half, opaque)
	}
}

func TestLabRoundTrip(t *testing.T) {
	for _, c := range []color.RGBA64{
		{R: 0xffff, G: 0, B: 0, A: 0xffff},
		{R: 0x1234, G: 0x8000, B: 0xfedc, A: 0xffff},
		{R: 0, G: 0, B: 0, A: 0xffff},
	} {
		lab := LabModel.Convert(c).(Lab)
		lin := lab.LinearRGBA()
		want := sRGBToLinearRGB(c)
		if math.Abs(lin.R-want.R) > eps || math.Abs(lin.G-want.G) > eps || math.Abs(lin.B-want.B) > eps {
			t.Errorf("Lab(%v).LinearRGBA() = %+v, want %+v", c, lin, want)
		}
	}
}
