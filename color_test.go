package gfx

import (
	"image/color"
	"testing"

	"github.com/chewxy/math32"
)

func TestColorNormalized(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want [4]float32
	}{
		{"white", White, [4]float32{1, 1, 1, 1}},
		{"black", Black, [4]float32{0, 0, 0, 1}},
		{"transparent", Transparent, [4]float32{0, 0, 0, 0}},
		{"mid gray", Color{R: 128, G: 128, B: 128, A: 255}, [4]float32{128.0 / 255, 128.0 / 255, 128.0 / 255, 1}},
		{"half alpha red", Color{R: 255, A: 127}, [4]float32{1, 0, 0, 127.0 / 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := tt.c.Normalized()
			got := [4]float32{r, g, b, a}
			for i := range got {
				if math32.Abs(got[i]-tt.want[i]) > 1e-6 {
					t.Errorf("Normalized() = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestColorRoundTrip(t *testing.T) {
	orig := Color{R: 10, G: 20, B: 30, A: 200}
	if got := FromColor(orig.Color()); got != orig {
		t.Errorf("FromColor(Color()) = %+v, want %+v", got, orig)
	}
}

func TestFromColorOpaque(t *testing.T) {
	got := FromColor(color.RGBA{R: 255, G: 0, B: 0, A: 255})
	if got != Red {
		t.Errorf("FromColor(opaque red) = %+v, want %+v", got, Red)
	}
}

func TestRGB(t *testing.T) {
	if got := RGB(1, 2, 3); got != (Color{R: 1, G: 2, B: 3, A: 255}) {
		t.Errorf("RGB(1,2,3) = %+v", got)
	}
}
