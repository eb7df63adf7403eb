package gfx

import "image/color"

// Color represents an RGBA color with 8-bit components, matching the
// channel layout vertices are authored in. The batcher normalizes
// components to [0, 1] floats when packing vertex data.
type Color struct {
	R, G, B, A uint8
}

// Predefined colors.
var (
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Red         = Color{255, 0, 0, 255}
	Green       = Color{0, 255, 0, 255}
	Blue        = Color{0, 0, 255, 255}
	Yellow      = Color{255, 255, 0, 255}
	Magenta     = Color{255, 0, 255, 255}
	Cyan        = Color{0, 255, 255, 255}
	Transparent = Color{0, 0, 0, 0}
)

// RGB creates an opaque color from RGB components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// Normalized returns the color components as floats in [0, 1],
// in r, g, b, a order.
func (c Color) Normalized() (r, g, b, a float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255
}

// Color converts to the standard color.Color interface.
func (c Color) Color() color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FromColor converts a standard color.Color to Color.
func FromColor(c color.Color) Color {
	nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: nrgba.R, G: nrgba.G, B: nrgba.B, A: nrgba.A}
}
