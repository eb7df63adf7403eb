package gfx

// FloatRect is an axis-aligned rectangle with float32 position and size.
type FloatRect struct {
	Left, Top, Width, Height float32
}

// Contains reports whether the point lies inside the rectangle.
// Points on the right or bottom edge are outside.
func (r FloatRect) Contains(p Vector2) bool {
	return p.X >= r.Left && p.X < r.Left+r.Width &&
		p.Y >= r.Top && p.Y < r.Top+r.Height
}

// IntRect is an axis-aligned rectangle with integer position and size,
// used for pixel viewports.
type IntRect struct {
	Left, Top, Width, Height int
}

// FloatRect converts the integer rectangle to a FloatRect.
func (r IntRect) FloatRect() FloatRect {
	return FloatRect{
		Left:   float32(r.Left),
		Top:    float32(r.Top),
		Width:  float32(r.Width),
		Height: float32(r.Height),
	}
}
