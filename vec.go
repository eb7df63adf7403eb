package gfx

import "github.com/chewxy/math32"

// Vector2 represents a 2D position or displacement with float32
// components, the precision vertex data is uploaded in.
type Vector2 struct {
	X, Y float32
}

// V2 is a convenience function to create a Vector2.
func V2(x, y float32) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vector2) Add(w Vector2) Vector2 {
	return Vector2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vector2) Sub(w Vector2) Vector2 {
	return Vector2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vector2) Mul(s float32) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

// Div returns the vector divided by a scalar.
func (v Vector2) Div(s float32) Vector2 {
	return Vector2{X: v.X / s, Y: v.Y / s}
}

// Neg returns the negation of the vector.
func (v Vector2) Neg() Vector2 {
	return Vector2{X: -v.X, Y: -v.Y}
}

// Dot returns the dot product of two vectors.
func (v Vector2) Dot(w Vector2) float32 {
	return v.X*w.X + v.Y*w.Y
}

// Length returns the length (magnitude) of the vector.
func (v Vector2) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Vector2i represents a 2D position with integer components, used for
// pixel coordinates.
type Vector2i struct {
	X, Y int
}

// Vector2f converts the integer vector to a Vector2.
func (v Vector2i) Vector2f() Vector2 {
	return Vector2{X: float32(v.X), Y: float32(v.Y)}
}
