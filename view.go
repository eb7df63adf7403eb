package gfx

import "github.com/chewxy/math32"

// View defines the camera of a render target: a center, a size, and a
// rotation in world coordinates, plus the normalized viewport rectangle
// the view maps onto. The forward transform projects world coordinates
// into normalized device coordinates; both it and its inverse are
// computed lazily and cached until a setter invalidates them.
type View struct {
	center   Vector2
	size     Vector2
	rotation float32
	viewport FloatRect

	transform        Transform
	inverseTransform Transform
	transformValid   bool
	inverseValid     bool
}

// NewView creates a view with the given center and size, no rotation,
// and a viewport covering the whole target.
func NewView(center, size Vector2) View {
	return View{
		center:   center,
		size:     size,
		viewport: FloatRect{0, 0, 1, 1},
	}
}

// NewViewFromRect creates a view showing the given world rectangle.
func NewViewFromRect(rect FloatRect) View {
	v := View{viewport: FloatRect{0, 0, 1, 1}}
	v.Reset(rect)
	return v
}

// Reset repositions the view to show the given world rectangle, clearing
// any rotation. The viewport is unchanged.
func (v *View) Reset(rect FloatRect) {
	v.center = Vector2{X: rect.Left + rect.Width/2, Y: rect.Top + rect.Height/2}
	v.size = Vector2{X: rect.Width, Y: rect.Height}
	v.rotation = 0
	v.invalidate()
}

// SetCenter moves the center of the view.
func (v *View) SetCenter(center Vector2) {
	v.center = center
	v.invalidate()
}

// Center returns the center of the view.
func (v *View) Center() Vector2 { return v.center }

// SetSize resizes the view.
func (v *View) SetSize(size Vector2) {
	v.size = size
	v.invalidate()
}

// Size returns the size of the view.
func (v *View) Size() Vector2 { return v.size }

// SetRotation sets the orientation of the view in degrees.
func (v *View) SetRotation(angle float32) {
	v.rotation = math32.Mod(angle, 360)
	if v.rotation < 0 {
		v.rotation += 360
	}
	v.invalidate()
}

// Rotation returns the orientation of the view in degrees.
func (v *View) Rotation() float32 { return v.rotation }

// SetViewport sets the normalized target rectangle the view maps onto.
// Coordinates are fractions of the target size in [0, 1].
func (v *View) SetViewport(viewport FloatRect) {
	v.viewport = viewport
}

// Viewport returns the normalized viewport rectangle.
func (v *View) Viewport() FloatRect { return v.viewport }

// Move offsets the center of the view.
func (v *View) Move(offset Vector2) {
	v.SetCenter(v.center.Add(offset))
}

// Rotate adds to the orientation of the view, in degrees.
func (v *View) Rotate(angle float32) {
	v.SetRotation(v.rotation + angle)
}

// Zoom resizes the view relative to its current size. A factor below 1
// zooms in, a factor above 1 zooms out.
func (v *View) Zoom(factor float32) {
	v.SetSize(v.size.Mul(factor))
}

// Transform returns the projection from world coordinates into
// normalized device coordinates.
func (v *View) Transform() Transform {
	if !v.transformValid {
		rad := v.rotation * math32.Pi / 180
		cos := math32.Cos(rad)
		sin := math32.Sin(rad)
		tx := -v.center.X*cos - v.center.Y*sin + v.center.X
		ty := v.center.X*sin - v.center.Y*cos + v.center.Y

		// Projection: x right, y up, centered on the view.
		a := 2 / v.size.X
		b := -2 / v.size.Y
		c := -a * v.center.X
		d := -b * v.center.Y

		v.transform = NewTransform(
			a*cos, a*sin, a*tx+c,
			-b*sin, b*cos, b*ty+d,
			0, 0, 1)
		v.transformValid = true
	}
	return v.transform
}

// InverseTransform returns the projection from normalized device
// coordinates back into world coordinates.
func (v *View) InverseTransform() Transform {
	if !v.inverseValid {
		v.inverseTransform = v.Transform().Inverse()
		v.inverseValid = true
	}
	return v.inverseTransform
}

func (v *View) invalidate() {
	v.transformValid = false
	v.inverseValid = false
}
