package gfx

import "github.com/chewxy/math32"

// Transform represents a 2D affine transformation as a 4x4 column-major
// matrix, the layout GPU mat4 uniforms expect. Only the 3x3 affine part
// carries information; the rest stays at identity values.
type Transform struct {
	m [16]float32
}

// IdentityTransform is the transform that leaves points unchanged.
var IdentityTransform = NewTransform(
	1, 0, 0,
	0, 1, 0,
	0, 0, 1)

// NewTransform creates a transform from the 9 components of a 3x3 matrix,
// given in row-major order:
//
//	| a00 a01 a02 |
//	| a10 a11 a12 |
//	| a20 a21 a22 |
func NewTransform(a00, a01, a02, a10, a11, a12, a20, a21, a22 float32) Transform {
	return Transform{m: [16]float32{
		a00, a10, 0, a20,
		a01, a11, 0, a21,
		0, 0, 1, 0,
		a02, a12, 0, a22,
	}}
}

// Matrix returns the transform as a 4x4 column-major float array,
// suitable for a mat4 shader uniform.
func (t Transform) Matrix() [16]float32 {
	return t.m
}

// TransformPoint applies the transform to a point.
func (t Transform) TransformPoint(p Vector2) Vector2 {
	return Vector2{
		X: t.m[0]*p.X + t.m[4]*p.Y + t.m[12],
		Y: t.m[1]*p.X + t.m[5]*p.Y + t.m[13],
	}
}

// Combine returns the combined transform t * other. Points transformed
// by the result are transformed by other first, then by t.
func (t Transform) Combine(other Transform) Transform {
	a, b := &t.m, &other.m
	return NewTransform(
		a[0]*b[0]+a[4]*b[1]+a[12]*b[3],
		a[0]*b[4]+a[4]*b[5]+a[12]*b[7],
		a[0]*b[12]+a[4]*b[13]+a[12]*b[15],
		a[1]*b[0]+a[5]*b[1]+a[13]*b[3],
		a[1]*b[4]+a[5]*b[5]+a[13]*b[7],
		a[1]*b[12]+a[5]*b[13]+a[13]*b[15],
		a[3]*b[0]+a[7]*b[1]+a[15]*b[3],
		a[3]*b[4]+a[7]*b[5]+a[15]*b[7],
		a[3]*b[12]+a[7]*b[13]+a[15]*b[15])
}

// Inverse returns the inverse transform, or the identity if the
// transform is not invertible.
func (t Transform) Inverse() Transform {
	m := &t.m

	// Determinant of the 3x3 affine part.
	det := m[0]*(m[15]*m[5]-m[7]*m[13]) -
		m[1]*(m[15]*m[4]-m[7]*m[12]) +
		m[3]*(m[13]*m[4]-m[5]*m[12])

	if det == 0 {
		return IdentityTransform
	}

	return NewTransform(
		(m[15]*m[5]-m[7]*m[13])/det,
		-(m[15]*m[4]-m[7]*m[12])/det,
		(m[13]*m[4]-m[5]*m[12])/det,
		-(m[15]*m[1]-m[3]*m[13])/det,
		(m[15]*m[0]-m[3]*m[12])/det,
		-(m[13]*m[0]-m[1]*m[12])/det,
		(m[7]*m[1]-m[3]*m[5])/det,
		-(m[7]*m[0]-m[3]*m[4])/det,
		(m[5]*m[0]-m[1]*m[4])/det)
}

// Translate returns the transform combined with a translation.
func (t Transform) Translate(offset Vector2) Transform {
	translation := NewTransform(
		1, 0, offset.X,
		0, 1, offset.Y,
		0, 0, 1)
	return t.Combine(translation)
}

// Rotate returns the transform combined with a rotation around the
// origin. The angle is in degrees.
func (t Transform) Rotate(angle float32) Transform {
	rad := angle * math32.Pi / 180
	cos := math32.Cos(rad)
	sin := math32.Sin(rad)

	rotation := NewTransform(
		cos, -sin, 0,
		sin, cos, 0,
		0, 0, 1)
	return t.Combine(rotation)
}

// RotateAround returns the transform combined with a rotation around the
// given center. The angle is in degrees.
func (t Transform) RotateAround(angle float32, center Vector2) Transform {
	rad := angle * math32.Pi / 180
	cos := math32.Cos(rad)
	sin := math32.Sin(rad)

	rotation := NewTransform(
		cos, -sin, center.X*(1-cos)+center.Y*sin,
		sin, cos, center.Y*(1-cos)-center.X*sin,
		0, 0, 1)
	return t.Combine(rotation)
}

// Scale returns the transform combined with a scaling.
func (t Transform) Scale(factors Vector2) Transform {
	scaling := NewTransform(
		factors.X, 0, 0,
		0, factors.Y, 0,
		0, 0, 1)
	return t.Combine(scaling)
}
