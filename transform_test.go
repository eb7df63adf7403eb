package gfx

import (
	"testing"

	"github.com/chewxy/math32"
)

const epsilon = 1e-4

func vecNear(a, b Vector2) bool {
	return math32.Abs(a.X-b.X) < epsilon && math32.Abs(a.Y-b.Y) < epsilon
}

func TestTransformPoint(t *testing.T) {
	tests := []struct {
		name  string
		tr    Transform
		point Vector2
		want  Vector2
	}{
		{"identity", IdentityTransform, V2(3, 4), V2(3, 4)},
		{"translate", IdentityTransform.Translate(V2(10, 20)), V2(1, 2), V2(11, 22)},
		{"scale", IdentityTransform.Scale(V2(2, 3)), V2(4, 5), V2(8, 15)},
		{"rotate 90", IdentityTransform.Rotate(90), V2(1, 0), V2(0, 1)},
		{"rotate 180", IdentityTransform.Rotate(180), V2(1, 2), V2(-1, -2)},
		{"rotate around center", IdentityTransform.RotateAround(90, V2(1, 1)), V2(2, 1), V2(1, 2)},
		{"translate then scale", IdentityTransform.Translate(V2(1, 0)).Scale(V2(2, 2)), V2(3, 3), V2(7, 6)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tr.TransformPoint(tt.point)
			if !vecNear(got, tt.want) {
				t.Errorf("TransformPoint(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestTransformCombineOrder(t *testing.T) {
	// Combine applies the right-hand transform first.
	translate := IdentityTransform.Translate(V2(10, 0))
	scale := IdentityTransform.Scale(V2(2, 2))

	got := translate.Combine(scale).TransformPoint(V2(1, 1))
	want := V2(12, 2) // scaled to (2,2), then translated
	if !vecNear(got, want) {
		t.Errorf("translate*scale: got %v, want %v", got, want)
	}

	got = scale.Combine(translate).TransformPoint(V2(1, 1))
	want = V2(22, 2) // translated to (11,1), then scaled
	if !vecNear(got, want) {
		t.Errorf("scale*translate: got %v, want %v", got, want)
	}
}

func TestTransformInverse(t *testing.T) {
	tests := []struct {
		name string
		tr   Transform
	}{
		{"identity", IdentityTransform},
		{"translate", IdentityTransform.Translate(V2(5, -3))},
		{"scale", IdentityTransform.Scale(V2(2, 0.5))},
		{"rotate", IdentityTransform.Rotate(33)},
		{"composite", IdentityTransform.Translate(V2(1, 2)).Rotate(45).Scale(V2(3, 3))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := V2(7, -2)
			back := tt.tr.Inverse().TransformPoint(tt.tr.TransformPoint(p))
			if !vecNear(back, p) {
				t.Errorf("inverse round trip = %v, want %v", back, p)
			}
		})
	}
}

func TestTransformInverseSingular(t *testing.T) {
	singular := IdentityTransform.Scale(V2(0, 0))
	if got := singular.Inverse(); got != IdentityTransform {
		t.Errorf("Inverse() of singular transform = %v, want identity", got)
	}
}

func TestTransformMatrixLayout(t *testing.T) {
	// Column-major: the translation lands in elements 12 and 13.
	m := IdentityTransform.Translate(V2(10, 20)).Matrix()
	if m[12] != 10 || m[13] != 20 {
		t.Errorf("translation at m[12],m[13] = %v,%v, want 10,20", m[12], m[13])
	}
	if m[10] != 1 || m[15] != 1 {
		t.Errorf("identity diagonal disturbed: m[10]=%v m[15]=%v", m[10], m[15])
	}
}
