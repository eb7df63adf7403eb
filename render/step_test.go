// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"slices"
	"testing"

	"github.com/gogpu/gfx"
)

func verticesAt(positions ...gfx.Vector2) []gfx.Vertex {
	vs := make([]gfx.Vertex, len(positions))
	for i, p := range positions {
		vs[i] = gfx.Vertex{Position: p, Color: gfx.White}
	}
	return vs
}

func TestPendingStepIndexSynthesis(t *testing.T) {
	tests := []struct {
		name  string
		ptype gfx.PrimitiveType
		count int
		want  []uint32
	}{
		{"points direct", gfx.Points, 3, []uint32{0, 1, 2}},
		{"lines direct", gfx.Lines, 4, []uint32{0, 1, 2, 3}},
		{"triangles direct", gfx.Triangles, 6, []uint32{0, 1, 2, 3, 4, 5}},
		{"line strip", gfx.LineStrip, 4, []uint32{0, 1, 1, 2, 2, 3}},
		{"triangle fan", gfx.TriangleFan, 5, []uint32{0, 1, 2, 0, 2, 3, 0, 3, 4}},
		{"triangle strip", gfx.TriangleStrip, 4, []uint32{0, 1, 2, 2, 1, 3}},
		{"triangle strip odd", gfx.TriangleStrip, 5, []uint32{0, 1, 2, 2, 1, 3, 2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			positions := make([]gfx.Vector2, tt.count)
			for i := range positions {
				positions[i] = gfx.V2(float32(i), 0)
			}

			var p pendingStep
			p.append(verticesAt(positions...), tt.ptype, gfx.IdentityTransform)

			if !slices.Equal(p.elems, tt.want) {
				t.Errorf("indices = %v, want %v", p.elems, tt.want)
			}
			if got := p.vertexCount(); got != uint32(tt.count) {
				t.Errorf("vertexCount() = %d, want %d", got, tt.count)
			}
		})
	}
}

func TestPendingStepLineStripCallsStayDisconnected(t *testing.T) {
	var p pendingStep
	p.append(verticesAt(gfx.V2(0, 0), gfx.V2(1, 0)), gfx.LineStrip, gfx.IdentityTransform)
	p.append(verticesAt(gfx.V2(5, 5), gfx.V2(6, 5)), gfx.LineStrip, gfx.IdentityTransform)

	// No segment bridges the last vertex of the first call and the
	// first vertex of the second.
	want := []uint32{0, 1, 2, 3}
	if !slices.Equal(p.elems, want) {
		t.Errorf("indices = %v, want %v", p.elems, want)
	}
}

func TestPendingStepFanSharesBatchRoot(t *testing.T) {
	var p pendingStep
	p.append(verticesAt(gfx.V2(0, 0), gfx.V2(1, 0), gfx.V2(1, 1)), gfx.TriangleFan, gfx.IdentityTransform)
	p.append(verticesAt(gfx.V2(0, 1)), gfx.TriangleFan, gfx.IdentityTransform)

	// The appended vertex fans around vertex 0 of the whole batch.
	want := []uint32{0, 1, 2, 0, 2, 3}
	if !slices.Equal(p.elems, want) {
		t.Errorf("indices = %v, want %v", p.elems, want)
	}
}

func TestPendingStepPacking(t *testing.T) {
	var p pendingStep
	transform := gfx.IdentityTransform.Translate(gfx.V2(10, 20))
	p.append([]gfx.Vertex{{
		Position:  gfx.V2(1, 2),
		Color:     gfx.Color{R: 255, G: 0, B: 0, A: 255},
		TexCoords: gfx.V2(3, 4),
	}}, gfx.Points, transform)

	want := []float32{11, 22, 1, 0, 0, 1, 3, 4}
	if !slices.Equal(p.verts, want) {
		t.Errorf("packed vertex = %v, want %v", p.verts, want)
	}
}

func TestPendingStepReset(t *testing.T) {
	var p pendingStep
	p.state = stepState{kind: gfx.Triangles}
	p.append(verticesAt(gfx.V2(0, 0)), gfx.Points, gfx.IdentityTransform)

	if p.empty() {
		t.Fatal("step unexpectedly empty after append")
	}
	p.reset()
	if !p.empty() {
		t.Error("step not empty after reset")
	}
	if p.state != (stepState{}) {
		t.Errorf("state = %+v, want zero", p.state)
	}
}

func TestResidentStepMatches(t *testing.T) {
	state := stepState{kind: gfx.Triangles, blend: gfx.BlendAlpha}
	resident := &residentStep{
		state: state,
		verts: []float32{0, 0, 1, 1, 1, 1, 0, 0},
		elems: []uint32{0},
		batch: 1,
	}

	tests := []struct {
		name string
		p    pendingStep
		want bool
	}{
		{
			"identical",
			pendingStep{state: state, verts: []float32{0, 0, 1, 1, 1, 1, 0, 0}, elems: []uint32{0}},
			true,
		},
		{
			"different state",
			pendingStep{state: stepState{kind: gfx.Lines, blend: gfx.BlendAlpha}, verts: []float32{0, 0, 1, 1, 1, 1, 0, 0}, elems: []uint32{0}},
			false,
		},
		{
			"different geometry",
			pendingStep{state: state, verts: []float32{5, 5, 1, 1, 1, 1, 0, 0}, elems: []uint32{0}},
			false,
		},
		{
			"different indices",
			pendingStep{state: state, verts: []float32{0, 0, 1, 1, 1, 1, 0, 0}, elems: []uint32{0, 0}},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resident.matches(&tt.p); got != tt.want {
				t.Errorf("matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResidentStepReleaseOnce(t *testing.T) {
	dev := newFakeDevice()
	id, err := dev.CreateBatch([]float32{0, 0, 1, 1, 1, 1, 0, 0}, []uint32{0})
	if err != nil {
		t.Fatal(err)
	}

	s := &residentStep{batch: id}
	s.release(dev)
	s.release(dev)

	if len(dev.destroys) != 1 {
		t.Errorf("DestroyBatch called %d times, want 1", len(dev.destroys))
	}
}
