package gpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gfx"
)

func f32At(buf []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
}

func TestPackFloats(t *testing.T) {
	buf := packFloats([]float32{1.5, -2.25, 0})
	if len(buf) != 12 {
		t.Fatalf("len = %d, want 12", len(buf))
	}
	for i, want := range []float32{1.5, -2.25, 0} {
		if got := f32At(buf, i*4); got != want {
			t.Errorf("buf[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestPackIndices(t *testing.T) {
	buf := packIndices([]uint32{0, 1, 0xFFFFFFFF})
	if len(buf) != 12 {
		t.Fatalf("len = %d, want 12", len(buf))
	}
	if got := binary.LittleEndian.Uint32(buf[8:]); got != 0xFFFFFFFF {
		t.Errorf("buf[2] = %d, want max uint32", got)
	}
}

func TestPackVerticesLayout(t *testing.T) {
	vertices := []gfx.Vertex{
		{
			Position:  gfx.V2(1, 2),
			Color:     gfx.Color{R: 255, G: 0, B: 0, A: 255},
			TexCoords: gfx.V2(3, 4),
		},
		{
			Position:  gfx.V2(5, 6),
			Color:     gfx.Color{R: 0, G: 0, B: 0, A: 0},
			TexCoords: gfx.V2(7, 8),
		},
	}

	buf := packVertices(vertices)
	if len(buf) != 2*vertexStride {
		t.Fatalf("len = %d, want %d", len(buf), 2*vertexStride)
	}

	tests := []struct {
		name   string
		offset int
		want   float32
	}{
		{"v0 pos x", 0, 1},
		{"v0 pos y", 4, 2},
		{"v0 red", 8, 1},
		{"v0 green", 12, 0},
		{"v0 alpha", 20, 1},
		{"v0 tex s", 24, 3},
		{"v0 tex t", 28, 4},
		{"v1 pos x", vertexStride, 5},
		{"v1 alpha", vertexStride + 20, 0},
		{"v1 tex t", vertexStride + 28, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f32At(buf, tt.offset); got != tt.want {
				t.Errorf("offset %d = %v, want %v", tt.offset, got, tt.want)
			}
		})
	}
}

func TestPackMat4(t *testing.T) {
	m := gfx.IdentityTransform.Translate(gfx.V2(10, 20)).Matrix()
	buf := packMat4(m)
	if len(buf) != uniformSize {
		t.Fatalf("len = %d, want %d", len(buf), uniformSize)
	}
	if got := f32At(buf, 12*4); got != 10 {
		t.Errorf("translation x = %v, want 10", got)
	}
	if got := f32At(buf, 13*4); got != 20 {
		t.Errorf("translation y = %v, want 20", got)
	}
}

func TestVertexLayoutMatchesStride(t *testing.T) {
	layouts := vertexLayout()
	if len(layouts) != 1 {
		t.Fatalf("buffer layouts = %d, want 1", len(layouts))
	}
	layout := layouts[0]
	if layout.ArrayStride != vertexStride {
		t.Errorf("stride = %d, want %d", layout.ArrayStride, vertexStride)
	}

	want := []gputypes.VertexAttribute{
		{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
		{Format: gputypes.VertexFormatFloat32x4, Offset: 8, ShaderLocation: 1},
		{Format: gputypes.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
	}
	if len(layout.Attributes) != len(want) {
		t.Fatalf("attributes = %d, want %d", len(layout.Attributes), len(want))
	}
	for i, attr := range layout.Attributes {
		if attr != want[i] {
			t.Errorf("attribute %d = %+v, want %+v", i, attr, want[i])
		}
	}
}

func TestPipelineKeyIdentity(t *testing.T) {
	alpha, err := gfx.BlendAlpha.GPUState()
	if err != nil {
		t.Fatal(err)
	}
	add, err := gfx.BlendAdd.GPUState()
	if err != nil {
		t.Fatal(err)
	}

	a := pipelineKey{topology: gputypes.PrimitiveTopologyTriangleList, blend: alpha}
	b := pipelineKey{topology: gputypes.PrimitiveTopologyTriangleList, blend: alpha}
	c := pipelineKey{topology: gputypes.PrimitiveTopologyLineList, blend: alpha}
	d := pipelineKey{topology: gputypes.PrimitiveTopologyTriangleList, blend: add}

	if a != b {
		t.Error("identical keys compare unequal")
	}
	if a == c {
		t.Error("keys with different topologies compare equal")
	}
	if a == d {
		t.Error("keys with different blend states compare equal")
	}
}
