package gfx

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestPrimitiveTypeCanonical(t *testing.T) {
	tests := []struct {
		ptype PrimitiveType
		want  PrimitiveType
	}{
		{Points, Points},
		{Lines, Lines},
		{LineStrip, Lines},
		{Triangles, Triangles},
		{TriangleStrip, Triangles},
		{TriangleFan, Triangles},
	}
	for _, tt := range tests {
		t.Run(tt.ptype.String(), func(t *testing.T) {
			if got := tt.ptype.Canonical(); got != tt.want {
				t.Errorf("%v.Canonical() = %v, want %v", tt.ptype, got, tt.want)
			}
		})
	}
}

func TestPrimitiveTypeMinVertexCount(t *testing.T) {
	tests := []struct {
		ptype PrimitiveType
		want  int
	}{
		{Points, 1},
		{Lines, 2},
		{LineStrip, 2},
		{Triangles, 3},
		{TriangleStrip, 3},
		{TriangleFan, 3},
	}
	for _, tt := range tests {
		t.Run(tt.ptype.String(), func(t *testing.T) {
			if got := tt.ptype.MinVertexCount(); got != tt.want {
				t.Errorf("%v.MinVertexCount() = %d, want %d", tt.ptype, got, tt.want)
			}
		})
	}
}

func TestPrimitiveTypeTopology(t *testing.T) {
	tests := []struct {
		ptype PrimitiveType
		want  gputypes.PrimitiveTopology
	}{
		{Points, gputypes.PrimitiveTopologyPointList},
		{Lines, gputypes.PrimitiveTopologyLineList},
		{LineStrip, gputypes.PrimitiveTopologyLineList},
		{Triangles, gputypes.PrimitiveTopologyTriangleList},
		{TriangleStrip, gputypes.PrimitiveTopologyTriangleList},
		{TriangleFan, gputypes.PrimitiveTopologyTriangleList},
	}
	for _, tt := range tests {
		t.Run(tt.ptype.String(), func(t *testing.T) {
			if got := tt.ptype.Topology(); got != tt.want {
				t.Errorf("%v.Topology() = %v, want %v", tt.ptype, got, tt.want)
			}
		})
	}
}
