package gfx

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// PrimitiveType describes how a sequence of vertices is interpreted as
// geometry. Strip and fan types are conveniences: before batching they
// canonicalize to one of Points, Lines, or Triangles, with connectivity
// expressed through synthesized indices instead.
type PrimitiveType int

const (
	// Points renders each vertex as a single point.
	Points PrimitiveType = iota

	// Lines renders each pair of vertices as a segment.
	Lines

	// LineStrip renders consecutive vertices as connected segments.
	LineStrip

	// Triangles renders each triple of vertices as a triangle.
	Triangles

	// TriangleStrip renders each vertex after the second as a triangle
	// sharing an edge with the previous one.
	TriangleStrip

	// TriangleFan renders each vertex after the second as a triangle
	// sharing the first vertex.
	TriangleFan
)

// String returns the string representation of the primitive type.
func (p PrimitiveType) String() string {
	switch p {
	case Points:
		return "Points"
	case Lines:
		return "Lines"
	case LineStrip:
		return "LineStrip"
	case Triangles:
		return "Triangles"
	case TriangleStrip:
		return "TriangleStrip"
	case TriangleFan:
		return "TriangleFan"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// Canonical maps the primitive type to one of the three kinds the GPU
// draws natively: strips and fans become indexed Lines or Triangles.
func (p PrimitiveType) Canonical() PrimitiveType {
	switch p {
	case LineStrip:
		return Lines
	case TriangleStrip, TriangleFan:
		return Triangles
	default:
		return p
	}
}

// MinVertexCount returns the smallest vertex count that produces any
// geometry for the requested (pre-canonicalization) primitive type.
// Draw calls below this count are silently ignored.
func (p PrimitiveType) MinVertexCount() int {
	switch p {
	case Points:
		return 1
	case Lines, LineStrip:
		return 2
	default:
		return 3
	}
}

// Topology returns the GPU topology for the canonical primitive kind.
func (p PrimitiveType) Topology() gputypes.PrimitiveTopology {
	switch p.Canonical() {
	case Points:
		return gputypes.PrimitiveTopologyPointList
	case Lines:
		return gputypes.PrimitiveTopologyLineList
	default:
		return gputypes.PrimitiveTopologyTriangleList
	}
}
