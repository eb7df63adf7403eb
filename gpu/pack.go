package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gfx"
)

// packFloats encodes float32 scalars as little-endian bytes for upload.
func packFloats(data []float32) []byte {
	buf := make([]byte, len(data)*4)
	for i, f := range data {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// packIndices encodes uint32 indices as little-endian bytes for upload.
func packIndices(data []uint32) []byte {
	buf := make([]byte, len(data)*4)
	for i, v := range data {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	return buf
}

// packMat4 encodes a column-major 4x4 matrix for the uniform block.
func packMat4(m [16]float32) []byte {
	return packFloats(m[:])
}

// packVertices interleaves vertices into the default pipeline layout:
// position, normalized color, texture coordinates, 32 bytes per vertex.
func packVertices(vertices []gfx.Vertex) []byte {
	buf := make([]byte, len(vertices)*vertexStride)
	offset := 0
	for i := range vertices {
		v := &vertices[i]
		r, g, b, a := v.Color.Normalized()
		binary.LittleEndian.PutUint32(buf[offset:], math.Float32bits(v.Position.X))
		binary.LittleEndian.PutUint32(buf[offset+4:], math.Float32bits(v.Position.Y))
		binary.LittleEndian.PutUint32(buf[offset+8:], math.Float32bits(r))
		binary.LittleEndian.PutUint32(buf[offset+12:], math.Float32bits(g))
		binary.LittleEndian.PutUint32(buf[offset+16:], math.Float32bits(b))
		binary.LittleEndian.PutUint32(buf[offset+20:], math.Float32bits(a))
		binary.LittleEndian.PutUint32(buf[offset+24:], math.Float32bits(v.TexCoords.X))
		binary.LittleEndian.PutUint32(buf[offset+28:], math.Float32bits(v.TexCoords.Y))
		offset += vertexStride
	}
	return buf
}
