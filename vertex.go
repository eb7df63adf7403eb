package gfx

// Vertex is a single point of geometry: a position in world coordinates,
// a color modulating the fragment output, and a texture coordinate in
// texels. Vertices are immutable inputs to batching; the batcher
// transforms and packs them without mutating the caller's slice.
type Vertex struct {
	Position  Vector2
	Color     Color
	TexCoords Vector2
}
