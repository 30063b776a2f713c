// Package obj writes and reads Wavefront OBJ geometry.
//
// The writer serializes indexed triangle models with paired vertex and
// normal references (`f v//n ...`). The reader is tolerant of externally
// authored files: comments, blank lines, unknown record types, missing
// optional indices, and named decoration sub-objects.
package obj

import "github.com/Faultbox/citymesh/pkg/math"

// Face is a triangle referencing three vertex indices and three parallel
// normal indices. Indices are zero-based in memory; the wire format is
// 1-based.
type Face struct {
	Vertex [3]int
	Normal [3]int
}

// Model is an indexed triangle mesh, the writer's input. Vertex and
// normal streams are independently ordered and independently indexed.
type Model struct {
	Vertices []math.Vec3
	Normals  []math.Vec3
	Faces    []Face
}

// Mesh is the reader's product: flat, non-indexed triangle data with one
// entry per triangle-vertex occurrence. The four arrays are parallel and
// ready for direct buffer upload by a renderer.
type Mesh struct {
	Positions []float32 // 3 components per vertex
	Colors    []float32 // 4 components per vertex
	Normals   []float32 // 3 components per vertex
	TexCoords []float32 // 2 components per vertex
}

// VertexCount returns the number of emitted triangle-vertex records.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return m.VertexCount() / 3
}
