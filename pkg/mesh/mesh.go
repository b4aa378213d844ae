// Package mesh decodes STL (ASCII and binary) and OBJ files into an indexed
// triangle mesh and computes the volume it encloses.
package mesh

import (
	"github.com/philipparndt/gomesh/pkg/geometry"
)

// Triangle holds three 0-based indices into Mesh.Vertices
type Triangle [3]int

// Mesh is an indexed triangle surface. Vertices keep file order so that
// triangle indices stay valid.
type Mesh struct {
	Vertices  []geometry.Vector3
	Triangles []Triangle
}

// NewMesh creates an empty mesh
func NewMesh() *Mesh {
	return &Mesh{
		Vertices:  make([]geometry.Vector3, 0),
		Triangles: make([]Triangle, 0),
	}
}

// AddVertex appends a vertex and returns its index
func (m *Mesh) AddVertex(v geometry.Vector3) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddTriangle appends a triangle
func (m *Mesh) AddTriangle(t Triangle) {
	m.Triangles = append(m.Triangles, t)
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// VertexCount returns the number of vertices in the mesh
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Facet resolves the i-th triangle to its corner positions. It reports
// false when any index falls outside the vertex slice.
func (m *Mesh) Facet(i int) (geometry.Triangle, bool) {
	t := m.Triangles[i]
	for _, idx := range t {
		if idx < 0 || idx >= len(m.Vertices) {
			return geometry.Triangle{}, false
		}
	}
	return geometry.NewTriangle(m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]), true
}

// SignedVolume sums the signed tetrahedron volumes of all triangles
// against the origin. For a closed, consistently wound surface this is the
// enclosed volume (negative if wound inward). Open surfaces give a value
// that depends on where the origin lies.
//
// Triangles with unresolvable indices are skipped.
func (m *Mesh) SignedVolume() float64 {
	total := 0.0
	for i := range m.Triangles {
		facet, ok := m.Facet(i)
		if !ok {
			continue
		}
		total += facet.SignedVolume()
	}
	return total
}

// SurfaceArea calculates the total surface area of the mesh
func (m *Mesh) SurfaceArea() float64 {
	total := 0.0
	for i := range m.Triangles {
		if facet, ok := m.Facet(i); ok {
			total += facet.Area()
		}
	}
	return total
}

// BoundingBox calculates the bounding box of all vertices
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, v := range m.Vertices {
		bbox.Extend(v)
	}
	return bbox
}
