package mesh

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/gomesh/pkg/geometry"
)

// unitCube is centered on the origin with edge length 1, wound outward
func unitCube() *Mesh {
	h := 0.5
	return &Mesh{
		Vertices: []geometry.Vector3{
			{X: -h, Y: -h, Z: -h}, {X: h, Y: -h, Z: -h}, {X: h, Y: h, Z: -h}, {X: -h, Y: h, Z: -h},
			{X: -h, Y: -h, Z: h}, {X: h, Y: -h, Z: h}, {X: h, Y: h, Z: h}, {X: -h, Y: h, Z: h},
		},
		Triangles: []Triangle{
			{0, 2, 1}, {0, 3, 2}, // bottom
			{4, 5, 6}, {4, 6, 7}, // top
			{0, 1, 5}, {0, 5, 4}, // front
			{3, 7, 6}, {3, 6, 2}, // back
			{0, 4, 7}, {0, 7, 3}, // left
			{1, 2, 6}, {1, 6, 5}, // right
		},
	}
}

// facets expands a mesh into positional triangles
func facets(t *testing.T, m *Mesh) []geometry.Triangle {
	t.Helper()
	out := make([]geometry.Triangle, 0, len(m.Triangles))
	for i := range m.Triangles {
		f, ok := m.Facet(i)
		if !ok {
			t.Fatalf("fixture triangle %d has an invalid index", i)
		}
		out = append(out, f)
	}
	return out
}

func asciiSTL(name string, tris []geometry.Triangle) string {
	var b strings.Builder
	fmt.Fprintf(&b, "solid %s\n", name)
	for _, tri := range tris {
		n := tri.V2.Sub(tri.V1).Cross(tri.V3.Sub(tri.V1))
		fmt.Fprintf(&b, "  facet normal %e %e %e\n", n.X, n.Y, n.Z)
		b.WriteString("    outer loop\n")
		for _, v := range []geometry.Vector3{tri.V1, tri.V2, tri.V3} {
			fmt.Fprintf(&b, "      vertex %e %e %e\n", v.X, v.Y, v.Z)
		}
		b.WriteString("    endloop\n")
		b.WriteString("  endfacet\n")
	}
	fmt.Fprintf(&b, "endsolid %s\n", name)
	return b.String()
}

// binarySTL encodes tris with the given header text and declared count
func binarySTL(header string, declared uint32, tris []geometry.Triangle) []byte {
	var buf bytes.Buffer
	var h [80]byte
	copy(h[:], header)
	buf.Write(h[:])
	binary.Write(&buf, binary.LittleEndian, declared)

	for _, tri := range tris {
		var record [50]byte
		put := func(off int, v geometry.Vector3) {
			binary.LittleEndian.PutUint32(record[off:], math.Float32bits(float32(v.X)))
			binary.LittleEndian.PutUint32(record[off+4:], math.Float32bits(float32(v.Y)))
			binary.LittleEndian.PutUint32(record[off+8:], math.Float32bits(float32(v.Z)))
		}
		put(12, tri.V1)
		put(24, tri.V2)
		put(36, tri.V3)
		buf.Write(record[:])
	}
	return buf.Bytes()
}

func objText(m *Mesh) string {
	var b strings.Builder
	b.WriteString("# cube\no cube\n")
	for _, v := range m.Vertices {
		fmt.Fprintf(&b, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	b.WriteString("usemtl default\ns off\n")
	for _, t := range m.Triangles {
		fmt.Fprintf(&b, "f %d %d %d\n", t[0]+1, t[1]+1, t[2]+1)
	}
	return b.String()
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func translate(m *Mesh, offset geometry.Vector3) *Mesh {
	moved := &Mesh{
		Vertices:  make([]geometry.Vector3, len(m.Vertices)),
		Triangles: append([]Triangle(nil), m.Triangles...),
	}
	for i, v := range m.Vertices {
		moved.Vertices[i] = v.Add(offset)
	}
	return moved
}
