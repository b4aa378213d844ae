package mesh

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/philipparndt/gomesh/pkg/geometry"
)

func TestDecodeSTLBinaryCube(t *testing.T) {
	cube := facets(t, unitCube())

	m, err := DecodeSTLBinary(bytes.NewReader(binarySTL("solid test object", uint32(len(cube)), cube)))
	if err != nil {
		t.Fatalf("DecodeSTLBinary failed: %v", err)
	}

	if m.TriangleCount() != 12 {
		t.Errorf("TriangleCount failed: expected 12, got %d", m.TriangleCount())
	}
	if m.VertexCount() != 36 {
		t.Errorf("VertexCount failed: expected 36, got %d", m.VertexCount())
	}
	if m.Triangles[11] != (Triangle{33, 34, 35}) {
		t.Errorf("Triangle failed: expected [33 34 35], got %v", m.Triangles[11])
	}
	if math.Abs(m.SignedVolume()-1.0) > 1e-6 {
		t.Errorf("SignedVolume failed: expected 1, got %v", m.SignedVolume())
	}
}

func TestDecodeSTLBinaryTruncated(t *testing.T) {
	tris := make([]geometry.Triangle, 50)
	for i := range tris {
		z := float64(i)
		tris[i] = geometry.NewTriangle(
			geometry.NewVector3(0, 0, z),
			geometry.NewVector3(1, 0, z),
			geometry.NewVector3(0, 1, z),
		)
	}

	m, err := DecodeSTLBinary(bytes.NewReader(binarySTL("short", 100, tris)))
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("DecodeSTLBinary failed: expected ErrTruncated, got %v", err)
	}
	if m == nil {
		t.Fatal("DecodeSTLBinary failed: expected a partial mesh")
	}
	if m.TriangleCount() != 50 {
		t.Errorf("TriangleCount failed: expected 50, got %d", m.TriangleCount())
	}
	if got := m.Vertices[len(m.Vertices)-1]; got != geometry.NewVector3(0, 1, 49) {
		t.Errorf("last vertex failed: expected (0, 1, 49), got %v", got)
	}
}

func TestDecodeSTLBinaryPartialRecord(t *testing.T) {
	cube := facets(t, unitCube())
	data := binarySTL("partial", 12, cube)
	// Cut the last record in the middle of its third vertex
	data = data[:len(data)-10]

	m, err := DecodeSTLBinary(bytes.NewReader(data))
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("DecodeSTLBinary failed: expected ErrTruncated, got %v", err)
	}
	if m.TriangleCount() != 11 {
		t.Errorf("TriangleCount failed: expected 11, got %d", m.TriangleCount())
	}
	if m.VertexCount() != 33 {
		t.Errorf("VertexCount failed: expected 33, got %d", m.VertexCount())
	}
}

func TestDecodeSTLBinaryShortHeader(t *testing.T) {
	for _, size := range []int{0, 40, 83} {
		m, err := DecodeSTLBinary(bytes.NewReader(make([]byte, size)))
		if !errors.Is(err, ErrTruncated) {
			t.Errorf("size %d: expected ErrTruncated, got %v", size, err)
			continue
		}
		if m == nil || m.TriangleCount() != 0 {
			t.Errorf("size %d: expected an empty mesh", size)
		}
	}
}

func TestDecodeSTLBinaryIgnoresTrailingBytes(t *testing.T) {
	cube := facets(t, unitCube())
	data := binarySTL("declares fewer", 2, cube)

	m, err := DecodeSTLBinary(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeSTLBinary failed: %v", err)
	}
	if m.TriangleCount() != 2 {
		t.Errorf("TriangleCount failed: expected 2, got %d", m.TriangleCount())
	}
}

func TestDecodeSTLBinaryPromotesToFloat64(t *testing.T) {
	tri := geometry.NewTriangle(
		geometry.NewVector3(0.1, 0.2, 0.3),
		geometry.NewVector3(1, 2, 3),
		geometry.NewVector3(-4, -5, -6),
	)

	m, err := DecodeSTLBinary(bytes.NewReader(binarySTL("", 1, []geometry.Triangle{tri})))
	if err != nil {
		t.Fatalf("DecodeSTLBinary failed: %v", err)
	}

	want := geometry.FromFloat32([3]float32{0.1, 0.2, 0.3})
	if m.Vertices[0] != want {
		t.Errorf("vertex failed: expected %v, got %v", want, m.Vertices[0])
	}
}
