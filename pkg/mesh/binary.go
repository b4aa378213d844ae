package mesh

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/philipparndt/gomesh/pkg/geometry"
)

const (
	// stlRecordSize is normal (12) + three vertices (36) + attribute count (2)
	stlRecordSize = 50
	// maxPrealloc bounds how many triangles are reserved up front from the
	// declared count, which is untrusted
	maxPrealloc = 1 << 20
)

// DecodeSTLBinary parses a binary STL.
//
// Layout: 80-byte header, uint32 little-endian triangle count, then one
// 50-byte record per triangle. Normals and attribute bytes are ignored.
//
// If the stream ends before the declared count, the triangles read so far
// are returned together with an error wrapping ErrTruncated.
func DecodeSTLBinary(r io.Reader) (*Mesh, error) {
	reader := bufio.NewReader(r)
	m := NewMesh()

	var head [stlHeaderSize + 4]byte
	if _, err := io.ReadFull(reader, head[:]); err != nil {
		if isShortRead(err) {
			return m, fmt.Errorf("%w: missing header or triangle count", ErrTruncated)
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	triangleCount := binary.LittleEndian.Uint32(head[stlHeaderSize:])

	reserve := int(min(triangleCount, maxPrealloc))
	m.Vertices = make([]geometry.Vector3, 0, reserve*3)
	m.Triangles = make([]Triangle, 0, reserve)

	var record [stlRecordSize]byte
	for i := uint32(0); i < triangleCount; i++ {
		if _, err := io.ReadFull(reader, record[:]); err != nil {
			if isShortRead(err) {
				return m, fmt.Errorf("%w: read %d of %d triangles", ErrTruncated, i, triangleCount)
			}
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}

		var tri Triangle
		for v := range tri {
			// Skip the 12-byte normal
			tri[v] = m.AddVertex(readVertex(record[12+12*v:]))
		}
		m.AddTriangle(tri)
	}

	return m, nil
}

// readVertex decodes three little-endian float32 values
func readVertex(b []byte) geometry.Vector3 {
	var c [3]float32
	for i := range c {
		c[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return geometry.FromFloat32(c)
}

func isShortRead(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
