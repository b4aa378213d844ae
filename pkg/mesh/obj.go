package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/philipparndt/gomesh/pkg/geometry"
)

// maxLineSize bounds a single OBJ line; long face lists can exceed the
// scanner's 64 KiB default
const maxLineSize = 4 << 20

// DecodeOBJ parses a Wavefront OBJ file.
//
// Only "v" and "f" lines are used. Face corners may be written as v, v/vt,
// v/vt/vn or v//vn; texture and normal indices are ignored. Polygons with
// more than three corners are fan-triangulated around their first corner.
// Negative indices count back from the last vertex defined so far.
func DecodeOBJ(r io.Reader) (*Mesh, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	m := NewMesh()
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			m.AddVertex(parseOBJVertex(fields[1:]))

		case "f":
			corners := fields[1:]
			if len(corners) < 3 {
				continue
			}

			indices := make([]int, len(corners))
			for i, corner := range corners {
				idx, err := resolveOBJIndex(corner, len(m.Vertices))
				if err != nil {
					return nil, &IndexError{Line: lineNo, Token: corner, VertexCount: len(m.Vertices)}
				}
				indices[i] = idx
			}

			for i := 1; i < len(indices)-1; i++ {
				m.AddTriangle(Triangle{indices[0], indices[i], indices[i+1]})
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ: %w", err)
	}

	return m, nil
}

// parseOBJVertex reads up to three coordinates; missing or unparsable
// values are 0
func parseOBJVertex(fields []string) geometry.Vector3 {
	var c [3]float64
	for i := 0; i < len(c) && i < len(fields); i++ {
		c[i], _ = strconv.ParseFloat(fields[i], 64)
	}
	return geometry.NewVector3(c[0], c[1], c[2])
}

// resolveOBJIndex turns a face corner into a 0-based vertex index
func resolveOBJIndex(corner string, vertexCount int) (int, error) {
	field, _, _ := strings.Cut(corner, "/")
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, err
	}

	var idx int
	switch {
	case n > 0:
		idx = n - 1
	case n < 0:
		idx = vertexCount + n
	default:
		return 0, ErrInvalidIndex
	}

	if idx < 0 || idx >= vertexCount {
		return 0, ErrInvalidIndex
	}
	return idx, nil
}
