package mesh

import (
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/philipparndt/gomesh/pkg/geometry"
)

const number = `([-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?)`

var vertexPattern = regexp.MustCompile(`(?i)vertex\s+` + number + `\s+` + number + `\s+` + number)

// DecodeSTLASCII parses an ASCII STL.
//
// Only "vertex x y z" lines are read; every three consecutive vertices form
// one triangle, which is how facet/outer loop blocks are laid out. A
// trailing group of fewer than three vertices is dropped.
func DecodeSTLASCII(r io.Reader) (*Mesh, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	m := NewMesh()
	var pending [3]geometry.Vector3
	n := 0

	for _, match := range vertexPattern.FindAllSubmatch(content, -1) {
		x, _ := strconv.ParseFloat(string(match[1]), 64)
		y, _ := strconv.ParseFloat(string(match[2]), 64)
		z, _ := strconv.ParseFloat(string(match[3]), 64)
		pending[n] = geometry.NewVector3(x, y, z)
		n++

		if n == 3 {
			m.AddTriangle(Triangle{
				m.AddVertex(pending[0]),
				m.AddVertex(pending[1]),
				m.AddVertex(pending[2]),
			})
			n = 0
		}
	}

	return m, nil
}
