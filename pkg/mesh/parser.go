package mesh

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
)

// mm3PerCM3 converts cubic millimeters to cubic centimeters
const mm3PerCM3 = 1000.0

// ParseResult is the outcome of parsing one mesh file
type ParseResult struct {
	VolumeCM3     float64 `json:"volume_cm3"`
	VolumeMM3     float64 `json:"volume_mm3"`
	TriangleCount uint64  `json:"triangle_count"`
	VertexCount   uint64  `json:"vertex_count"`
	Format        Format  `json:"format"`
	// Truncated is set when a binary STL held fewer triangles than its
	// header declared. The volume covers the triangles that were read.
	Truncated bool `json:"truncated"`
}

// Decoded is a mesh together with how it was read
type Decoded struct {
	Mesh      *Mesh
	Format    Format
	Truncated bool
}

// Result computes the volume of the decoded mesh
func (d *Decoded) Result() ParseResult {
	volume := math.Abs(d.Mesh.SignedVolume())
	return ParseResult{
		VolumeCM3:     volume / mm3PerCM3,
		VolumeMM3:     volume,
		TriangleCount: uint64(d.Mesh.TriangleCount()),
		VertexCount:   uint64(d.Mesh.VertexCount()),
		Format:        d.Format,
		Truncated:     d.Truncated,
	}
}

// ParseFile reads a mesh file and returns its volume.
// The format is detected from the extension and, for STL, the content.
func ParseFile(path string) (ParseResult, error) {
	decoded, err := LoadFile(path)
	if err != nil {
		return ParseResult{}, err
	}
	return decoded.Result(), nil
}

// LoadFile reads and decodes a mesh file without computing its volume
func LoadFile(path string) (*Decoded, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Load(file, path)
}

// Load decodes a mesh from an open stream. name supplies the extension.
func Load(r io.ReadSeeker, name string) (*Decoded, error) {
	format, err := DetectFormatReader(r, name)
	if err != nil {
		return nil, err
	}

	m, err := format.Decode(r)
	truncated := errors.Is(err, ErrTruncated)
	if err != nil && !truncated {
		return nil, fmt.Errorf("failed to decode %s: %w", format, err)
	}

	return &Decoded{Mesh: m, Format: format, Truncated: truncated}, nil
}
