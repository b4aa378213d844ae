package mesh

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Format identifies how a mesh file is encoded
type Format int

const (
	StlASCII Format = iota + 1
	StlBinary
	OBJ
)

const (
	// stlHeaderSize is the fixed binary STL header length
	stlHeaderSize = 80
	// probeSize is how much of an STL is inspected for ASCII facet syntax
	probeSize = 1000
)

var facetNormalPattern = regexp.MustCompile(`(?i)facet\s+normal`)

// String returns the format tag used in results
func (f Format) String() string {
	switch f {
	case StlASCII:
		return "stl_ascii"
	case StlBinary:
		return "stl_binary"
	case OBJ:
		return "obj"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// MarshalText encodes the format as its tag
func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case StlASCII, StlBinary, OBJ:
		return []byte(f.String()), nil
	}
	return nil, fmt.Errorf("invalid format %d", int(f))
}

// Decode reads a mesh encoded in this format
func (f Format) Decode(r io.Reader) (*Mesh, error) {
	switch f {
	case StlASCII:
		return DecodeSTLASCII(r)
	case StlBinary:
		return DecodeSTLBinary(r)
	case OBJ:
		return DecodeOBJ(r)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
}

// Extension returns the lower-cased extension of name without the dot
func Extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// DetectFormat inspects the file at path and returns its format
func DetectFormat(path string) (Format, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return DetectFormatReader(file, path)
}

// DetectFormatReader detects the format of an open stream, taking the
// extension from name. STL streams are probed and rewound to the start.
func DetectFormatReader(r io.ReadSeeker, name string) (Format, error) {
	ext := Extension(name)
	if ext != "stl" {
		return DetectFormatFromHeader(ext, nil)
	}

	head, err := readProbe(r)
	if err != nil {
		return 0, err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("failed to reset file pointer: %w", err)
	}
	return DetectFormatFromHeader(ext, head)
}

// DetectFormatFromHeader picks the format from a file extension and the
// leading bytes of the file (up to 1000 are inspected).
//
// An STL whose header starts with "solid" is only treated as ASCII when
// "facet normal" also appears in the probe, since binary headers are free
// text and often begin with "solid" as well.
func DetectFormatFromHeader(ext string, head []byte) (Format, error) {
	switch strings.ToLower(ext) {
	case "obj":
		return OBJ, nil
	case "stl":
	default:
		return 0, &FormatError{Ext: ext}
	}

	header := head
	if len(header) > stlHeaderSize {
		header = header[:stlHeaderSize]
	}
	if !bytes.HasPrefix(bytes.TrimLeft(header, " \t\r\n\v\x00"), []byte("solid")) {
		return StlBinary, nil
	}

	probe := head
	if len(probe) > probeSize {
		probe = probe[:probeSize]
	}
	if facetNormalPattern.Match(probe) {
		return StlASCII, nil
	}
	return StlBinary, nil
}

// readProbe reads up to probeSize bytes; shorter files are not an error
func readProbe(r io.Reader) ([]byte, error) {
	buf := make([]byte, probeSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}
	return buf[:n], nil
}
