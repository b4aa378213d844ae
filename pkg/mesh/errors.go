package mesh

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("file not found")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrInvalidIndex      = errors.New("invalid vertex index")

	// ErrTruncated is returned together with a partial mesh when a binary
	// STL ends before its declared triangle count. It is not fatal.
	ErrTruncated = errors.New("truncated binary STL")
)

// FormatError reports a file extension that is neither stl nor obj
type FormatError struct {
	Ext string
}

func (e *FormatError) Error() string {
	if e.Ext == "" {
		return "unsupported file format: missing extension"
	}
	return fmt.Sprintf("unsupported file format: %q", e.Ext)
}

func (e *FormatError) Unwrap() error {
	return ErrUnsupportedFormat
}

// IndexError reports an OBJ face corner that does not name a vertex
// defined earlier in the file
type IndexError struct {
	Line        int
	Token       string
	VertexCount int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("line %d: face corner %q does not reference one of %d vertices", e.Line, e.Token, e.VertexCount)
}

func (e *IndexError) Unwrap() error {
	return ErrInvalidIndex
}
