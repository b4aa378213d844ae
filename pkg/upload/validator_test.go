package upload

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	asciiSTL  = []byte("solid part\n facet normal 0 0 1\n  outer loop\n   vertex 0 0 0\n   vertex 1 0 0\n   vertex 0 1 0\n  endloop\n endfacet\nendsolid part\n")
	objText   = []byte("# exported\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")
	pdfHeader = []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")
)

func binarySTL() []byte {
	data := make([]byte, 84+50)
	copy(data, "binary header")
	data[80] = 1
	return data
}

func TestValidateAcceptsMeshFiles(t *testing.T) {
	v := NewValidator(10)

	tests := []struct {
		name    string
		content []byte
	}{
		{"part.stl", asciiSTL},
		{"part.STL", binarySTL()},
		{"part.obj", objText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.name, int64(len(tt.content)), bytes.NewReader(tt.content))
			assert.NoError(t, err)
		})
	}
}

func TestValidateRejectsOversizedFile(t *testing.T) {
	v := NewValidator(10)

	err := v.Validate("big.stl", 15*MB, bytes.NewReader(asciiSTL))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRejected)

	rejection, ok := IsRejection(err)
	require.True(t, ok)
	assert.Equal(t, ReasonSize, rejection.Reason)
	assert.Equal(t, "file size exceeds 10 MB limit", rejection.Error())
}

func TestValidateSizeBoundary(t *testing.T) {
	v := NewValidator(1)

	assert.NoError(t, v.CheckSize(MB))
	assert.Error(t, v.CheckSize(MB+1))
}

func TestValidateRejectsDisallowedExtension(t *testing.T) {
	v := NewValidator(10)

	// Valid mesh content does not rescue a wrong extension
	for _, name := range []string{"render.png", "model", "model.stl.png", "archive.3mf"} {
		err := v.Validate(name, int64(len(asciiSTL)), bytes.NewReader(asciiSTL))

		rejection, ok := IsRejection(err)
		require.True(t, ok, name)
		assert.Equal(t, ReasonExtension, rejection.Reason, name)
		assert.Equal(t, "invalid file type. Allowed: stl, obj", rejection.Message, name)
	}
}

func TestValidateRejectsForeignContent(t *testing.T) {
	v := NewValidator(10)

	tests := []struct {
		name    string
		content []byte
	}{
		{"short png renamed.stl", pngHeader},
		{"png renamed.obj", pngHeader},
		{"pdf renamed.obj", pdfHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.name, int64(len(tt.content)), bytes.NewReader(tt.content))

			rejection, ok := IsRejection(err)
			require.True(t, ok)
			assert.Equal(t, ReasonContent, rejection.Reason)
			assert.Equal(t, "file content does not match expected format", rejection.Message)
			assert.NotEmpty(t, rejection.MIME)
		})
	}
}

func TestValidateRejectsEmptyFile(t *testing.T) {
	v := NewValidator(10)

	for _, name := range []string{"empty.stl", "empty.obj"} {
		err := v.Validate(name, 0, bytes.NewReader(nil))

		rejection, ok := IsRejection(err)
		require.True(t, ok, name)
		assert.Equal(t, ReasonContent, rejection.Reason, name)
	}

	path := filepath.Join(t.TempDir(), "empty.stl")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	assert.ErrorIs(t, v.ValidateFile(path), ErrRejected)
}

func TestStructuralProbe(t *testing.T) {
	// Files whose MIME type is not on the allow-list still pass when they
	// look like the claimed format
	v := &Validator{MaxSizeMB: 10, AllowedExtensions: DefaultExtensions}

	assert.NoError(t, v.CheckContent("stl", asciiSTL))
	assert.NoError(t, v.CheckContent("stl", binarySTL()))
	assert.NoError(t, v.CheckContent("obj", objText))
	assert.NoError(t, v.CheckContent("obj", []byte("mtllib cube.mtl\n")))
	assert.NoError(t, v.CheckContent("obj", []byte("\ng group\n")))

	assert.Error(t, v.CheckContent("stl", []byte("hello world")))
	assert.Error(t, v.CheckContent("obj", []byte("hello world\nvertex 1 2 3")))
}

func TestNewValidatorDefaults(t *testing.T) {
	v := NewValidator(0)
	assert.Equal(t, DefaultMaxSizeMB, v.MaxSizeMB)
	assert.Equal(t, []string{"stl", "obj"}, v.AllowedExtensions)

	v = NewValidator(5, ".STL", " obj ", "")
	assert.Equal(t, []string{"stl", "obj"}, v.AllowedExtensions)
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "part.obj")
	bad := filepath.Join(dir, "part.txt")
	require.NoError(t, os.WriteFile(good, objText, 0o644))
	require.NoError(t, os.WriteFile(bad, objText, 0o644))

	v := NewValidator(1)
	assert.NoError(t, v.ValidateFile(good))
	assert.ErrorIs(t, v.ValidateFile(bad), ErrRejected)

	err := v.ValidateFile(filepath.Join(dir, "missing.stl"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrRejected))
}

func TestValidateReadsOnlyTheHead(t *testing.T) {
	v := NewValidator(10)
	large := strings.Repeat("v 1 2 3\n", 100000)

	r := strings.NewReader(large)
	require.NoError(t, v.Validate("big.obj", int64(len(large)), r))
	assert.Greater(t, r.Len(), 0)
}
