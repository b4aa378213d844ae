package openscad

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScad(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestResolveDependencies(t *testing.T) {
	dir := t.TempDir()
	writeScad(t, filepath.Join(dir, "main.scad"), `use <lib/shapes.scad>
include <./params.scad>
// use <ignored.scad>
cube(size);
`)
	writeScad(t, filepath.Join(dir, "params.scad"), "size = 10;\n")
	writeScad(t, filepath.Join(dir, "lib", "shapes.scad"), "include <../params.scad>\nmodule ring() {}\n")

	r := NewRenderer(dir, "")
	deps, err := r.ResolveDependencies("main.scad")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "main.scad"),
		filepath.Join(dir, "lib", "shapes.scad"),
		filepath.Join(dir, "params.scad"),
	}, deps)
}

func TestResolveDependenciesMissingFile(t *testing.T) {
	dir := t.TempDir()
	writeScad(t, filepath.Join(dir, "main.scad"), "use <nowhere.scad>\n")

	_, err := NewRenderer(dir, "").ResolveDependencies("main.scad")
	assert.Error(t, err)
}

func TestRenderWithoutBinary(t *testing.T) {
	r := NewRenderer(t.TempDir(), "gomesh-openscad-that-does-not-exist")

	_, err := r.RenderTemp(context.Background(), "part.scad")
	assert.ErrorIs(t, err, ErrNotInstalled)
}

func TestIsSource(t *testing.T) {
	assert.True(t, IsSource("part.scad"))
	assert.True(t, IsSource("PART.SCAD"))
	assert.False(t, IsSource("part.stl"))
}
