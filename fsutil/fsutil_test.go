package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanLines(t *testing.T) {
	input := "alpha\n\n  beta  \n# comment\ngamma\r\nalpha\n"

	lines, err := ScanLines(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "gamma", "alpha"}, lines)
}

func TestReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "set.txt")
	require.NoError(t, os.WriteFile(path, []byte("1\n2\n3\n"), 0o644))

	lines, err := ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, lines)
}

func TestReadLinesMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")

	_, err := ReadLines(path)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), path)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.svg")

	require.NoError(t, WriteFile(path, []byte("first"), 0o600))
	require.NoError(t, WriteFile(path, []byte("second"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files left behind")
}

func TestWriteFileMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nope")

	err := WriteFile(filepath.Join(dir, "out.svg"), []byte("x"), 0o644)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), dir)
}
