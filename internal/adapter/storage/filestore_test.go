package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Store(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	path, err := fs.Store("cover.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
	assert.True(t, strings.HasSuffix(path, "-cover.png"))
}

func TestFileStore_SameNameNeverCollides(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	first, err := fs.Store("cover.png", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := fs.Store("cover.png", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestFileStore_StripsDirectoryFromUploadName(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	path, err := fs.Store("../../etc/cover.png", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
}
