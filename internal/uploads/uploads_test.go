// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package uploads

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSource creates a file to upload and returns its path.
func writeSource(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("image-bytes"), 0o644))
	return path
}

func TestSaveAndExists(t *testing.T) {
	s := NewStore(t.TempDir())

	filename, err := s.Save(42, writeSource(t, "photo.JPG"))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(filename, ".jpg"), "extension lowercased: %s", filename)
	assert.True(t, s.Exists(42, filename))
	assert.False(t, s.Exists(41, filename), "file belongs to one site only")

	data, err := os.ReadFile(s.Path(42, filename))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	s := NewStore(t.TempDir())
	src := writeSource(t, "same.png")

	first, err := s.Save(1, src)
	require.NoError(t, err)
	second, err := s.Save(1, src)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestSaveRejectsUnsupportedTypes(t *testing.T) {
	s := NewStore(t.TempDir())

	for _, name := range []string{"doc.pdf", "script.sh", "noext"} {
		_, err := s.Save(1, writeSource(t, name))
		assert.True(t, errors.Is(err, ErrUnsupportedType), "%s should be rejected", name)
	}
}

func TestExistsEdgeCases(t *testing.T) {
	s := NewStore(t.TempDir())

	assert.False(t, s.Exists(1, ""))
	assert.False(t, s.Exists(1, "missing.png"))

	// A directory with a matching name does not count as a stored file.
	require.NoError(t, os.MkdirAll(s.Path(1, "dir.png"), 0o755))
	assert.False(t, s.Exists(1, "dir.png"))
}

func TestRemove(t *testing.T) {
	s := NewStore(t.TempDir())

	filename, err := s.Save(1, writeSource(t, "a.png"))
	require.NoError(t, err)

	require.NoError(t, s.Remove(1, filename))
	assert.False(t, s.Exists(1, filename))

	// Already gone: still fine.
	assert.NoError(t, s.Remove(1, filename))
}
