package disk

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/Tribeoftech/atlas-files-manager/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "files_manager")

	_, err := New(root)
	require.NoError(t, err)

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSaveOpenRoundtrip(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	path, err := s.Save([]byte("Hello Webstack!"))
	require.NoError(t, err)

	reader, err := s.Open(path)
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "Hello Webstack!", string(data))
}

func TestSaveUsesFreshNames(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	first, err := s.Save([]byte("one"))
	require.NoError(t, err)
	second, err := s.Save([]byte("two"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestOpenMissing(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = s.Open(filepath.Join(t.TempDir(), "nothing-here"))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestVariantPath(t *testing.T) {
	assert.Equal(t, "/tmp/files_manager/abc_250", VariantPath("/tmp/files_manager/abc", 250))
}

func TestSaveVariantOverwrites(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	original, err := s.Save([]byte("original"))
	require.NoError(t, err)

	require.NoError(t, s.SaveVariant(original, 100, []byte("first run")))
	require.NoError(t, s.SaveVariant(original, 100, []byte("second run")))

	data, err := os.ReadFile(VariantPath(original, 100))
	require.NoError(t, err)
	assert.Equal(t, "second run", string(data))
}
