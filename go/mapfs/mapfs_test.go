package mapfs

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapFS(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "other", "place"), 0o755))
	a := filepath.Join(dir, "a.proto")
	b := filepath.Join(dir, "other", "place", "b.proto")
	require.NoError(t, os.WriteFile(a, []byte("message A {}\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("message B {}\n"), 0o644))

	m := MapFS{
		"a.proto":       a,
		"pkg/b.proto":   b,
		"pkg/x/a.proto": a,
	}

	t.Run("walks all files", func(t *testing.T) {
		var found []string
		err := fs.WalkDir(m, ".", func(path string, d fs.DirEntry, err error) error {
			require.NoError(t, err)
			if !d.IsDir() {
				found = append(found, path)
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"a.proto", "pkg/b.proto", "pkg/x/a.proto"}, found)
	})

	t.Run("reads contents from disk", func(t *testing.T) {
		data, err := fs.ReadFile(m, "pkg/b.proto")
		require.NoError(t, err)
		assert.Equal(t, "message B {}\n", string(data))
	})

	t.Run("missing", func(t *testing.T) {
		_, err := m.Open("nope.proto")
		assert.ErrorIs(t, err, fs.ErrNotExist)
		_, err = m.Open("../a.proto")
		assert.ErrorIs(t, err, fs.ErrInvalid)
	})
}

func TestMapFSAdd(t *testing.T) {
	outside := filepath.Dir(t.TempDir())
	m := MapFS{}
	assert.Equal(t, "a.proto", m.Add("../protos/a.proto"))
	assert.Equal(t, "b.proto", m.Add(filepath.Join(outside, "b.proto")))
	assert.Equal(t, "x/c.proto", m.Add(filepath.FromSlash("./x/./c.proto")))
	assert.Equal(t, "d.proto", m.Add(filepath.FromSlash(".cache/proj/d.proto")))
	assert.Equal(t, "hidden/.e.proto", m.Add(filepath.FromSlash("hidden/.e.proto")))

	// same base name from another directory
	assert.Equal(t, "1/b.proto", m.Add(filepath.Join(outside, "other", "b.proto")))
	assert.Equal(t, "2/b.proto", m.Add(filepath.FromSlash("../more/b.proto")))
	// adding the same path again keeps its name
	assert.Equal(t, "b.proto", m.Add(filepath.Join(outside, "b.proto")))

	assert.Equal(t, MapFS{
		"a.proto":         "../protos/a.proto",
		"b.proto":         filepath.Join(outside, "b.proto"),
		"1/b.proto":       filepath.Join(outside, "other", "b.proto"),
		"2/b.proto":       filepath.FromSlash("../more/b.proto"),
		"x/c.proto":       filepath.FromSlash("./x/./c.proto"),
		"d.proto":         filepath.FromSlash(".cache/proj/d.proto"),
		"hidden/.e.proto": filepath.FromSlash("hidden/.e.proto"),
	}, m)
}

func TestMapFSEmpty(t *testing.T) {
	entries, err := fs.ReadDir(MapFS{}, ".")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
