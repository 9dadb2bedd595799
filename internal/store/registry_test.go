package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	dir := t.TempDir()
	reg := NewRegistry(dir)
	t.Cleanup(func() { _ = reg.CloseAll() })

	assert.Equal(t, filepath.Join(dir, "main.db"), reg.Path("main.db"))
	assert.Equal(t, "/abs/other.db", reg.Path("/abs/other.db"))

	first, err := reg.Open("main.db", RowTuple)
	require.NoError(t, err)
	again, err := reg.Open("main.db", RowTuple)
	require.NoError(t, err)
	assert.Same(t, first, again)

	dict, err := reg.Open("main.db", RowDict)
	require.NoError(t, err)
	assert.Equal(t, RowDict, dict.RowType)
	assert.Same(t, first.DB, dict.DB)

	_, err = reg.Open("cache.db", RowDict)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "cache.db"), filepath.Join(dir, "main.db")}, reg.Paths())

	_, err = first.Exec(`CREATE TABLE t (a TEXT)`)
	require.NoError(t, err)
	assert.NoError(t, reg.Flush())

	require.NoError(t, reg.CloseAll())
	assert.Empty(t, reg.Paths())
}

func TestRegistryOpenError(t *testing.T) {
	reg := NewRegistry(filepath.Join(t.TempDir(), "missing", "dir"))
	_, err := reg.Open("main.db", RowTuple)
	assert.Error(t, err)
}
