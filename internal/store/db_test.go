package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T, rowType RowType) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"), rowType)
	require.NoError(t, err)
	t.Cleanup(func() {
		if cErr := db.Close(); cErr != nil {
			t.Logf("db.Close error: %v", cErr)
		}
	})
	return db
}

func TestOpen(t *testing.T) {
	db := setupTestDB(t, RowTuple)

	assert.Equal(t, "test.db", db.Name)
	assert.Equal(t, RowTuple, db.RowType)

	var mode string
	require.NoError(t, db.Get(&mode, "PRAGMA journal_mode"))
	assert.Equal(t, "wal", mode)
}

func TestFetchRowShapes(t *testing.T) {
	tuple := setupTestDB(t, RowTuple)
	_, err := tuple.Exec(`CREATE TABLE t (a TEXT, b INTEGER); INSERT INTO t VALUES ('x', 1), ('y', 2)`)
	require.NoError(t, err)

	rows, err := tuple.Fetch("SELECT a, b FROM t ORDER BY b")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Nil(t, rows[0].Fields)
	assert.Equal(t, "x", rows[0].Values[0])
	assert.EqualValues(t, 2, rows[1].Values[1])

	dict := &DB{DB: tuple.DB, Name: tuple.Name, Path: tuple.Path, RowType: RowDict}
	rows, err = dict.Fetch("SELECT a, b FROM t WHERE b = ?", 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "y", rows[0].Fields["a"])
	assert.EqualValues(t, 2, rows[0].Fields["b"])
	assert.Equal(t, []any{"y", rows[0].Fields["b"]}, rows[0].Values)
}

func TestFetchError(t *testing.T) {
	db := setupTestDB(t, RowTuple)
	_, err := db.Fetch("SELECT * FROM missing")
	assert.Error(t, err)
}

func TestTableAndColumnChecks(t *testing.T) {
	db := setupTestDB(t, RowTuple)

	ok, err := db.HasTable("shows")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = db.Exec(`CREATE TABLE shows (name TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO shows (name) VALUES ('a')`)
	require.NoError(t, err)

	ok, err = db.HasTable("shows")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = db.HasColumn("shows", "rating")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.AddColumn("shows", "rating", "NUMERIC", "-1"))
	// second call is a no-op
	require.NoError(t, db.AddColumn("shows", "rating", "NUMERIC", "-1"))

	ok, err = db.HasColumn("shows", "rating")
	require.NoError(t, err)
	assert.True(t, ok)

	var rating int
	require.NoError(t, db.Get(&rating, `SELECT rating FROM shows WHERE name = 'a'`))
	assert.Equal(t, -1, rating)
}

func TestFlush(t *testing.T) {
	db := setupTestDB(t, RowTuple)
	_, err := db.Exec(`CREATE TABLE t (a TEXT)`)
	require.NoError(t, err)
	assert.NoError(t, db.Flush())
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"plain"`, quoteIdent("plain"))
	assert.Equal(t, `"we""ird"`, quoteIdent(`we"ird`))
}
