package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// RowType selects how Fetch shapes result rows.
type RowType int

const (
	// RowTuple rows carry positional values only.
	RowTuple RowType = iota
	// RowDict rows also carry values keyed by column name.
	RowDict
)

// DB is one SQLite database file and the row shape Fetch returns.
type DB struct {
	*sqlx.DB
	Name    string
	Path    string
	RowType RowType
}

// Row is a single result row. Fields is nil for RowTuple handles.
type Row struct {
	Values []any
	Fields map[string]any
}

// Open opens the database at path in WAL mode.
func Open(path string, rowType RowType) (*DB, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	// one writer per file; also keeps per-connection pragmas in effect
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=30000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	return &DB{
		DB:      db,
		Name:    filepath.Base(path),
		Path:    path,
		RowType: rowType,
	}, nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}

// Fetch runs a query and shapes every row according to db.RowType.
func (db *DB) Fetch(query string, args ...any) ([]Row, error) {
	rows, err := db.Queryx(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []Row
	for rows.Next() {
		if db.RowType == RowDict {
			fields := make(map[string]any, len(cols))
			if err := rows.MapScan(fields); err != nil {
				return nil, err
			}
			values := make([]any, len(cols))
			for i, c := range cols {
				values[i] = fields[c]
			}
			out = append(out, Row{Values: values, Fields: fields})
			continue
		}

		values, err := rows.SliceScan()
		if err != nil {
			return nil, err
		}
		out = append(out, Row{Values: values})
	}
	return out, rows.Err()
}

// Flush checkpoints the write-ahead log into the main database file.
func (db *DB) Flush() error {
	if _, err := db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("failed to checkpoint %s: %w", db.Name, err)
	}
	return nil
}

func (db *DB) HasTable(table string) (bool, error) {
	return hasTable(context.Background(), db.DB, table)
}

func (db *DB) HasColumn(table, column string) (bool, error) {
	return hasColumn(context.Background(), db.DB, table, column)
}

// AddColumn adds column with the given SQL type and default literal unless it
// already exists. Existing rows take the default.
func (db *DB) AddColumn(table, column, colType, defaultValue string) error {
	return ensureColumn(context.Background(), db.DB, table, column, colType, defaultValue)
}

// hasTable matches names case-insensitively, as SQLite resolves identifiers.
func hasTable(ctx context.Context, q sqlx.QueryerContext, table string) (bool, error) {
	var count int
	err := sqlx.GetContext(ctx, q, &count,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ? COLLATE NOCASE", table)
	if err != nil {
		return false, fmt.Errorf("failed to check table %s: %w", table, err)
	}
	return count > 0, nil
}

func hasColumn(ctx context.Context, q sqlx.QueryerContext, table, column string) (bool, error) {
	var count int
	err := sqlx.GetContext(ctx, q, &count,
		"SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?", table, column)
	if err != nil {
		return false, fmt.Errorf("failed to check column %s.%s: %w", table, column, err)
	}
	return count > 0, nil
}

func ensureColumn(ctx context.Context, q sqlx.ExtContext, table, column, colType, defaultValue string) error {
	exists, err := hasColumn(ctx, q, table, column)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", quoteIdent(table), quoteIdent(column), colType)
	if defaultValue != "" {
		stmt += " DEFAULT " + defaultValue
	}
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("failed to add column %s.%s: %w", table, column, err)
	}
	return nil
}

// quoteIdent quotes a table or column name. Provider names come from user
// configuration and may contain any character.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
