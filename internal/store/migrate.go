package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/cesargomez89/episodarr/internal/constants"
)

// Migration moves a database to Version. Up runs inside the transaction that
// also records the new version.
type Migration struct {
	Up          func(ctx context.Context, tx *sqlx.Tx) error
	Description string
	Version     int
}

// Schema is an ordered list of migrations for one database.
type Schema []Migration

// Latest returns the highest version in the schema.
func (s Schema) Latest() int {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Version
}

func (s Schema) validate() error {
	prev := 0
	for _, m := range s {
		if m.Version <= prev {
			return fmt.Errorf("migration %d (%s) is out of order", m.Version, m.Description)
		}
		if m.Up == nil {
			return fmt.Errorf("migration %d (%s) has no Up step", m.Version, m.Description)
		}
		prev = m.Version
	}
	return nil
}

const versionTableDDL = `CREATE TABLE IF NOT EXISTS ` + constants.VersionTable + ` (db_version INTEGER)`

// Version reports the schema version recorded in db, 0 for a fresh file.
func Version(ctx context.Context, db *DB) (int, error) {
	return currentVersion(ctx, db.DB)
}

func currentVersion(ctx context.Context, q sqlx.QueryerContext) (int, error) {
	ok, err := hasTable(ctx, q, constants.VersionTable)
	if err != nil || !ok {
		return 0, err
	}

	var version sql.NullInt64
	err = sqlx.GetContext(ctx, q, &version, "SELECT MAX(db_version) FROM "+constants.VersionTable)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return int(version.Int64), nil
}

// Upgrade applies every migration newer than the recorded version, each in
// its own transaction. Running it on an up-to-date database is a no-op.
func Upgrade(ctx context.Context, db *DB, schema Schema) error {
	if err := schema.validate(); err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, versionTableDDL); err != nil {
		return fmt.Errorf("failed to create version table: %w", err)
	}

	current, err := Version(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range schema {
		if m.Version <= current {
			continue
		}
		if err := applyMigration(ctx, db, m); err != nil {
			return fmt.Errorf("%s: migration %d (%s): %w", db.Name, m.Version, m.Description, err)
		}
	}
	return nil
}

func applyMigration(ctx context.Context, db *DB, m Migration) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := m.Up(ctx, tx); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+constants.VersionTable); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO "+constants.VersionTable+" (db_version) VALUES (?)", m.Version); err != nil {
		return err
	}
	return tx.Commit()
}

// Check repairs one class of inconsistent rows and reports how many it touched.
type Check struct {
	Run  func(ctx context.Context, db *DB) (int64, error)
	Name string
}

// SanityCheck runs every check in order and stops at the first failure.
// It returns the number of rows repaired per check name.
func SanityCheck(ctx context.Context, db *DB, checks []Check) (map[string]int64, error) {
	fixed := make(map[string]int64, len(checks))
	for _, c := range checks {
		n, err := c.Run(ctx, db)
		if err != nil {
			return fixed, fmt.Errorf("%s: sanity check %s: %w", db.Name, c.Name, err)
		}
		fixed[c.Name] = n
	}
	return fixed, nil
}

// execAll runs statements in order on q.
func execAll(ctx context.Context, q sqlx.ExecerContext, stmts ...string) error {
	for _, stmt := range stmts {
		if _, err := q.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
