package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cesargomez89/episodarr/internal/constants"
	"github.com/cesargomez89/episodarr/internal/domain"
)

// EnsureProviderTable creates the result cache table for a search provider.
// When the table already exists it only backfills a missing version column
// with -1.
func (db *DB) EnsureProviderTable(provider string) error {
	if provider == "" {
		return errors.New("provider name cannot be empty")
	}

	ctx := context.Background()
	exists, err := hasTable(ctx, db.DB, provider)
	if err != nil {
		return err
	}

	if !exists {
		stmt := fmt.Sprintf(`CREATE TABLE %s (
			name TEXT,
			season NUMERIC,
			episodes TEXT,
			indexerid NUMERIC,
			url TEXT,
			time NUMERIC,
			quality TEXT,
			release_group TEXT,
			version NUMERIC DEFAULT %s
		)`, quoteIdent(provider), constants.CacheVersionDefault)
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create cache table %s: %w", provider, err)
		}
		return nil
	}

	return ensureColumn(ctx, db.DB, provider,
		constants.CacheVersionColumn, constants.CacheVersionType, constants.CacheVersionDefault)
}

// EnsureLastUpdateTable creates the shared provider poll-time table if missing.
func (db *DB) EnsureLastUpdateTable() error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (provider TEXT, time NUMERIC)`,
		quoteIdent(constants.LastUpdateTable))
	if _, err := db.Exec(stmt); err != nil {
		return fmt.Errorf("failed to create %s: %w", constants.LastUpdateTable, err)
	}
	return nil
}

func (db *DB) AddCacheResult(provider string, r *domain.CacheResult) error {
	query := fmt.Sprintf(`INSERT INTO %s (name, season, episodes, indexerid, url, time, quality, release_group, version)
		VALUES (:name, :season, :episodes, :indexerid, :url, :time, :quality, :release_group, :version)`, quoteIdent(provider))
	_, err := db.NamedExec(query, r)
	return err
}

func (db *DB) CacheResults(provider string) ([]*domain.CacheResult, error) {
	query := fmt.Sprintf(`SELECT COALESCE(name, '') AS name, COALESCE(season, 0) AS season,
		COALESCE(episodes, '') AS episodes, COALESCE(indexerid, 0) AS indexerid, COALESCE(url, '') AS url,
		COALESCE(time, 0) AS time, COALESCE(quality, '') AS quality,
		COALESCE(release_group, '') AS release_group, COALESCE(version, -1) AS version
		FROM %s ORDER BY time DESC`, quoteIdent(provider))

	var results []*domain.CacheResult
	err := db.Select(&results, query)
	return results, err
}

// SetLastUpdate records when provider was last polled.
func (db *DB) SetLastUpdate(provider string, at time.Time) error {
	res, err := db.Exec(`UPDATE lastUpdate SET time = ? WHERE provider = ?`, at.Unix(), provider)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil || n > 0 {
		return err
	}
	_, err = db.Exec(`INSERT INTO lastUpdate (provider, time) VALUES (?, ?)`, provider, at.Unix())
	return err
}

// LastUpdate returns the zero time when the provider was never polled.
func (db *DB) LastUpdate(provider string) (time.Time, error) {
	var ts int64
	err := db.Get(&ts, `SELECT time FROM lastUpdate WHERE provider = ?`, provider)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(ts, 0), nil
}
