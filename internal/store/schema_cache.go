package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/cesargomez89/episodarr/internal/constants"
)

// CacheSchema defines the shared tables of the cache database. Per-provider
// result tables are created on demand by EnsureProviderTable.
var CacheSchema = Schema{
	{
		Version:     1,
		Description: "initial schema",
		Up: func(ctx context.Context, tx *sqlx.Tx) error {
			return execAll(ctx, tx,
				`CREATE TABLE `+constants.LastUpdateTable+` (provider TEXT, time NUMERIC)`,
				`CREATE TABLE `+constants.LastSearchTable+` (provider TEXT, time NUMERIC)`,
				`CREATE TABLE scene_exceptions (
					exception_id INTEGER PRIMARY KEY,
					indexer_id INTEGER,
					show_name TEXT,
					season NUMERIC DEFAULT -1,
					custom NUMERIC DEFAULT 0
				)`,
				`CREATE TABLE scene_names (indexer_id INTEGER, name TEXT)`,
				`CREATE TABLE network_timezones (network_name TEXT PRIMARY KEY, timezone TEXT)`,
			)
		},
	},
	{
		Version:     2,
		Description: "add scene exception refresh",
		Up: func(ctx context.Context, tx *sqlx.Tx) error {
			return execAll(ctx, tx,
				`CREATE TABLE scene_exceptions_refresh (list TEXT PRIMARY KEY, last_refreshed INTEGER)`,
			)
		},
	},
}
