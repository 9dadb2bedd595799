package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/cesargomez89/episodarr/internal/constants"
)

// MainSchema defines the library database: shows, episodes and history.
var MainSchema = Schema{
	{
		Version:     1,
		Description: "initial schema",
		Up: func(ctx context.Context, tx *sqlx.Tx) error {
			return execAll(ctx, tx,
				`CREATE TABLE tv_shows (
					show_id INTEGER PRIMARY KEY,
					indexer_id NUMERIC NOT NULL,
					indexer NUMERIC NOT NULL DEFAULT 1,
					show_name TEXT NOT NULL DEFAULT '',
					location TEXT NOT NULL DEFAULT '',
					network TEXT,
					genre TEXT,
					classification TEXT,
					runtime NUMERIC,
					quality NUMERIC NOT NULL DEFAULT 0,
					airs TEXT,
					status TEXT,
					season_folders NUMERIC NOT NULL DEFAULT 0,
					paused NUMERIC NOT NULL DEFAULT 0,
					startyear NUMERIC,
					lang TEXT NOT NULL DEFAULT 'en',
					subtitles NUMERIC NOT NULL DEFAULT 0
				)`,
				`CREATE UNIQUE INDEX idx_indexer_id ON tv_shows(indexer_id)`,
				`CREATE TABLE tv_episodes (
					episode_id INTEGER PRIMARY KEY,
					showid NUMERIC NOT NULL,
					indexerid NUMERIC NOT NULL DEFAULT 0,
					indexer NUMERIC NOT NULL DEFAULT 1,
					name TEXT NOT NULL DEFAULT '',
					season NUMERIC NOT NULL,
					episode NUMERIC NOT NULL,
					description TEXT NOT NULL DEFAULT '',
					airdate NUMERIC NOT NULL DEFAULT 1,
					hasnfo NUMERIC NOT NULL DEFAULT 0,
					hastbn NUMERIC NOT NULL DEFAULT 0,
					status NUMERIC NOT NULL DEFAULT -1,
					location TEXT,
					file_size NUMERIC NOT NULL DEFAULT 0,
					release_name TEXT NOT NULL DEFAULT '',
					subtitles TEXT NOT NULL DEFAULT ''
				)`,
				`CREATE INDEX idx_showid ON tv_episodes(showid)`,
				`CREATE TABLE info (last_backlog NUMERIC, last_indexer NUMERIC, last_proper_search NUMERIC)`,
				`CREATE TABLE history (
					action NUMERIC,
					date NUMERIC,
					showid NUMERIC,
					season NUMERIC,
					episode NUMERIC,
					quality NUMERIC,
					resource TEXT,
					provider TEXT,
					version NUMERIC DEFAULT -1
				)`,
			)
		},
	},
	{
		Version:     2,
		Description: "add episode release group",
		Up: func(ctx context.Context, tx *sqlx.Tx) error {
			return ensureColumn(ctx, tx, constants.EpisodesTable, "release_group", "TEXT", "''")
		},
	},
	{
		Version:     3,
		Description: "add episode status index",
		Up: func(ctx context.Context, tx *sqlx.Tx) error {
			return execAll(ctx, tx,
				`CREATE INDEX IF NOT EXISTS idx_sta_epi_air ON tv_episodes(status, episode, airdate)`,
				`CREATE INDEX IF NOT EXISTS idx_showid_airdate ON tv_episodes(showid, airdate)`,
			)
		},
	},
}

// MainSanityCheck repairs rows left inconsistent by crashes or manual edits.
var MainSanityCheck = []Check{
	{
		Name: "orphan episodes",
		Run: func(ctx context.Context, db *DB) (int64, error) {
			return execCount(ctx, db, fmt.Sprintf(
				`DELETE FROM %s WHERE showid NOT IN (SELECT indexer_id FROM %s)`,
				constants.EpisodesTable, constants.ShowsTable))
		},
	},
	{
		Name: "duplicate episodes",
		Run: func(ctx context.Context, db *DB) (int64, error) {
			return execCount(ctx, db, fmt.Sprintf(
				`DELETE FROM %[1]s WHERE episode_id NOT IN (
					SELECT MIN(episode_id) FROM %[1]s GROUP BY showid, season, episode
				)`, constants.EpisodesTable))
		},
	},
	{
		Name: "missing locations",
		Run: func(ctx context.Context, db *DB) (int64, error) {
			return execCount(ctx, db, fmt.Sprintf(
				`UPDATE %s SET location = '' WHERE location IS NULL`, constants.EpisodesTable))
		},
	},
	{
		Name: "invalid airdates",
		Run: func(ctx context.Context, db *DB) (int64, error) {
			return execCount(ctx, db, fmt.Sprintf(
				`UPDATE %s SET airdate = 1 WHERE airdate < 1`, constants.EpisodesTable))
		},
	},
}

func execCount(ctx context.Context, db *DB, stmt string) (int64, error) {
	res, err := db.ExecContext(ctx, stmt)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
