package store

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// FailedSchema defines the failed-download database.
var FailedSchema = Schema{
	{
		Version:     1,
		Description: "initial schema",
		Up: func(ctx context.Context, tx *sqlx.Tx) error {
			return execAll(ctx, tx,
				`CREATE TABLE failed (release TEXT NOT NULL, size NUMERIC NOT NULL DEFAULT -1, provider TEXT NOT NULL DEFAULT '')`,
				`CREATE TABLE history (
					date NUMERIC,
					size NUMERIC,
					release TEXT,
					provider TEXT,
					old_status NUMERIC DEFAULT 0,
					showid NUMERIC DEFAULT -1,
					season NUMERIC DEFAULT -1,
					episode NUMERIC DEFAULT -1
				)`,
			)
		},
	},
}
