package store

import (
	"fmt"
	"time"

	"github.com/cesargomez89/episodarr/internal/constants"
	"github.com/cesargomez89/episodarr/internal/domain"
)

// MarkFailed records a release as failed and logs it to the failed history.
func (db *DB) MarkFailed(r *domain.FailedRelease) error {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`INSERT INTO %s (release, size, provider) VALUES (:release, :size, :provider)`, constants.FailedTable)
	if _, err := tx.NamedExec(query, r); err != nil {
		return err
	}

	history := fmt.Sprintf(`INSERT INTO %s (date, size, release, provider) VALUES (?, ?, ?, ?)`, constants.HistoryTable)
	if _, err := tx.Exec(history, time.Now().Unix(), r.Size, r.Release, r.Provider); err != nil {
		return err
	}
	return tx.Commit()
}

// HasFailed reports whether the release is known to have failed. A size of
// -1 or an empty provider matches any value.
func (db *DB) HasFailed(release string, size int64, provider string) (bool, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s
		WHERE release = ? AND (? = -1 OR size = ?) AND (? = '' OR provider = ?)`, constants.FailedTable)

	var count int
	err := db.Get(&count, query, release, size, size, provider, provider)
	return count > 0, err
}

func (db *DB) ListFailed() ([]*domain.FailedRelease, error) {
	query := fmt.Sprintf(`SELECT release, size, provider FROM %s ORDER BY rowid DESC`, constants.FailedTable)

	var failed []*domain.FailedRelease
	err := db.Select(&failed, query)
	return failed, err
}
