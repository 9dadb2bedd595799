package store

import (
	"database/sql"
	"fmt"

	"github.com/cesargomez89/episodarr/internal/constants"
	"github.com/cesargomez89/episodarr/internal/domain"
)

// SaveShow inserts the show or updates the row with the same indexer id.
func (db *DB) SaveShow(show *domain.Show) error {
	query := fmt.Sprintf(`INSERT INTO %s (indexer_id, indexer, show_name, location, lang, quality, season_folders, paused)
		VALUES (:indexer_id, :indexer, :show_name, :location, :lang, :quality, :season_folders, :paused)
		ON CONFLICT(indexer_id) DO UPDATE SET
			indexer = excluded.indexer,
			show_name = excluded.show_name,
			location = excluded.location,
			lang = excluded.lang,
			quality = excluded.quality,
			season_folders = excluded.season_folders,
			paused = excluded.paused`, constants.ShowsTable)

	if _, err := db.NamedExec(query, show); err != nil {
		return err
	}
	return db.Get(&show.ShowID, fmt.Sprintf(`SELECT show_id FROM %s WHERE indexer_id = ?`, constants.ShowsTable), show.IndexerID)
}

func (db *DB) GetShow(indexerID int) (*domain.Show, error) {
	query := fmt.Sprintf(`SELECT show_id, indexer_id, indexer, show_name, location, lang, quality, season_folders, paused
		FROM %s WHERE indexer_id = ?`, constants.ShowsTable)

	show := &domain.Show{}
	err := db.Get(show, query, indexerID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return show, nil
}

func (db *DB) ListShows() ([]*domain.Show, error) {
	query := fmt.Sprintf(`SELECT show_id, indexer_id, indexer, show_name, location, lang, quality, season_folders, paused
		FROM %s ORDER BY show_name`, constants.ShowsTable)

	var shows []*domain.Show
	err := db.Select(&shows, query)
	return shows, err
}

// SaveEpisode updates the episode matching show, season and number, or
// inserts it when none exists.
func (db *DB) SaveEpisode(ep *domain.Episode) error {
	update := fmt.Sprintf(`UPDATE %s SET indexerid = :indexerid, indexer = :indexer, name = :name,
		description = :description, airdate = :airdate, status = :status, location = :location,
		file_size = :file_size, release_name = :release_name, release_group = :release_group, subtitles = :subtitles
		WHERE showid = :showid AND season = :season AND episode = :episode`, constants.EpisodesTable)

	res, err := db.NamedExec(update, ep)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n > 0 {
		return nil
	}

	insert := fmt.Sprintf(`INSERT INTO %s (showid, indexerid, indexer, name, season, episode, description, airdate,
		status, location, file_size, release_name, release_group, subtitles)
		VALUES (:showid, :indexerid, :indexer, :name, :season, :episode, :description, :airdate,
		:status, :location, :file_size, :release_name, :release_group, :subtitles)`, constants.EpisodesTable)

	res, err = db.NamedExec(insert, ep)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ep.EpisodeID = int(id)
	return nil
}

const episodeColumns = `episode_id, showid, indexerid, indexer, name, season, episode, description, airdate,
	status, COALESCE(location, '') AS location, file_size, release_name, release_group, subtitles`

func (db *DB) GetEpisode(showID, season, episode int) (*domain.Episode, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE showid = ? AND season = ? AND episode = ? ORDER BY episode_id LIMIT 1`,
		episodeColumns, constants.EpisodesTable)

	ep := &domain.Episode{}
	err := db.Get(ep, query, showID, season, episode)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ep, nil
}

func (db *DB) ListEpisodes(showID int) ([]*domain.Episode, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE showid = ? ORDER BY season, episode`,
		episodeColumns, constants.EpisodesTable)

	var episodes []*domain.Episode
	err := db.Select(&episodes, query, showID)
	return episodes, err
}
