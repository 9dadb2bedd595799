package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cesargomez89/episodarr/internal/constants"
	"github.com/cesargomez89/episodarr/internal/domain"
)

func setupMainDB(t *testing.T) *DB {
	t.Helper()
	db := setupTestDB(t, RowTuple)
	require.NoError(t, Upgrade(context.Background(), db, MainSchema))
	return db
}

func TestShows(t *testing.T) {
	db := setupMainDB(t)

	got, err := db.GetShow(1)
	require.NoError(t, err)
	assert.Nil(t, got)

	show := &domain.Show{IndexerID: 1, Indexer: domain.IndexerTVDB, Name: "show name", Location: "/tv/show", Lang: "en", Quality: constants.QualityHDTV}
	require.NoError(t, db.SaveShow(show))
	assert.NotZero(t, show.ShowID)

	show.Paused = true
	show.Location = "/tv/moved"
	id := show.ShowID
	require.NoError(t, db.SaveShow(show))
	assert.Equal(t, id, show.ShowID)

	got, err = db.GetShow(1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *show, *got)

	require.NoError(t, db.SaveShow(&domain.Show{IndexerID: 2, Name: "another", Lang: "en"}))
	shows, err := db.ListShows()
	require.NoError(t, err)
	require.Len(t, shows, 2)
	assert.Equal(t, "another", shows[0].Name)
}

func TestEpisodes(t *testing.T) {
	db := setupMainDB(t)

	ep := &domain.Episode{ShowID: 1, Season: 4, Episode: 2, Name: "Pilot", AirDate: 1, Status: constants.StatusWanted}
	require.NoError(t, db.SaveEpisode(ep))
	assert.NotZero(t, ep.EpisodeID)

	ep.Status = constants.StatusDownloaded
	ep.Location = "/tv/show/ep.mkv"
	ep.ReleaseGroup = "LOL"
	require.NoError(t, db.SaveEpisode(ep))

	got, err := db.GetEpisode(1, 4, 2)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *ep, *got)

	missing, err := db.GetEpisode(1, 9, 9)
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, db.SaveEpisode(&domain.Episode{ShowID: 1, Season: 1, Episode: 1, AirDate: 1}))
	episodes, err := db.ListEpisodes(1)
	require.NoError(t, err)
	require.Len(t, episodes, 2)
	assert.Equal(t, 1, episodes[0].Season)
}
