package domain

import (
	"fmt"
)

// Indexer identifies the metadata source a show was added from.
type Indexer int

const (
	IndexerTVDB   Indexer = 1
	IndexerTVRage Indexer = 2
)

var indexerNames = map[Indexer]string{
	IndexerTVDB:   "theTVDB",
	IndexerTVRage: "TVRage",
}

// Name returns the display name, or "" for an unknown indexer.
func (i Indexer) Name() string {
	return indexerNames[i]
}

// Show is a tracked series
type Show struct {
	ShowID        int     `json:"show_id" db:"show_id"`
	IndexerID     int     `json:"indexer_id" db:"indexer_id"`
	Indexer       Indexer `json:"indexer" db:"indexer"`
	Name          string  `json:"name" db:"show_name"`
	Location      string  `json:"location" db:"location"`
	Lang          string  `json:"lang" db:"lang"`
	Quality       int     `json:"quality" db:"quality"`
	SeasonFolders bool    `json:"season_folders" db:"season_folders"`
	Paused        bool    `json:"paused" db:"paused"`
}

// Episode belongs to a Show through ShowID, which holds the show's IndexerID.
type Episode struct {
	EpisodeID    int     `json:"episode_id" db:"episode_id"`
	ShowID       int     `json:"showid" db:"showid"`
	IndexerID    int     `json:"indexerid" db:"indexerid"`
	Indexer      Indexer `json:"indexer" db:"indexer"`
	Name         string  `json:"name" db:"name"`
	Season       int     `json:"season" db:"season"`
	Episode      int     `json:"episode" db:"episode"`
	Description  string  `json:"description" db:"description"`
	AirDate      int     `json:"airdate" db:"airdate"`
	Status       int     `json:"status" db:"status"`
	Location     string  `json:"location" db:"location"`
	FileSize     int64   `json:"file_size" db:"file_size"`
	ReleaseName  string  `json:"release_name" db:"release_name"`
	ReleaseGroup string  `json:"release_group" db:"release_group"`
	Subtitles    string  `json:"subtitles" db:"subtitles"`
}

// PrettyName formats the episode the way notifications and logs show it,
// e.g. "Show - S04E02 - Title".
func (e *Episode) PrettyName(showName string) string {
	name := fmt.Sprintf("%s - S%02dE%02d", showName, e.Season, e.Episode)
	if e.Name != "" {
		name += " - " + e.Name
	}
	return name
}

// CacheResult is one row of a provider cache table
type CacheResult struct {
	Name         string `json:"name" db:"name"`
	Season       int    `json:"season" db:"season"`
	Episodes     string `json:"episodes" db:"episodes"`
	IndexerID    int    `json:"indexerid" db:"indexerid"`
	URL          string `json:"url" db:"url"`
	Time         int64  `json:"time" db:"time"`
	Quality      string `json:"quality" db:"quality"`
	ReleaseGroup string `json:"release_group" db:"release_group"`
	Version      int    `json:"version" db:"version"`
}

// FailedRelease records a release that failed to download or process
type FailedRelease struct {
	Release  string `json:"release" db:"release"`
	Size     int64  `json:"size" db:"size"`
	Provider string `json:"provider" db:"provider"`
}
