// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application defaults
const (
	AppName            = "episodarr"
	DefaultPort        = "8080"
	DefaultDataDir     = "data"
	DefaultHTTPTimeout = 10 * time.Second
	DefaultBotName     = "episodarrBot"
	DefaultVersion     = "??"
)

// Database files
const (
	MainDBName   = "episodarr.db"
	CacheDBName  = "cache.db"
	FailedDBName = "failed.db"
)

// Database tables
const (
	VersionTable    = "db_version"
	ShowsTable      = "tv_shows"
	EpisodesTable   = "tv_episodes"
	LastUpdateTable = "lastUpdate"
	LastSearchTable = "lastSearch"
	FailedTable     = "failed"
	HistoryTable    = "history"
)

// Provider cache
const (
	CacheVersionColumn  = "version"
	CacheVersionType    = "NUMERIC"
	CacheVersionDefault = "-1"
)

// Episode statuses
const (
	StatusUnknown      = -1
	StatusUnaired      = 1
	StatusSnatched     = 2
	StatusWanted       = 3
	StatusDownloaded   = 4
	StatusSkipped      = 5
	StatusArchived     = 6
	StatusIgnored      = 7
	StatusSubtitled    = 10
	StatusFailed       = 11
	StatusSnatchedBest = 12
)

// Quality
const (
	QualityHDTV = 4
)

// Notification labels
const (
	LabelSnatch           = "Started Download"
	LabelDownload         = "Download Finished"
	LabelSubtitleDownload = "Subtitle Download Finished"
	LabelUpdate           = "episodarr Updated"
	LabelUpdateText       = "episodarr Updated To Commit#: "
	LabelLogin            = "episodarr new login"
	LabelLoginText        = "New login from IP: %[1]s. http://geomaplookup.net/?ip=%[1]s"
	LabelTest             = "This is a test notification from episodarr"
)

// File Permissions
const (
	DirPermissions  = 0755
	FilePermissions = 0644
)

// Characters to sanitize from filesystem paths
const InvalidPathChars = "<>:\"/\\|?*"
