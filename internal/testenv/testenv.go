// Package testenv builds throwaway data directories and databases for tests
// that exercise persistence and file handling without touching real paths.
package testenv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/cesargomez89/episodarr/internal/config"
	"github.com/cesargomez89/episodarr/internal/constants"
	"github.com/cesargomez89/episodarr/internal/domain"
	"github.com/cesargomez89/episodarr/internal/filesystem"
	"github.com/cesargomez89/episodarr/internal/library"
	"github.com/cesargomez89/episodarr/internal/logger"
	"github.com/cesargomez89/episodarr/internal/store"
)

// Scratch show layout
const (
	ShowName          = "show name"
	ShowIndexerID     = 1
	Season            = 4
	Episode           = 2
	NumSeasons        = 5
	EpisodesPerSeason = 20
	EpisodeContent    = "foo bar"
	ReleaseTag        = constants.AppName
)

// EpisodeFileName is the name of the single episode file placed in the
// episode directory.
var EpisodeFileName = fmt.Sprintf("%s - s0%de0%d.mkv", ShowName, Season, Episode)

// ProcessingFileName names a synthetic download waiting to be post-processed.
func ProcessingFileName(show string, season, episode int) string {
	return fmt.Sprintf("%s.S0%dE%d.HDTV.x264.[%s].mkv", filesystem.Sanitize(show), season, episode, ReleaseTag)
}

type Fixture struct {
	Dir           string
	LogDir        string
	CacheDir      string
	EpisodeDir    string
	EpisodePath   string
	ShowDir       string
	ProcessingDir string

	Shows    *library.ShowList
	Registry *store.Registry

	Main   *store.DB
	Cache  *store.DB
	Failed *store.DB

	logger    *logger.Logger
	keepFiles bool
	ownsDir   bool
}

type Option func(*Fixture)

// WithKeepFiles leaves databases and scratch directories on disk after
// Teardown, for inspecting a failed run.
func WithKeepFiles() Option {
	return func(f *Fixture) {
		f.keepFiles = true
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(f *Fixture) {
		if l != nil {
			f.logger = l
		}
	}
}

// New lays out a fixture under dir. An empty dir selects a fresh directory
// under the OS temp dir, which Teardown then removes as well.
func New(dir string, opts ...Option) *Fixture {
	owns := false
	if dir == "" {
		dir = filepath.Join(os.TempDir(), constants.AppName+"-"+uuid.NewString())
		owns = true
	}

	episodeDir := filepath.Join(dir, ShowName)
	f := &Fixture{
		Dir:           dir,
		LogDir:        filepath.Join(dir, "Logs"),
		CacheDir:      filepath.Join(dir, "cache"),
		EpisodeDir:    episodeDir,
		EpisodePath:   filepath.Join(episodeDir, EpisodeFileName),
		ShowDir:       filepath.Join(dir, ShowName+" final"),
		ProcessingDir: filepath.Join(dir, "Downloads"),
		Shows:         library.NewShowList(),
		Registry:      store.NewRegistry(dir),
		logger:        logger.Discard(),
		ownsDir:       owns,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = f.logger.WithComponent("testenv")
	return f
}

// Config returns application settings that point every data path at the
// fixture with all notifications switched off.
func (f *Fixture) Config() *config.Config {
	return &config.Config{
		Port:      constants.DefaultPort,
		DataDir:   f.Dir,
		LogLevel:  "debug",
		LogFormat: "text",
		Mattermost: config.Mattermost{
			Username: constants.DefaultBotName,
		},
	}
}

// Setup creates the scratch directories and episode file, brings all three
// databases to their latest schema and runs the main sanity check.
func (f *Fixture) Setup(ctx context.Context) error {
	f.Shows.Reset()

	for _, dir := range []string{f.Dir, f.LogDir, f.CacheDir, f.EpisodeDir, f.ShowDir} {
		if err := filesystem.EnsureDir(dir); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := filesystem.WriteFile(f.EpisodePath, []byte(EpisodeContent)); err != nil {
		return fmt.Errorf("unable to set up test episode: %w", err)
	}

	var err error
	if f.Main, err = f.Registry.Open(constants.MainDBName, store.RowTuple); err != nil {
		return err
	}
	if f.Cache, err = f.Registry.Open(constants.CacheDBName, store.RowTuple); err != nil {
		return err
	}
	if f.Failed, err = f.Registry.Open(constants.FailedDBName, store.RowTuple); err != nil {
		return err
	}

	if err := store.Upgrade(ctx, f.Main, store.MainSchema); err != nil {
		return err
	}
	fixed, err := store.SanityCheck(ctx, f.Main, store.MainSanityCheck)
	if err != nil {
		return err
	}
	f.logger.Debug("Main database checked", "fixed", fixed)

	if err := store.Upgrade(ctx, f.Cache, store.CacheSchema); err != nil {
		return err
	}
	if err := store.Upgrade(ctx, f.Failed, store.FailedSchema); err != nil {
		return err
	}

	f.logger.Debug("Fixture ready", "dir", f.Dir)
	return nil
}

// SetupProcessingDir fills the downloads directory with episodes 11 through
// 19 of seasons 1 through 4.
func (f *Fixture) SetupProcessingDir() error {
	if err := filesystem.EnsureDir(f.ProcessingDir); err != nil {
		return err
	}
	for season := 1; season < NumSeasons; season++ {
		for episode := 11; episode < EpisodesPerSeason; episode++ {
			path := filepath.Join(f.ProcessingDir, ProcessingFileName(ShowName, season, episode))
			if err := filesystem.WriteFile(path, []byte(EpisodeContent)); err != nil {
				return err
			}
		}
	}
	return nil
}

// SeedShow stores the scratch show with seasons 1 through 4, each holding
// episodes 1 through 19, and makes it the only tracked show. The episode at
// Season/Episode points at EpisodePath.
func (f *Fixture) SeedShow(ctx context.Context) (*domain.Show, error) {
	if f.Main == nil {
		return nil, errors.New("fixture is not set up")
	}

	show := &domain.Show{
		IndexerID: ShowIndexerID,
		Indexer:   domain.IndexerTVDB,
		Name:      ShowName,
		Location:  f.EpisodeDir,
		Lang:      "en",
		Quality:   constants.QualityHDTV,
	}
	if err := f.Main.SaveShow(show); err != nil {
		return nil, fmt.Errorf("failed to save show: %w", err)
	}

	for season := 1; season < NumSeasons; season++ {
		for episode := 1; episode < EpisodesPerSeason; episode++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			ep := &domain.Episode{
				ShowID:  show.IndexerID,
				Indexer: show.Indexer,
				Season:  season,
				Episode: episode,
				AirDate: 1,
				Status:  constants.StatusSkipped,
			}
			if season == Season && episode == Episode {
				ep.Location = f.EpisodePath
				ep.FileSize = int64(len(EpisodeContent))
				ep.Status = constants.StatusDownloaded
				f.logger.WithEpisode(show.IndexerID, season, episode).Debug("Attaching episode file", "path", ep.Location)
			}
			if err := f.Main.SaveEpisode(ep); err != nil {
				return nil, fmt.Errorf("failed to save S%02dE%02d: %w", season, episode, err)
			}
		}
	}

	f.Shows.Set(show)
	return show, nil
}

// CacheDB returns a mapping-row handle on the cache database with the
// provider's result table and the lastUpdate table in place.
func (f *Fixture) CacheDB(provider string) (*store.DB, error) {
	db, err := f.Registry.Open(constants.CacheDBName, store.RowDict)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureProviderTable(provider); err != nil {
		return nil, err
	}
	if err := db.EnsureLastUpdateTable(); err != nil {
		return nil, err
	}
	f.logger.WithProvider(provider).Debug("Provider cache ready")
	return db, nil
}

// Teardown forgets tracked shows, flushes and closes every connection and,
// unless the fixture keeps its files, deletes the databases and scratch
// directories. A failed flush or close does not stop the rest of the cleanup;
// all errors are returned together.
func (f *Fixture) Teardown() error {
	f.Shows.Reset()

	var errs []error
	if err := f.Registry.Flush(); err != nil {
		errs = append(errs, err)
	}
	paths := f.Registry.Paths()
	if err := f.Registry.CloseAll(); err != nil {
		errs = append(errs, err)
	}
	f.Main, f.Cache, f.Failed = nil, nil, nil

	if f.keepFiles {
		f.logger.Debug("Keeping fixture files", "dir", f.Dir)
		return errors.Join(errs...)
	}

	for _, p := range paths {
		if err := filesystem.RemoveAll(p, p+"-wal", p+"-shm"); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", p, err))
		}
	}
	if err := filesystem.RemoveAll(f.EpisodeDir, f.ShowDir, f.ProcessingDir, f.LogDir, f.CacheDir); err != nil {
		errs = append(errs, err)
	}
	if f.ownsDir {
		if err := filesystem.RemoveAll(f.Dir); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Start sets up a fixture in a per-test directory and tears it down when
// the test finishes.
func Start(tb testing.TB, opts ...Option) *Fixture {
	tb.Helper()
	f := New(tb.TempDir(), opts...)
	if err := f.Setup(context.Background()); err != nil {
		tb.Fatalf("testenv setup failed: %v", err)
	}
	tb.Cleanup(func() {
		if err := f.Teardown(); err != nil {
			tb.Errorf("testenv teardown failed: %v", err)
		}
	})
	return f
}
