// Package library holds the in-memory set of shows being tracked.
package library

import (
	"sync"

	"github.com/cesargomez89/episodarr/internal/domain"
)

// ShowList is safe for concurrent use.
type ShowList struct {
	mu    sync.RWMutex
	shows []*domain.Show
}

// NewShowList returns an empty list.
func NewShowList() *ShowList {
	return &ShowList{}
}

// Reset forgets every tracked show.
func (l *ShowList) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.shows = nil
}

// Set replaces the tracked shows.
func (l *ShowList) Set(shows ...*domain.Show) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.shows = append([]*domain.Show(nil), shows...)
}

// Add tracks show unless a show with the same indexer id is already present.
func (l *ShowList) Add(show *domain.Show) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.shows {
		if s.IndexerID == show.IndexerID {
			return false
		}
	}
	l.shows = append(l.shows, show)
	return true
}

func (l *ShowList) All() []*domain.Show {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]*domain.Show(nil), l.shows...)
}

func (l *ShowList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.shows)
}

// Find returns nil when no tracked show has the indexer id.
func (l *ShowList) Find(indexerID int) *domain.Show {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, s := range l.shows {
		if s.IndexerID == indexerID {
			return s
		}
	}
	return nil
}
