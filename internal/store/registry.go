package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
)

// Registry owns every connection opened under one data directory and hands
// out shared handles by file name.
type Registry struct {
	mu    sync.Mutex
	dir   string
	conns map[string]*DB
}

func NewRegistry(dir string) *Registry {
	return &Registry{
		dir:   dir,
		conns: make(map[string]*DB),
	}
}

// Path resolves a database name relative to the registry directory.
// Absolute paths are returned unchanged.
func (r *Registry) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(r.dir, name)
}

// Open returns a handle on the named database, opening it on first use.
// Handles for the same file share one connection pool but keep their own
// row type.
func (r *Registry) Open(name string, rowType RowType) (*DB, error) {
	path := r.Path(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.conns[path]; ok {
		if existing.RowType == rowType {
			return existing, nil
		}
		return &DB{DB: existing.DB, Name: existing.Name, Path: existing.Path, RowType: rowType}, nil
	}

	db, err := Open(path, rowType)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	r.conns[path] = db
	return db, nil
}

// Paths lists the files of every open connection, sorted.
func (r *Registry) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	paths := make([]string, 0, len(r.conns))
	for p := range r.conns {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Flush checkpoints every open connection.
func (r *Registry) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, db := range r.conns {
		if err := db.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) CloseAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for path, db := range r.conns {
		if err := db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close %s: %w", db.Name, err))
		}
		delete(r.conns, path)
	}
	return errors.Join(errs...)
}
