// Package storage selects and opens the record backend.
package storage

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/listkit/internal/config"
	"github.com/cristianoliveira/listkit/internal/domain"
	"github.com/cristianoliveira/listkit/internal/storage/sqlite"
)

const (
	// BackendSQLite selects SQLite-backed storage.
	BackendSQLite = "sqlite"
	// BackendMemory selects a process-local store, used for demos and tests.
	BackendMemory = "memory"
)

// Store is a repository that holds resources until closed.
type Store interface {
	domain.Repository
	Close() error
}

var (
	_ Store = (*sqlite.Storage)(nil)
	_ Store = (*Memory)(nil)
)

// NewFromConfig creates a storage backend based on configuration.
func NewFromConfig() (Store, error) {
	return NewForBackend(config.Get("storage_backend", BackendSQLite), config.Get("db_path", ""))
}

// NewForBackend creates a storage backend for the provided backend name.
func NewForBackend(backend, dbPath string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendSQLite:
		s, err := sqlite.New(dbPath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
