package main

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/cristianoliveira/listkit/internal/app"
	"github.com/cristianoliveira/listkit/internal/domain"
	"github.com/cristianoliveira/listkit/internal/storage"
	"github.com/cristianoliveira/listkit/internal/storage/sqlite"
)

// errImportUnsupported is returned when the configured backend cannot import.
var errImportUnsupported = errors.New("import requires the sqlite storage backend")

// lazyStore opens the configured backend on first use, after the root
// command loaded the configuration.
type lazyStore struct {
	open func() (storage.Store, error)

	once  sync.Once
	store storage.Store
	err   error
}

var _ domain.Repository = (*lazyStore)(nil)

func newLazyStore(open func() (storage.Store, error)) *lazyStore {
	return &lazyStore{open: open}
}

func (l *lazyStore) get() (storage.Store, error) {
	l.once.Do(func() {
		l.store, l.err = l.open()
	})
	return l.store, l.err
}

func (l *lazyStore) Add(ctx context.Context, r domain.Record) (domain.Record, error) {
	s, err := l.get()
	if err != nil {
		return domain.Record{}, err
	}
	return s.Add(ctx, r)
}

func (l *lazyStore) Get(ctx context.Context, id string) (domain.Record, error) {
	s, err := l.get()
	if err != nil {
		return domain.Record{}, err
	}
	return s.Get(ctx, id)
}

func (l *lazyStore) List(ctx context.Context, c domain.Collection) ([]domain.Record, error) {
	s, err := l.get()
	if err != nil {
		return nil, err
	}
	return s.List(ctx, c)
}

func (l *lazyStore) ListIDs(ctx context.Context, c domain.Collection, f domain.Filter, limit int) ([]string, bool, error) {
	s, err := l.get()
	if err != nil {
		return nil, false, err
	}
	return s.ListIDs(ctx, c, f, limit)
}

func (l *lazyStore) Remove(ctx context.Context, id string) error {
	s, err := l.get()
	if err != nil {
		return err
	}
	return s.Remove(ctx, id)
}

func (l *lazyStore) SetStatus(ctx context.Context, id string, status domain.Status) error {
	s, err := l.get()
	if err != nil {
		return err
	}
	return s.SetStatus(ctx, id, status)
}

func (l *lazyStore) Count(ctx context.Context, c domain.Collection) (int, error) {
	s, err := l.get()
	if err != nil {
		return 0, err
	}
	return s.Count(ctx, c)
}

// Import loads a TSV stream when the backend supports it.
func (l *lazyStore) Import(ctx context.Context, r io.Reader, opts sqlite.ImportOptions) (sqlite.ImportStats, error) {
	s, err := l.get()
	if err != nil {
		return sqlite.ImportStats{}, err
	}
	importer, ok := s.(app.ImportClient)
	if !ok {
		return sqlite.ImportStats{}, errImportUnsupported
	}
	return importer.Import(ctx, r, opts)
}

// Close releases the backend if it was opened.
func (l *lazyStore) Close() error {
	if l.store == nil {
		return nil
	}
	return l.store.Close()
}

var recordStore = newLazyStore(storage.NewFromConfig)
var settingsStore app.SettingsStore = app.FileSettings{}
