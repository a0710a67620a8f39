package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cristianoliveira/listkit/internal/domain"
	lkerrors "github.com/cristianoliveira/listkit/internal/errors"
	"github.com/cristianoliveira/listkit/internal/listview"
	"github.com/google/uuid"
)

// Memory is an in-process Store with the same rules as the SQLite backend.
type Memory struct {
	mu      sync.RWMutex
	records map[string]domain.Record
	now     func() time.Time
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		records: make(map[string]domain.Record),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (m *Memory) Add(ctx context.Context, r domain.Record) (domain.Record, error) {
	if err := r.Validate(); err != nil {
		return domain.Record{}, err
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = domain.DefaultStatus(r.Collection)
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = m.now()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.records[r.ID]; exists {
		return domain.Record{}, fmt.Errorf("memory storage: duplicate id %s", r.ID)
	}
	m.records[r.ID] = r
	return r, nil
}

func (m *Memory) Get(ctx context.Context, id string) (domain.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.records[id]
	if !ok {
		return domain.Record{}, fmt.Errorf("%w: %s", domain.ErrRecordNotFound, id)
	}
	return r, nil
}

func (m *Memory) List(ctx context.Context, c domain.Collection) ([]domain.Record, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCollection, c)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sorted(c, func(domain.Record) bool { return true }), nil
}

func (m *Memory) ListIDs(ctx context.Context, c domain.Collection, f domain.Filter, limit int) ([]string, bool, error) {
	if !c.IsValid() {
		return nil, false, fmt.Errorf("%w: %q", domain.ErrInvalidCollection, c)
	}
	if limit <= 0 {
		limit = listview.DefaultSelectAllCap
	}
	m.mu.RLock()
	matched := m.sorted(c, f.Matches)
	m.mu.RUnlock()

	hasMore := len(matched) > limit
	if hasMore {
		matched = matched[:limit]
	}
	ids := make([]string, len(matched))
	for i, r := range matched {
		ids[i] = r.ID
	}
	return ids, hasMore, nil
}

func (m *Memory) Remove(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return notFound(id)
	}
	refs := 0
	for otherID, other := range m.records {
		if otherID != id && other.Ref == id {
			refs++
		}
	}
	if refs > 0 {
		return lkerrors.User(
			fmt.Sprintf("%q is referenced by %d other record(s)", r.Name, refs),
			fmt.Errorf("%w: %s", domain.ErrReferenced, id),
		)
	}
	delete(m.records, id)
	return nil
}

func (m *Memory) SetStatus(ctx context.Context, id string, status domain.Status) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return notFound(id)
	}
	if _, err := domain.ParseStatus(r.Collection, string(status)); err != nil {
		return lkerrors.User(fmt.Sprintf("%s cannot be %s", r.Collection, status), err)
	}
	r.Status = status
	m.records[id] = r
	return nil
}

func (m *Memory) Count(ctx context.Context, c domain.Collection) (int, error) {
	if !c.IsValid() {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidCollection, c)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, r := range m.records {
		if r.Collection == c {
			n++
		}
	}
	return n, nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

// sorted returns records of c passing keep, oldest first. Callers hold mu.
func (m *Memory) sorted(c domain.Collection, keep func(domain.Record) bool) []domain.Record {
	out := make([]domain.Record, 0)
	for _, r := range m.records {
		if r.Collection == c && keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func notFound(id string) error {
	return lkerrors.User(
		fmt.Sprintf("record %s no longer exists", id),
		fmt.Errorf("%w: %s", domain.ErrRecordNotFound, id),
	)
}
