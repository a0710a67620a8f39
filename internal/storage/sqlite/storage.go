// Package sqlite provides a SQLite-backed record repository.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cristianoliveira/listkit/internal/domain"
	"github.com/cristianoliveira/listkit/internal/logging"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS records (
	id         TEXT PRIMARY KEY,
	collection TEXT NOT NULL,
	name       TEXT NOT NULL,
	status     TEXT NOT NULL,
	amount     REAL NOT NULL DEFAULT 0,
	quantity   INTEGER NOT NULL DEFAULT 0,
	ref        TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_records_collection ON records(collection, created_at, id);
CREATE INDEX IF NOT EXISTS idx_records_ref ON records(ref);
`

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const recordColumns = "id, collection, name, status, amount, quantity, ref, created_at"

var _ domain.Repository = (*Storage)(nil)

// Storage implements domain.Repository on SQLite.
type Storage struct {
	db  *sql.DB
	log logging.Logger
	now func() time.Time
}

// New creates a SQLite-backed storage at the provided path.
func New(dbPath string) (*Storage, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("sqlite storage: db path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite storage: create db directory: %w", err)
	}

	// busy_timeout is set per connection so every pooled connection waits on locks
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: open db: %w", err)
	}

	s := &Storage{
		db:  db,
		log: logging.With("component", "sqlite"),
		now: func() time.Time { return time.Now().UTC() },
	}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the underlying SQLite connection.
func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Storage) init() error {
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("sqlite storage: create schema: %w", err)
	}

	return nil
}

// Add inserts r, assigning a uuid, the collection's default status and the
// creation time when unset.
func (s *Storage) Add(ctx context.Context, r domain.Record) (domain.Record, error) {
	if err := r.Validate(); err != nil {
		return domain.Record{}, err
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = domain.DefaultStatus(r.Collection)
	}
	now := s.now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (id, collection, name, status, amount, quantity, ref, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, string(r.Collection), r.Name, string(r.Status), r.Amount, r.Quantity, r.Ref,
		formatTime(r.CreatedAt), formatTime(now),
	)
	if err != nil {
		return domain.Record{}, fmt.Errorf("sqlite storage: add record: %w", err)
	}
	s.log.Debug("record added", "id", r.ID, "collection", r.Collection)
	return r, nil
}

// Get retrieves a record by its ID.
func (s *Storage) Get(ctx context.Context, id string) (domain.Record, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Record{}, fmt.Errorf("%w: empty id", domain.ErrRecordNotFound)
	}
	row := s.db.QueryRowContext(ctx, "SELECT "+recordColumns+" FROM records WHERE id = ?", id)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Record{}, fmt.Errorf("%w: %s", domain.ErrRecordNotFound, id)
	}
	if err != nil {
		return domain.Record{}, fmt.Errorf("sqlite storage: get record: %w", err)
	}
	return r, nil
}

// List returns every record of a collection, oldest first.
func (s *Storage) List(ctx context.Context, c domain.Collection) ([]domain.Record, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCollection, c)
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM records WHERE collection = ? ORDER BY created_at, id", string(c))
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: list records: %w", err)
	}
	defer rows.Close()

	var out []domain.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite storage: scan record: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite storage: list records: %w", err)
	}
	return out, nil
}

// Count returns the number of records in a collection.
func (s *Storage) Count(ctx context.Context, c domain.Collection) (int, error) {
	if !c.IsValid() {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidCollection, c)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records WHERE collection = ?", string(c)).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite storage: count records: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (domain.Record, error) {
	var (
		r                  domain.Record
		collection, status string
		createdAt          string
	)
	if err := sc.Scan(&r.ID, &collection, &r.Name, &status, &r.Amount, &r.Quantity, &r.Ref, &createdAt); err != nil {
		return domain.Record{}, err
	}
	r.Collection = domain.Collection(collection)
	r.Status = domain.Status(status)
	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return domain.Record{}, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}
	r.CreatedAt = t
	return r, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
