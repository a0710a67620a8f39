package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/cristianoliveira/listkit/internal/domain"
	lkerrors "github.com/cristianoliveira/listkit/internal/errors"
	"github.com/cristianoliveira/listkit/internal/listview"
)

// ListIDs returns up to limit ids of c matching f, oldest first. The
// second result reports whether more records matched. A limit of zero or
// less uses listview.DefaultSelectAllCap.
func (s *Storage) ListIDs(ctx context.Context, c domain.Collection, f domain.Filter, limit int) ([]string, bool, error) {
	if !c.IsValid() {
		return nil, false, fmt.Errorf("%w: %q", domain.ErrInvalidCollection, c)
	}
	if limit <= 0 {
		limit = listview.DefaultSelectAllCap
	}

	where := []string{"collection = ?"}
	args := []any{string(c)}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(f.Status))
	}
	if f.Ref != "" {
		where = append(where, "ref = ?")
		args = append(args, f.Ref)
	}
	if f.None {
		return nil, false, nil
	}
	for _, token := range f.Tokens() {
		pattern := "%" + escapeLike(token) + "%"
		where = append(where, `(lower(name) LIKE ? ESCAPE '\' OR lower(id) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}
	args = append(args, limit+1)

	query := "SELECT id FROM records WHERE " + strings.Join(where, " AND ") + " ORDER BY created_at, id LIMIT ?"
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("sqlite storage: list ids: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0, limit)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, false, fmt.Errorf("sqlite storage: scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("sqlite storage: list ids: %w", err)
	}
	if len(ids) > limit {
		return ids[:limit], true, nil
	}
	return ids, false, nil
}

// Remove deletes a record. Records referenced by another record are
// rejected with a user-facing error wrapping domain.ErrReferenced. The
// reference check and the delete run as one statement so concurrent
// removals never hold a read lock while waiting to write.
func (s *Storage) Remove(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM records WHERE id = ? AND NOT EXISTS (SELECT 1 FROM records WHERE ref = ? AND id != ?)",
		id, id, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite storage: remove record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite storage: remove record: %w", err)
	}
	if n > 0 {
		s.log.Debug("record removed", "id", id)
		return nil
	}

	var name string
	err = s.db.QueryRowContext(ctx, "SELECT name FROM records WHERE id = ?", id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(id)
	}
	if err != nil {
		return fmt.Errorf("sqlite storage: remove record: %w", err)
	}
	var refs int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records WHERE ref = ? AND id != ?", id, id).Scan(&refs); err != nil {
		return fmt.Errorf("sqlite storage: count references: %w", err)
	}
	return lkerrors.User(
		fmt.Sprintf("%q is referenced by %d other record(s)", name, refs),
		fmt.Errorf("%w: %s", domain.ErrReferenced, id),
	)
}

// SetStatus moves a record to status, validated against its collection.
func (s *Storage) SetStatus(ctx context.Context, id string, status domain.Status) error {
	r, err := s.Get(ctx, id)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return notFound(id)
	}
	if err != nil {
		return err
	}
	if _, err := domain.ParseStatus(r.Collection, string(status)); err != nil {
		return lkerrors.User(fmt.Sprintf("%s cannot be %s", r.Collection, status), err)
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE records SET status = ?, updated_at = ? WHERE id = ?",
		string(status), formatTime(s.now()), id)
	if err != nil {
		return fmt.Errorf("sqlite storage: set status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notFound(id)
	}
	return nil
}

func notFound(id string) error {
	return lkerrors.User(
		fmt.Sprintf("record %s no longer exists", id),
		fmt.Errorf("%w: %s", domain.ErrRecordNotFound, id),
	)
}

// escapeLike escapes LIKE wildcards in s.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
