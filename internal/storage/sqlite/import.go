package sqlite

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cristianoliveira/listkit/internal/domain"
	"github.com/google/uuid"
)

// Import file columns, tab separated. id and created_at are optional.
const (
	importFieldCollection = iota
	importFieldName
	importFieldStatus
	importFieldAmount
	importFieldQuantity
	importFieldRef
	importFieldID
	importFieldCreatedAt
	importNumFields
	importMinFields = importFieldRef + 1
)

// ImportOptions configures a TSV import.
type ImportOptions struct {
	DryRun bool
}

// ImportStats summarizes an import run.
type ImportStats struct {
	TotalRows     int
	ImportedRows  int
	SkippedRows   int
	DuplicateRows int
	Warnings      []string
}

// Import reads tab-separated records from r and upserts them in a single
// transaction. Malformed rows are skipped with a warning; a repeated id
// keeps the last row.
func (s *Storage) Import(ctx context.Context, r io.Reader, opts ImportOptions) (ImportStats, error) {
	rows, stats, err := parseImport(r)
	if err != nil {
		return stats, err
	}
	if opts.DryRun {
		stats.ImportedRows = len(rows)
		return stats, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("import: begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := formatTime(s.now())
	for _, rec := range rows {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO records (id, collection, name, status, amount, quantity, ref, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
			   collection = excluded.collection, name = excluded.name, status = excluded.status,
			   amount = excluded.amount, quantity = excluded.quantity, ref = excluded.ref,
			   updated_at = excluded.updated_at`,
			rec.ID, string(rec.Collection), rec.Name, string(rec.Status), rec.Amount, rec.Quantity, rec.Ref,
			formatTime(rec.CreatedAt), now,
		)
		if err != nil {
			return stats, fmt.Errorf("import: upsert %s: %w", rec.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return stats, fmt.Errorf("import: commit transaction: %w", err)
	}

	stats.ImportedRows = len(rows)
	s.log.Info("import finished", "imported", stats.ImportedRows, "skipped", stats.SkippedRows)
	return stats, nil
}

func parseImport(r io.Reader) ([]domain.Record, ImportStats, error) {
	stats := ImportStats{}
	var order []string
	byID := make(map[string]domain.Record)
	now := time.Now().UTC()

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		stats.TotalRows++
		rec, err := parseImportLine(line)
		if err != nil {
			stats.SkippedRows++
			stats.Warnings = append(stats.Warnings, fmt.Sprintf("line %d: %v", lineNumber, err))
			continue
		}
		if rec.CreatedAt.IsZero() {
			// keep file order for rows without a timestamp
			rec.CreatedAt = now.Add(time.Duration(lineNumber) * time.Microsecond)
		}
		if _, exists := byID[rec.ID]; exists {
			stats.DuplicateRows++
		} else {
			order = append(order, rec.ID)
		}
		byID[rec.ID] = rec
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("import: read: %w", err)
	}

	out := make([]domain.Record, 0, len(order))
	for _, id := range order {
		out = append(out, byID[id])
	}
	return out, stats, nil
}

func parseImportLine(line string) (domain.Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < importMinFields || len(fields) > importNumFields {
		return domain.Record{}, fmt.Errorf("invalid field count: got %d, need %d to %d", len(fields), importMinFields, importNumFields)
	}
	for len(fields) < importNumFields {
		fields = append(fields, "")
	}

	c, err := domain.ParseCollection(fields[importFieldCollection])
	if err != nil {
		return domain.Record{}, err
	}
	rec := domain.Record{
		ID:         strings.TrimSpace(fields[importFieldID]),
		Collection: c,
		Name:       fields[importFieldName],
		Ref:        fields[importFieldRef],
	}
	if s := fields[importFieldStatus]; s != "" {
		if rec.Status, err = domain.ParseStatus(c, s); err != nil {
			return domain.Record{}, err
		}
	} else {
		rec.Status = domain.DefaultStatus(c)
	}
	if s := fields[importFieldAmount]; s != "" {
		if rec.Amount, err = strconv.ParseFloat(s, 64); err != nil {
			return domain.Record{}, fmt.Errorf("invalid amount %q", s)
		}
	}
	if s := fields[importFieldQuantity]; s != "" {
		if rec.Quantity, err = strconv.Atoi(s); err != nil {
			return domain.Record{}, fmt.Errorf("invalid quantity %q", s)
		}
	}
	if s := fields[importFieldCreatedAt]; s != "" {
		if rec.CreatedAt, err = time.Parse(time.RFC3339, s); err != nil {
			return domain.Record{}, fmt.Errorf("invalid created_at %q", s)
		}
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if err := rec.Validate(); err != nil {
		return domain.Record{}, err
	}
	return rec, nil
}
