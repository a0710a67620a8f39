// Package status summarizes collections by record status.
package status

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cristianoliveira/listkit/internal/config"
	"github.com/cristianoliveira/listkit/internal/domain"
)

// Output formats.
const (
	FormatCompact   = "compact"
	FormatDetailed  = "detailed"
	FormatCountOnly = "count-only"
)

// Lister fetches the records of a collection.
type Lister interface {
	List(ctx context.Context, c domain.Collection) ([]domain.Record, error)
}

// Summary holds the record counts of one collection.
type Summary struct {
	Collection domain.Collection
	Total      int
	ByStatus   map[domain.Status]int
}

// Summarize counts the records of c per status.
func Summarize(ctx context.Context, client Lister, c domain.Collection) (Summary, error) {
	rows, err := client.List(ctx, c)
	if err != nil {
		return Summary{}, fmt.Errorf("status: list %s: %w", c, err)
	}
	s := Summary{Collection: c, Total: len(rows), ByStatus: make(map[domain.Status]int)}
	for _, r := range rows {
		s.ByStatus[r.Status]++
	}
	return s, nil
}

// Render formats a summary. An empty format uses the status_format config.
func Render(s Summary, format string) (string, error) {
	if format == "" {
		format = config.Get("status_format", FormatDetailed)
	}
	switch format {
	case FormatCompact:
		return fmt.Sprintf("%s %d", s.Collection, s.Total), nil
	case FormatDetailed:
		return formatDetailed(s), nil
	case FormatCountOnly:
		return strconv.Itoa(s.Total), nil
	default:
		return "", fmt.Errorf("unknown format: %s", format)
	}
}

// formatDetailed lists non-zero counts in the collection's status order.
func formatDetailed(s Summary) string {
	var parts []string
	for _, st := range domain.Statuses(s.Collection) {
		if n := s.ByStatus[st]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", st, n))
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%s %d", s.Collection, s.Total)
	}
	return fmt.Sprintf("%s %d: %s", s.Collection, s.Total, strings.Join(parts, ", "))
}
