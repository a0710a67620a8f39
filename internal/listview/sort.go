// Package listview provides the client-side state shared by every listing screen:
// sorting, selection, pagination, column visibility and bulk actions.
package listview

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fvbommel/sortorder"
)

// Direction specifies the sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// IsValid checks if the direction is valid.
func (d Direction) IsValid() bool {
	return d == Asc || d == Desc
}

// String returns the string representation of the direction.
func (d Direction) String() string {
	return string(d)
}

// ParseDirection parses a string into a Direction.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	if !d.IsValid() {
		return "", fmt.Errorf("invalid sort direction: %s", s)
	}
	return d, nil
}

// SortConfig holds the active sort key and direction.
// An empty Key means rows keep their original order.
type SortConfig struct {
	Key       string
	Direction Direction
}

// Accessor extracts the sortable value of one field from a row.
type Accessor[R any] func(row R) any

// SorterOption configures a Sorter.
type SorterOption func(*sorterOptions)

type sorterOptions struct {
	natural         bool
	caseInsensitive bool
}

// WithNaturalStrings compares strings in natural order ("item2" < "item10").
func WithNaturalStrings(enabled bool) SorterOption {
	return func(o *sorterOptions) {
		o.natural = enabled
	}
}

// WithCaseInsensitive compares strings ignoring case.
func WithCaseInsensitive(enabled bool) SorterOption {
	return func(o *sorterOptions) {
		o.caseInsensitive = enabled
	}
}

// Sorter sorts rows using typed field accessors keyed by column key.
type Sorter[R any] struct {
	fields map[string]Accessor[R]
	opts   sorterOptions
}

// NewSorter creates a Sorter over the given accessors.
func NewSorter[R any](fields map[string]Accessor[R], opts ...SorterOption) *Sorter[R] {
	s := &Sorter[R]{fields: make(map[string]Accessor[R], len(fields))}
	for k, f := range fields {
		s.fields[k] = f
	}
	for _, opt := range opts {
		opt(&s.opts)
	}
	return s
}

// Sortable reports whether key has an accessor.
func (s *Sorter[R]) Sortable(key string) bool {
	if s == nil {
		return false
	}
	_, ok := s.fields[key]
	return ok
}

// Sort returns a new slice ordered by cfg without modifying rows.
// Rows with equal keys keep their original relative order in both directions.
func (s *Sorter[R]) Sort(rows []R, cfg SortConfig) []R {
	sorted := make([]R, len(rows))
	copy(sorted, rows)

	if s == nil || cfg.Key == "" {
		return sorted
	}
	accessor, ok := s.fields[cfg.Key]
	if !ok {
		return sorted
	}

	desc := cfg.Direction == Desc
	sort.SliceStable(sorted, func(i, j int) bool {
		c := s.compare(accessor(sorted[i]), accessor(sorted[j]))
		if desc {
			return c > 0
		}
		return c < 0
	})
	return sorted
}

// compare returns -1, 0 or 1. Values of different or unsupported types are equal.
func (s *Sorter[R]) compare(a, b any) int {
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		if !ok {
			return 0
		}
		return s.compareStrings(x, y)
	case bool:
		y, ok := b.(bool)
		if !ok || x == y {
			return 0
		}
		if !x {
			return -1
		}
		return 1
	case time.Time:
		y, ok := b.(time.Time)
		if !ok {
			return 0
		}
		return x.Compare(y)
	case time.Duration:
		y, ok := b.(time.Duration)
		if !ok {
			return 0
		}
		return compareOrdered(x, y)
	}

	if x, ok := toInt64(a); ok {
		if y, ok := toInt64(b); ok {
			return compareOrdered(x, y)
		}
	}
	if x, ok := toUint64(a); ok {
		if y, ok := toUint64(b); ok {
			return compareOrdered(x, y)
		}
	}
	if x, ok := toFloat64(a); ok {
		if y, ok := toFloat64(b); ok {
			return compareOrdered(x, y)
		}
	}
	return 0
}

func (s *Sorter[R]) compareStrings(x, y string) int {
	if s.opts.caseInsensitive {
		x, y = strings.ToLower(x), strings.ToLower(y)
	}
	if x == y {
		return 0
	}
	if s.opts.natural {
		if sortorder.NaturalLess(x, y) {
			return -1
		}
		if sortorder.NaturalLess(y, x) {
			return 1
		}
		return 0
	}
	if x < y {
		return -1
	}
	return 1
}

func compareOrdered[T int64 | uint64 | float64 | time.Duration](x, y T) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

func toUint64(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	default:
		return 0, false
	}
}

// toFloat64 also widens integers so mixed int/float columns still order.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	if i, ok := toInt64(v); ok {
		return float64(i), true
	}
	if u, ok := toUint64(v); ok {
		return float64(u), true
	}
	return 0, false
}

// SortState tracks the sort config driven by header clicks.
type SortState struct {
	cfg SortConfig
}

// NewSortState creates a SortState with an initial config.
func NewSortState(cfg SortConfig) *SortState {
	if cfg.Key != "" && !cfg.Direction.IsValid() {
		cfg.Direction = Asc
	}
	return &SortState{cfg: cfg}
}

// Config returns the current sort config.
func (s *SortState) Config() SortConfig {
	return s.cfg
}

// Toggle handles a click on the header for key.
// Clicking the active key flips the direction, a new key starts ascending.
func (s *SortState) Toggle(key string) SortConfig {
	if key == "" {
		s.Clear()
		return s.cfg
	}
	if s.cfg.Key == key {
		if s.cfg.Direction == Asc {
			s.cfg.Direction = Desc
		} else {
			s.cfg.Direction = Asc
		}
		return s.cfg
	}
	s.cfg = SortConfig{Key: key, Direction: Asc}
	return s.cfg
}

// Set replaces the sort config.
func (s *SortState) Set(key string, dir Direction) {
	if !dir.IsValid() {
		dir = Asc
	}
	s.cfg = SortConfig{Key: key, Direction: dir}
}

// Clear removes sorting.
func (s *SortState) Clear() {
	s.cfg = SortConfig{Direction: Asc}
}
