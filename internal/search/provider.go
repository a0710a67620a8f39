// Package search provides a unified search abstraction for filtering records.
// It supports multiple search strategies (substring, regex, token-based) through
// a common Provider interface shared by the CLI and the TUI.
package search

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/listkit/internal/domain"
	"github.com/cristianoliveira/listkit/internal/listview"
)

// Provider defines the interface for search providers.
type Provider interface {
	// Match returns true if the record matches the search query.
	Match(r domain.Record, query string) bool

	// Name returns the provider name for identification and debugging.
	Name() string
}

// Searchable record fields.
const (
	FieldName   = "name"
	FieldID     = "id"
	FieldStatus = "status"
	FieldRef    = "ref"
)

// Options holds configuration options for creating search providers.
type Options struct {
	CaseInsensitive bool     // If true, searches ignore case sensitivity
	Fields          []string // Fields to search in (default: name and id)
}

// DefaultOptions returns the default search options.
func DefaultOptions() Options {
	return Options{
		CaseInsensitive: true,
		Fields:          []string{FieldName, FieldID},
	}
}

// Option is a function that modifies search options.
type Option func(*Options)

// WithCaseInsensitive sets case-insensitive search.
func WithCaseInsensitive(enabled bool) Option {
	return func(o *Options) {
		o.CaseInsensitive = enabled
	}
}

// WithFields sets the fields to search in.
// Valid fields: "name", "id", "status", "ref".
func WithFields(fields []string) Option {
	return func(o *Options) {
		o.Fields = fields
	}
}

// applyOptions applies the given options to the options struct.
func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// fieldValue returns the searchable text of one field.
func fieldValue(r domain.Record, field string) string {
	switch field {
	case FieldName:
		return r.Name
	case FieldID:
		return r.ID
	case FieldStatus:
		return string(r.Status)
	case FieldRef:
		return r.Ref
	default:
		return ""
	}
}

// New returns the provider registered under mode: substring, token or regex.
func New(mode string, opts ...Option) (Provider, error) {
	switch strings.ToLower(mode) {
	case "substring":
		return NewSubstringProvider(opts...), nil
	case "token", "":
		return NewTokenProvider(opts...), nil
	case "regex":
		return NewRegexProvider(opts...), nil
	default:
		return nil, fmt.Errorf("unknown search mode %q", mode)
	}
}

// Matcher builds a list view matcher for a collection: the query's status
// and ref filters are applied exactly, the search text goes through p.
// A status the collection does not allow matches nothing.
func Matcher(c domain.Collection, p Provider) listview.Matcher[domain.Record] {
	return func(r domain.Record, q listview.Query) bool {
		f, err := domain.FilterFromQuery(c, q)
		if err != nil {
			return false
		}
		return f.MatchesEnums(r) && p.Match(r, q.Search)
	}
}
