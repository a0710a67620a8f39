// Package format provides output formatting for CLI list pages.
package format

import (
	"io"

	"github.com/cristianoliveira/listkit/internal/domain"
	"github.com/cristianoliveira/listkit/internal/listview"
)

// Page is one rendered list page.
type Page struct {
	Columns []listview.ColumnSpec
	Rows    []domain.Record
	// Label is the "showing X-Y of Z" line.
	Label      string
	Page       int
	TotalPages int
}

// Formatter defines the interface for output formatters.
type Formatter interface {
	// FormatPage writes the page to the writer.
	FormatPage(p Page, writer io.Writer) error
}

// FormatterType represents the type of formatter to use.
type FormatterType string

const (
	// FormatterTypeTable displays rows in aligned columns with headers.
	FormatterTypeTable FormatterType = "table"

	// FormatterTypeTSV displays rows tab separated without headers.
	FormatterTypeTSV FormatterType = "tsv"

	// FormatterTypeIDs displays one id per line, for piping into delete or set-status.
	FormatterTypeIDs FormatterType = "ids"

	// FormatterTypeJSON displays the page in JSON format.
	FormatterTypeJSON FormatterType = "json"
)

// Types returns the known formatter types.
func Types() []FormatterType {
	return []FormatterType{FormatterTypeTable, FormatterTypeTSV, FormatterTypeIDs, FormatterTypeJSON}
}

// NewFormatter creates a new formatter of the specified type.
func NewFormatter(formatterType FormatterType) Formatter {
	switch formatterType {
	case FormatterTypeTSV:
		return &TSVFormatter{}
	case FormatterTypeIDs:
		return &IDsFormatter{}
	case FormatterTypeJSON:
		return &JSONFormatter{}
	default:
		// Default to table formatter for unknown types
		return NewTableFormatter()
	}
}
