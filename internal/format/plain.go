package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/listkit/internal/domain"
)

// TSVFormatter writes visible columns tab separated, one row per line.
type TSVFormatter struct{}

// FormatPage formats the page as TSV.
func (f *TSVFormatter) FormatPage(p Page, writer io.Writer) error {
	for _, row := range p.Rows {
		fields := make([]string, len(p.Columns))
		for i, col := range p.Columns {
			fields[i] = escapeTSV(domain.Value(row, col.Key))
		}
		if _, err := fmt.Fprintln(writer, strings.Join(fields, "\t")); err != nil {
			return err
		}
	}
	return nil
}

func escapeTSV(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return strings.ReplaceAll(s, "\n", "\\n")
}

// IDsFormatter writes one id per line.
type IDsFormatter struct{}

// FormatPage writes the ids of the page rows.
func (f *IDsFormatter) FormatPage(p Page, writer io.Writer) error {
	for _, row := range p.Rows {
		if _, err := fmt.Fprintln(writer, row.ID); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter writes the page as a JSON document with the visible columns.
type JSONFormatter struct{}

type jsonPage struct {
	Page       int                 `json:"page"`
	TotalPages int                 `json:"totalPages"`
	Label      string              `json:"label"`
	Columns    []string            `json:"columns"`
	Rows       []map[string]string `json:"rows"`
}

// FormatPage formats the page as indented JSON.
func (f *JSONFormatter) FormatPage(p Page, writer io.Writer) error {
	out := jsonPage{
		Page:       p.Page,
		TotalPages: p.TotalPages,
		Label:      p.Label,
		Columns:    make([]string, len(p.Columns)),
		Rows:       make([]map[string]string, 0, len(p.Rows)),
	}
	for i, col := range p.Columns {
		out.Columns[i] = col.Key
	}
	for _, row := range p.Rows {
		m := make(map[string]string, len(p.Columns))
		for _, col := range p.Columns {
			m[col.Key] = domain.Value(row, col.Key)
		}
		out.Rows = append(out.Rows, m)
	}
	enc := json.NewEncoder(writer)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
