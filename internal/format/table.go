package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/listkit/internal/colors"
	"github.com/cristianoliveira/listkit/internal/domain"
)

// TableConfig holds configuration for table formatting.
type TableConfig struct {
	// ShowHeaders determines whether to show column headers.
	ShowHeaders bool

	// HeaderColor is the color to use for headers.
	HeaderColor string

	// MaxWidth caps every column; longer values are truncated with "...".
	MaxWidth int

	// RightAligned lists column keys aligned to the right.
	RightAligned map[string]bool

	// ShowFooter prints the page label under the rows.
	ShowFooter bool
}

// DefaultTableConfig returns a default table configuration.
func DefaultTableConfig() *TableConfig {
	return &TableConfig{
		ShowHeaders: true,
		HeaderColor: colors.Blue,
		MaxWidth:    36,
		RightAligned: map[string]bool{
			domain.ColumnAmount:   true,
			domain.ColumnQuantity: true,
		},
		ShowFooter: true,
	}
}

// TableFormatter writes rows as aligned columns.
type TableFormatter struct {
	config *TableConfig
}

// NewTableFormatter creates a TableFormatter with the default configuration.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{config: DefaultTableConfig()}
}

// WithConfig replaces the table configuration.
func (f *TableFormatter) WithConfig(cfg *TableConfig) *TableFormatter {
	f.config = cfg
	return f
}

// FormatPage formats the page as a table.
func (f *TableFormatter) FormatPage(p Page, writer io.Writer) error {
	cells := make([][]string, len(p.Rows))
	widths := make([]int, len(p.Columns))
	for i, col := range p.Columns {
		widths[i] = lipgloss.Width(col.Label)
	}
	for r, row := range p.Rows {
		cells[r] = make([]string, len(p.Columns))
		for i, col := range p.Columns {
			v := truncateString(domain.Value(row, col.Key), f.config.MaxWidth)
			cells[r][i] = v
			if w := lipgloss.Width(v); w > widths[i] {
				widths[i] = w
			}
		}
	}

	if f.config.ShowHeaders && len(p.Rows) > 0 {
		header := make([]string, len(p.Columns))
		separator := make([]string, len(p.Columns))
		for i, col := range p.Columns {
			header[i] = formatString(col.Label, widths[i], "left")
			separator[i] = strings.Repeat("-", widths[i])
		}
		if _, err := fmt.Fprintf(writer, "%s%s%s\n", f.config.HeaderColor, strings.Join(header, "  "), colors.Reset); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(writer, strings.Join(separator, "  ")); err != nil {
			return err
		}
	}

	for _, row := range cells {
		line := make([]string, len(row))
		for i, v := range row {
			align := "left"
			if f.config.RightAligned[p.Columns[i].Key] {
				align = "right"
			}
			line[i] = formatString(v, widths[i], align)
		}
		if _, err := fmt.Fprintln(writer, strings.TrimRight(strings.Join(line, "  "), " ")); err != nil {
			return err
		}
	}

	if f.config.ShowFooter && p.Label != "" {
		footer := p.Label
		if p.TotalPages > 1 {
			footer = fmt.Sprintf("%s (page %d/%d)", p.Label, p.Page, p.TotalPages)
		}
		if _, err := fmt.Fprintln(writer, footer); err != nil {
			return err
		}
	}
	return nil
}

// formatString pads s to width with the given alignment.
func formatString(s string, width int, alignment string) string {
	pad := width - lipgloss.Width(s)
	if pad <= 0 {
		return s
	}
	switch alignment {
	case "right":
		return strings.Repeat(" ", pad) + s
	default: // left
		return s + strings.Repeat(" ", pad)
	}
}

// truncateString truncates s to width runes, adding "..." if truncated.
func truncateString(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
