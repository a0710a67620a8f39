// Package render draws the list screen: table, pickers and footer.
package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/listkit/internal/colors"
	"github.com/cristianoliveira/listkit/internal/domain"
	"github.com/cristianoliveira/listkit/internal/listview"
)

const (
	maxCellWidth   = 28
	checkboxWidth  = 3
	columnGap      = "  "
	sortAscSymbol  = "▲"
	sortDescSymbol = "▼"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ansiColorNumber(colors.Blue)))
	cursorStyle   = lipgloss.NewStyle().Background(lipgloss.Color(ansiColorNumber(colors.Blue))).Foreground(lipgloss.Color("0"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(colors.Cyan)))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleStyle    = lipgloss.NewStyle().Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(colors.Red)))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(colors.Yellow)))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(colors.Green)))
)

// TableState defines the inputs needed to render the table.
type TableState struct {
	Columns       []listview.ColumnSpec
	Rows          []domain.Record
	Cursor        int
	IsSelected    func(id string) bool
	Sort          listview.SortConfig
	AllSelected   bool
	Indeterminate bool
	Width         int
}

// Title renders the screen title.
func Title(collection string, total, matching int) string {
	label := fmt.Sprintf("%s (%d)", collection, total)
	if matching != total {
		label = fmt.Sprintf("%s (%d of %d)", collection, matching, total)
	}
	return titleStyle.Render(label)
}

// Checkbox renders the select-all checkbox of the header.
func Checkbox(all, indeterminate bool) string {
	switch {
	case indeterminate:
		return "[-]"
	case all:
		return "[x]"
	default:
		return "[ ]"
	}
}

// Table renders the header and the rows of the current page.
func Table(state TableState) string {
	widths := columnWidths(state)
	var b strings.Builder

	header := make([]string, 0, len(state.Columns)+1)
	header = append(header, Checkbox(state.AllSelected, state.Indeterminate))
	for i, col := range state.Columns {
		header = append(header, pad(headerLabel(i, col, state.Sort), widths[i]))
	}
	b.WriteString(headerStyle.Render(clip(strings.Join(header, columnGap), state.Width)))

	if len(state.Rows) == 0 {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("No records found"))
		return b.String()
	}

	for r, row := range state.Rows {
		selected := state.IsSelected != nil && state.IsSelected(row.ID)
		mark := "[ ]"
		if selected {
			mark = "[x]"
		}
		cells := make([]string, 0, len(state.Columns)+1)
		cells = append(cells, mark)
		for i, col := range state.Columns {
			cells = append(cells, pad(truncate(domain.Value(row, col.Key), widths[i]), widths[i]))
		}
		line := clip(strings.Join(cells, columnGap), state.Width)

		b.WriteString("\n")
		switch {
		case r == state.Cursor:
			b.WriteString(cursorStyle.Render(line))
		case selected:
			b.WriteString(selectedStyle.Render(line))
		default:
			b.WriteString(line)
		}
	}
	return b.String()
}

// headerLabel numbers the column for its sort hotkey and marks the sort.
func headerLabel(i int, col listview.ColumnSpec, sort listview.SortConfig) string {
	label := col.Label
	if i < 9 {
		label = fmt.Sprintf("%d:%s", i+1, label)
	}
	if sort.Key == col.Key {
		if sort.Direction == listview.Desc {
			label += " " + sortDescSymbol
		} else {
			label += " " + sortAscSymbol
		}
	}
	return label
}

func columnWidths(state TableState) []int {
	widths := make([]int, len(state.Columns))
	for i, col := range state.Columns {
		widths[i] = utf8.RuneCountInString(headerLabel(i, col, state.Sort))
		for _, row := range state.Rows {
			if w := utf8.RuneCountInString(domain.Value(row, col.Key)); w > widths[i] {
				widths[i] = w
			}
		}
		if widths[i] > maxCellWidth {
			widths[i] = maxCellWidth
		}
	}
	return widths
}

// PickerItem is one line of a picker.
type PickerItem struct {
	Label   string
	Checked bool
	Note    string
}

// Picker renders a titled list with a cursor. Checkboxes are drawn when
// checkable is true, numbers otherwise.
func Picker(title string, items []PickerItem, cursor int, checkable bool) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(title))
	for i, item := range items {
		prefix := fmt.Sprintf("%d.", i+1)
		if checkable {
			prefix = "[ ]"
			if item.Checked {
				prefix = "[x]"
			}
		}
		line := fmt.Sprintf("%s %s", prefix, item.Label)
		if item.Note != "" {
			line += " " + mutedStyle.Render(item.Note)
		}
		b.WriteString("\n")
		if i == cursor {
			b.WriteString(cursorStyle.Render(line))
		} else {
			b.WriteString(line)
		}
	}
	return b.String()
}

// Message renders a status message styled by its kind: error, warning,
// success or info.
func Message(kind, text string) string {
	if text == "" {
		return ""
	}
	switch kind {
	case "error":
		return errorStyle.Render("✗ " + text)
	case "warning":
		return warningStyle.Render("⚠ " + text)
	case "success":
		return successStyle.Render("✓ " + text)
	default:
		return text
	}
}

// FooterState defines the inputs needed to render the footer.
type FooterState struct {
	Label        string
	Page         int
	TotalPages   int
	Selected     int
	Filtered     bool
	StatusFilter string
	SearchQuery  string
	Busy         string
	Width        int
}

// Footer renders the pagination label, selection and filter summary.
func Footer(state FooterState) string {
	parts := []string{fmt.Sprintf("%s  page %d/%d", state.Label, state.Page, state.TotalPages)}
	if state.Selected > 0 {
		sel := fmt.Sprintf("%d selected", state.Selected)
		if state.Filtered {
			sel += " (all matching)"
		}
		parts = append(parts, sel)
	}
	if state.StatusFilter != "" {
		parts = append(parts, "status: "+state.StatusFilter)
	}
	if state.SearchQuery != "" {
		parts = append(parts, "search: "+state.SearchQuery)
	}
	if state.Busy != "" {
		parts = append(parts, state.Busy)
	}
	return mutedStyle.Render(clip(strings.Join(parts, "  |  "), state.Width))
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func truncate(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	if width <= 3 {
		return string([]rune(s)[:width])
	}
	return string([]rune(s)[:width-3]) + "..."
}

// clip cuts a line to the terminal width.
func clip(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	return string([]rune(s)[:width])
}

// ansiColorNumber extracts the color number from an ANSI escape sequence.
// Example: "\033[0;34m" -> "34"
func ansiColorNumber(ansi string) string {
	if len(ansi) < 2 {
		return ""
	}
	lastSemicolon := strings.LastIndex(ansi, ";")
	if lastSemicolon == -1 {
		return ""
	}
	return ansi[lastSemicolon+1 : len(ansi)-1]
}
