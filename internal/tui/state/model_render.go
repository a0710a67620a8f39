package state

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/listkit/internal/domain"
	"github.com/cristianoliveira/listkit/internal/listview"
	"github.com/cristianoliveira/listkit/internal/tui/render"
)

// View renders the TUI.
func (m *Model) View() string {
	width := m.width
	if width == 0 {
		width = defaultViewportWidth
	}

	var s strings.Builder
	s.WriteString(render.Title(string(m.collection), m.view.Len(), m.view.Count()))
	s.WriteString("\n\n")

	switch m.mode {
	case modeColumns:
		s.WriteString(m.renderColumnPicker())
	case modeStatusPick:
		s.WriteString(m.renderStatusPicker())
	default:
		rows := m.view.PageRows()
		cursor := m.cursor
		if m.mode != modeBrowse && m.mode != modeConfirm {
			cursor = -1
		}
		s.WriteString(render.Table(render.TableState{
			Columns:       m.view.Columns().Visible(),
			Rows:          rows,
			Cursor:        cursor,
			IsSelected:    m.view.IsSelected,
			Sort:          m.view.SortConfig(),
			AllSelected:   len(rows) > 0 && m.view.IsAllSelected(),
			Indeterminate: m.view.IsIndeterminate(),
			Width:         width,
		}))
	}

	s.WriteString("\n\n")
	busy := ""
	if m.busy != "" {
		busy = m.spinner.View() + " " + m.busy
	}
	s.WriteString(render.Footer(render.FooterState{
		Label:        m.view.Label(),
		Page:         m.view.Pager().Page(),
		TotalPages:   m.view.TotalPages(),
		Selected:     len(m.view.Selected()),
		Filtered:     m.view.SelectionMode() == listview.FilteredSelection,
		StatusFilter: m.view.Query().Filter(domain.FilterStatus),
		SearchQuery:  m.view.Query().Search,
		Busy:         busy,
		Width:        width,
	}))
	s.WriteString("\n")

	switch m.mode {
	case modeSearch:
		s.WriteString(m.search.View())
	case modeConfirm:
		s.WriteString(m.confirmPrompt() + " (y/N)")
	default:
		if latest, ok := m.errorHandler.GetLatest(); ok {
			s.WriteString(render.Message(latest.Type.String(), latest.Text))
			s.WriteString("\n")
		}
		s.WriteString(m.help.View(m.keys))
	}
	return s.String()
}

func (m *Model) confirmPrompt() string {
	if m.pending.kind == actionSetStatus {
		return fmt.Sprintf("Mark %d %s as %s?", m.pending.count, m.collection, m.pending.status)
	}
	return fmt.Sprintf("Delete %d %s?", m.pending.count, m.collection)
}

func (m *Model) renderColumnPicker() string {
	cols := m.view.Columns()
	specs := cols.Specs()
	items := make([]render.PickerItem, len(specs))
	for i, spec := range specs {
		items[i] = render.PickerItem{Label: spec.Label, Checked: cols.IsVisible(spec.Key)}
		if spec.Required {
			items[i].Note = "(required)"
		}
	}
	return render.Picker("Columns (space: toggle, esc: done)", items, m.pickerCursor, true)
}

func (m *Model) renderStatusPicker() string {
	statuses := domain.Statuses(m.collection)
	items := make([]render.PickerItem, len(statuses))
	for i, s := range statuses {
		items[i] = render.PickerItem{Label: s.String()}
	}
	title := fmt.Sprintf("Set status of %d %s (1-%d, esc: cancel)", len(m.view.Selected()), m.collection, len(statuses))
	return render.Picker(title, items, m.pickerCursor, false)
}
