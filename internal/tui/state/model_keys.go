package state

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/listkit/internal/domain"
)

// handleKeyMsg processes keyboard input for the TUI.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, m.quit()
	}
	switch m.mode {
	case modeSearch:
		return m, m.handleSearchKey(msg)
	case modeColumns:
		return m, m.handleColumnsKey(msg)
	case modeStatusPick:
		return m, m.handleStatusPickKey(msg)
	case modeConfirm:
		return m, m.handleConfirmKey(msg)
	}
	return m, m.handleBrowseKey(msg)
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.view.PageRows())-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.PrevPage):
		if m.view.PrevPage() {
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.NextPage):
		if m.view.NextPage() {
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.Toggle):
		rows := m.view.PageRows()
		if m.cursor < len(rows) {
			m.view.ToggleOne(rows[m.cursor].ID)
		}
	case key.Matches(msg, m.keys.ToggleAll):
		m.view.ToggleAll()
	case key.Matches(msg, m.keys.SelectAll):
		return m.selectAllMatching()
	case key.Matches(msg, m.keys.ClearSelect):
		m.view.ClearSelection()
		m.hasMore = false
	case key.Matches(msg, m.keys.Sort):
		m.sortByColumn(msg.String())
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.search.SetValue(m.view.Query().Search)
		m.search.CursorEnd()
		return m.search.Focus()
	case key.Matches(msg, m.keys.Filter):
		m.cycleStatusFilter()
	case key.Matches(msg, m.keys.Columns):
		if !m.view.Features().ColumnToggle {
			return m.notify(m.errorHandler.Warning, "column toggling is disabled for "+string(m.collection))
		}
		m.mode = modeColumns
		m.pickerCursor = 0
	case key.Matches(msg, m.keys.Delete):
		return m.requestBulk(pendingAction{kind: actionDelete})
	case key.Matches(msg, m.keys.SetStatus):
		if !m.view.Features().BulkStatus {
			return m.notify(m.errorHandler.Warning, "status changes are disabled for "+string(m.collection))
		}
		if len(m.view.Selected()) == 0 {
			return m.notify(m.errorHandler.Info, "nothing selected")
		}
		m.mode = modeStatusPick
		m.pickerCursor = 0
	case key.Matches(msg, m.keys.Refresh):
		return m.loadRows()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

// sortByColumn acts as a click on the header of the numbered visible column.
func (m *Model) sortByColumn(digit string) {
	n, err := strconv.Atoi(digit)
	if err != nil {
		return
	}
	cols := m.view.Columns().Visible()
	if n < 1 || n > len(cols) {
		return
	}
	m.view.ToggleSort(cols[n-1].Key)
}

// cycleStatusFilter moves to the next allowed status, then back to all.
func (m *Model) cycleStatusFilter() {
	statuses := domain.Statuses(m.collection)
	current := m.view.Query().Filter(domain.FilterStatus)
	next := string(statuses[0])
	for i, s := range statuses {
		if string(s) == current {
			next = ""
			if i+1 < len(statuses) {
				next = string(statuses[i+1])
			}
			break
		}
	}
	m.view.SetFilter(domain.FilterStatus, next)
	m.cursor = 0
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.search.Blur()
		m.search.SetValue("")
		m.view.SetSearch("")
		m.mode = modeBrowse
		m.cursor = 0
		return nil
	case tea.KeyEnter:
		m.search.Blur()
		m.mode = modeBrowse
		return nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.view.SetSearch(m.search.Value())
	m.clampCursor()
	return cmd
}

func (m *Model) handleColumnsKey(msg tea.KeyMsg) tea.Cmd {
	specs := m.view.Columns().Specs()
	switch {
	case msg.Type == tea.KeyEsc || msg.String() == "c" || msg.String() == "q":
		m.mode = modeBrowse
		return SaveSettingsCmd(m.saveSettings)
	case key.Matches(msg, m.keys.Up):
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.pickerCursor < len(specs)-1 {
			m.pickerCursor++
		}
	case key.Matches(msg, m.keys.Toggle) || msg.Type == tea.KeyEnter:
		spec := specs[m.pickerCursor]
		if spec.Required {
			return m.notify(m.errorHandler.Warning, fmt.Sprintf("%s is required and cannot be hidden", spec.Label))
		}
		m.view.ToggleColumn(spec.Key)
	}
	return nil
}

func (m *Model) handleStatusPickKey(msg tea.KeyMsg) tea.Cmd {
	statuses := domain.Statuses(m.collection)
	pick := -1
	switch {
	case msg.Type == tea.KeyEsc || msg.String() == "q":
		m.mode = modeBrowse
		return nil
	case key.Matches(msg, m.keys.Up):
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.pickerCursor < len(statuses)-1 {
			m.pickerCursor++
		}
	case msg.Type == tea.KeyEnter:
		pick = m.pickerCursor
	default:
		if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(statuses) {
			pick = n - 1
		}
	}
	if pick < 0 {
		return nil
	}
	m.mode = modeBrowse
	return m.requestBulk(pendingAction{kind: actionSetStatus, status: statuses[pick]})
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyEnter, msg.String() == "y", msg.String() == "Y":
		m.mode = modeBrowse
		return m.runPending()
	case msg.Type == tea.KeyEsc, msg.String() == "n", msg.String() == "N", msg.String() == "q":
		m.mode = modeBrowse
		return m.notify(m.errorHandler.Info, "Operation cancelled")
	}
	return nil
}

// quit saves the view preferences, cancels background work and exits.
func (m *Model) quit() tea.Cmd {
	if err := m.saveSettings(); err != nil {
		m.logger.Warn("failed to save settings on exit", "error", err)
	}
	m.cancel()
	return tea.Quit
}
