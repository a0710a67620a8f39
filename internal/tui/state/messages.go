package state

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/listkit/internal/domain"
	"github.com/cristianoliveira/listkit/internal/listview"
)

// rowsLoadedMsg carries a fresh fetch of the collection.
type rowsLoadedMsg struct {
	rows []domain.Record
	err  error
}

// bulkDoneMsg is sent when a bulk action finished.
type bulkDoneMsg struct {
	action   string
	result   listview.Result[string]
	err      error
	warnings []string
}

// matchingIDsMsg carries the ids the backend matched for select-all.
type matchingIDsMsg struct {
	ids     []string
	hasMore bool
	err     error
}

// clearMessageMsg clears the status message shown at stamp.
type clearMessageMsg struct {
	stamp time.Time
}

// saveSettingsSuccessMsg is sent when settings are saved successfully.
type saveSettingsSuccessMsg struct{}

// saveSettingsFailedMsg is sent when settings save fails.
type saveSettingsFailedMsg struct {
	err error
}

// SaveSettingsCmd returns a command to save settings.
func SaveSettingsCmd(saveFn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := saveFn(); err != nil {
			return saveSettingsFailedMsg{err: err}
		}
		return saveSettingsSuccessMsg{}
	}
}
