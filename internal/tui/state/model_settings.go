package state

import (
	"github.com/cristianoliveira/listkit/internal/app"
	"github.com/cristianoliveira/listkit/internal/config"
	"github.com/cristianoliveira/listkit/internal/domain"
	"github.com/cristianoliveira/listkit/internal/listview"
	"github.com/cristianoliveira/listkit/internal/logging"
	"github.com/cristianoliveira/listkit/internal/settings"
)

// settingsForView returns the stored preferences of c, or none when the
// settings file cannot be read.
func settingsForView(store app.SettingsStore, c domain.Collection) settings.ViewSettings {
	s, err := store.LoadSettings()
	if err != nil {
		logging.Warn("ignoring unreadable settings", "error", err)
		return settings.ViewSettings{}
	}
	return s.ForView(string(c))
}

// currentViewSettings captures what the view persists. Defaults are left
// out so later config changes still apply.
func (m *Model) currentViewSettings() settings.ViewSettings {
	prefs := m.view.Preferences()
	if len(prefs.Columns) == len(m.view.Columns().Specs()) {
		prefs.Columns = nil
	}
	if prefs.PageSize == config.GetInt("page_size", listview.DefaultPageSize) {
		prefs.PageSize = 0
	}
	return settings.FromPreferences(prefs, m.view.Query().Filters)
}

// saveSettings writes the view preferences to the settings store.
func (m *Model) saveSettings() error {
	s, err := m.store.LoadSettings()
	if err != nil {
		s = settings.DefaultSettings()
	}
	s.SetView(string(m.collection), m.currentViewSettings())
	m.logger.Debug("saving view settings")
	return m.store.SaveSettings(s)
}

// SaveSettings is the public version of saveSettings.
func (m *Model) SaveSettings() error {
	return m.saveSettings()
}
