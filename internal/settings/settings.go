package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/cristianoliveira/listkit/internal/config"
)

// ViewSettings holds the preferences of one listing screen.
//
// JSON Schema:
//
//	{
//	  "columns": ["id", "name", "status"],
//	  "pageSize": 50,
//	  "sortBy": "name",
//	  "sortOrder": "desc",
//	  "filters": {"status": "active"}
//	}
type ViewSettings struct {
	// Columns lists the visible column keys. Empty means all columns.
	// Unknown keys are tolerated and dropped when applied to a view.
	Columns []string `json:"columns,omitempty"`

	// PageSize is the rows per page. Zero means the configured default.
	PageSize int `json:"pageSize,omitempty"`

	// SortBy is the sort column key. Empty means unsorted.
	SortBy string `json:"sortBy,omitempty"`

	// SortOrder is "asc" or "desc".
	SortOrder string `json:"sortOrder,omitempty"`

	// Filters holds the enum filters last applied to the view.
	Filters map[string]string `json:"filters,omitempty"`
}

// IsEmpty reports whether v carries no preference.
func (v ViewSettings) IsEmpty() bool {
	return len(v.Columns) == 0 && v.PageSize == 0 && v.SortBy == "" && v.SortOrder == "" && len(v.Filters) == 0
}

// Settings holds every view's preferences persisted to disk.
//
// Settings are stored at {config_dir}/settings.json.
type Settings struct {
	Version int                     `json:"version"`
	Views   map[string]ViewSettings `json:"views"`
}

// DefaultSettings returns settings with no stored view.
func DefaultSettings() *Settings {
	return &Settings{Version: CurrentVersion, Views: make(map[string]ViewSettings)}
}

// ForView returns the stored preferences of a view, or empty ones.
func (s *Settings) ForView(name string) ViewSettings {
	if s == nil || s.Views == nil {
		return ViewSettings{}
	}
	return s.Views[name]
}

// SetView stores v for a view. Empty preferences remove the entry.
func (s *Settings) SetView(name string, v ViewSettings) {
	if s.Views == nil {
		s.Views = make(map[string]ViewSettings)
	}
	if v.IsEmpty() {
		delete(s.Views, name)
		return
	}
	s.Views[name] = v
}

// Reset drops the preferences of a view, or of every view when name is empty.
func (s *Settings) Reset(name string) {
	if name == "" {
		s.Views = make(map[string]ViewSettings)
		return
	}
	delete(s.Views, name)
}

// ViewNames returns the stored view names in sorted order.
func (s *Settings) ViewNames() []string {
	names := make([]string, 0, len(s.Views))
	for name := range s.Views {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load reads settings from the config directory.
// If the settings file does not exist, returns default settings.
func Load() (*Settings, error) {
	settingsPath := Path()

	data, err := os.ReadFile(settingsPath)
	if os.IsNotExist(err) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}
	if settings.Views == nil {
		settings.Views = make(map[string]ViewSettings)
	}

	if err := Validate(settings); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return settings, nil
}

// Save writes settings to the config directory through a temp file and a
// rename so a crash never leaves a truncated file.
func Save(settings *Settings) error {
	if err := Validate(settings); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	settings.Version = CurrentVersion

	settingsPath := Path()
	if err := os.MkdirAll(filepath.Dir(settingsPath), FileModeDir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	tmp := settingsPath + ".tmp"
	if err := os.WriteFile(tmp, data, FileModeFile); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := os.Rename(tmp, settingsPath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

// Path returns the settings file location. settings_path overrides it.
func Path() string {
	if override := config.Get("settings_path", ""); override != "" {
		return override
	}
	configDir := config.Get("config_dir", "")
	if configDir == "" {
		home, _ := os.UserHomeDir()
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome == "" {
			xdgConfigHome = filepath.Join(home, ".config")
		}
		configDir = filepath.Join(xdgConfigHome, "listkit")
	}
	return filepath.Join(configDir, FileName)
}
