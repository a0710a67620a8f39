package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cristianoliveira/listkit/internal/colors"
	"github.com/cristianoliveira/listkit/internal/settings"
)

// SettingsStore loads and saves persisted view preferences.
type SettingsStore interface {
	LoadSettings() (*settings.Settings, error)
	SaveSettings(s *settings.Settings) error
}

// FileSettings is the SettingsStore backed by the settings file.
type FileSettings struct{}

// LoadSettings reads the settings file.
func (FileSettings) LoadSettings() (*settings.Settings, error) { return settings.Load() }

// SaveSettings writes the settings file.
func (FileSettings) SaveSettings(s *settings.Settings) error { return settings.Save(s) }

// SettingsUseCase coordinates settings command behavior.
type SettingsUseCase struct {
	store SettingsStore
}

// NewSettingsUseCase creates a settings use-case.
func NewSettingsUseCase(store SettingsStore) *SettingsUseCase {
	if store == nil {
		panic("NewSettingsUseCase: settings store dependency cannot be nil")
	}
	return &SettingsUseCase{store: store}
}

// ResetSettingsInput contains reset options and environment adapters.
type ResetSettingsInput struct {
	// View limits the reset to one view; empty resets every view.
	View      string
	Force     bool
	GetEnv    func(string) string
	ConfirmFn func() bool
}

// Reset drops stored preferences.
func (u *SettingsUseCase) Reset(input ResetSettingsInput) error {
	getEnv := input.GetEnv
	if getEnv == nil {
		getEnv = func(string) string { return "" }
	}

	if !input.Force && getEnv("CI") == "" && getEnv("BATS_TMPDIR") == "" {
		if input.ConfirmFn != nil && !input.ConfirmFn() {
			colors.Info("Operation cancelled")
			return nil
		}
	}

	current, err := u.store.LoadSettings()
	if err != nil {
		// A broken file is replaced by defaults.
		current = settings.DefaultSettings()
	}
	current.Reset(input.View)
	if err := u.store.SaveSettings(current); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}

	if input.View != "" {
		colors.Success("Settings for " + input.View + " reset to defaults")
		return nil
	}
	colors.Success("Settings reset to defaults")
	return nil
}

// Show writes the current settings, or one view's, as JSON.
func (u *SettingsUseCase) Show(view string, w io.Writer) error {
	current, err := u.store.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var v any = current
	if view != "" {
		v = current.ForView(view)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if w == nil {
		w = os.Stdout
	}
	_, err = fmt.Fprintln(w, strings.TrimSpace(string(data)))
	return err
}
