package app

import (
	"fmt"
	"io"
	"os"

	"github.com/cristianoliveira/listkit/internal/colors"
	"github.com/cristianoliveira/listkit/internal/config"
	"github.com/cristianoliveira/listkit/internal/domain"
	lkerrors "github.com/cristianoliveira/listkit/internal/errors"
	"github.com/cristianoliveira/listkit/internal/listview"
)

// ColumnsInput lists the columns to hide and show.
type ColumnsInput struct {
	Collection string
	Hide       []string
	Show       []string
}

// ColumnsUseCase manages the persisted column visibility of a collection.
type ColumnsUseCase struct {
	store SettingsStore
}

// NewColumnsUseCase creates a columns use-case.
func NewColumnsUseCase(store SettingsStore) *ColumnsUseCase {
	if store == nil {
		panic("NewColumnsUseCase: settings store dependency cannot be nil")
	}
	return &ColumnsUseCase{store: store}
}

// Show writes every column of the collection with its visibility.
func (u *ColumnsUseCase) Show(collection string, w io.Writer) error {
	_, cols, err := u.load(collection)
	if err != nil {
		return err
	}
	if w == nil {
		w = os.Stdout
	}
	for _, spec := range cols.Specs() {
		mark := "[ ]"
		if cols.IsVisible(spec.Key) {
			mark = "[x]"
		}
		note := ""
		if spec.Required {
			note = " (required)"
		}
		if _, err := fmt.Fprintf(w, "%s %-12s %s%s\n", mark, spec.Key, spec.Label, note); err != nil {
			return err
		}
	}
	return nil
}

// Update hides and shows columns, then saves the result.
func (u *ColumnsUseCase) Update(input ColumnsInput) error {
	c, cols, err := u.load(input.Collection)
	if err != nil {
		return err
	}
	if !listview.FeaturesFrom(config.FeatureLookup(string(c))).ColumnToggle {
		return lkerrors.User(fmt.Sprintf("column toggling is disabled for %s", c), listview.ErrFeatureDisabled)
	}

	for _, key := range input.Hide {
		spec, ok := cols.Spec(key)
		if !ok {
			return lkerrors.User(domain.UnknownColumn(c, key), nil)
		}
		if spec.Required {
			return lkerrors.Userf("column %q is required and cannot be hidden", key)
		}
		if cols.IsVisible(key) {
			cols.Toggle(key)
		}
	}
	for _, key := range input.Show {
		if _, ok := cols.Spec(key); !ok {
			return lkerrors.User(domain.UnknownColumn(c, key), nil)
		}
		if !cols.IsVisible(key) {
			cols.Toggle(key)
		}
	}

	if err := u.save(c, cols); err != nil {
		return err
	}
	colors.Success(fmt.Sprintf("Columns for %s updated", c))
	return nil
}

// Reset makes every column of the collection visible again.
func (u *ColumnsUseCase) Reset(collection string) error {
	c, cols, err := u.load(collection)
	if err != nil {
		return err
	}
	cols.ShowAll()
	if err := u.save(c, cols); err != nil {
		return err
	}
	colors.Success(fmt.Sprintf("Columns for %s reset", c))
	return nil
}

func (u *ColumnsUseCase) load(collection string) (domain.Collection, *listview.Columns, error) {
	c, err := domain.ParseCollection(collection)
	if err != nil {
		return "", nil, lkerrors.User(domain.UnknownCollection(collection), err)
	}
	cols := listview.NewColumns(domain.Columns(c)...)
	cols.Restore(loadViewSettings(u.store, c).Columns)
	return c, cols, nil
}

// save stores the visible keys, or nothing when every column is visible.
func (u *ColumnsUseCase) save(c domain.Collection, cols *listview.Columns) error {
	current, err := u.store.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	view := current.ForView(string(c))
	view.Columns = nil
	if visible := cols.VisibleKeys(); len(visible) < len(cols.Specs()) {
		view.Columns = visible
	}
	current.SetView(string(c), view)
	if err := u.store.SaveSettings(current); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
