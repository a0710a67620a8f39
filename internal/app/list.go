package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cristianoliveira/listkit/internal/domain"
	lkerrors "github.com/cristianoliveira/listkit/internal/errors"
	"github.com/cristianoliveira/listkit/internal/format"
	"github.com/cristianoliveira/listkit/internal/listview"
	"github.com/cristianoliveira/listkit/internal/logging"
	"github.com/cristianoliveira/listkit/internal/settings"
)

// ListInput represents list command inputs after flag parsing.
type ListInput struct {
	Collection string
	Search     string
	Status     string
	Ref        string
	SortBy     string
	SortOrder  string
	Page       int
	PageSize   int
	// Columns overrides the stored visible columns for this run.
	Columns []string
	Format  string
	Writer  io.Writer
}

// ListUseCase renders one page of a collection.
type ListUseCase struct {
	repo  domain.Repository
	store SettingsStore
}

// NewListUseCase creates a new list use-case.
func NewListUseCase(repo domain.Repository, store SettingsStore) *ListUseCase {
	if repo == nil {
		panic("NewListUseCase: repository dependency cannot be nil")
	}
	if store == nil {
		panic("NewListUseCase: settings store dependency cannot be nil")
	}
	return &ListUseCase{repo: repo, store: store}
}

// Execute builds the view, applies the input on top of stored preferences
// and writes the requested page.
func (u *ListUseCase) Execute(ctx context.Context, input ListInput) error {
	c, err := domain.ParseCollection(input.Collection)
	if err != nil {
		return lkerrors.User(domain.UnknownCollection(input.Collection), err)
	}
	view, err := NewView(u.repo, c, ViewOptionsFromConfig(c), loadViewSettings(u.store, c))
	if err != nil {
		return err
	}

	if input.Status != "" {
		if _, err := domain.ParseStatus(c, input.Status); err != nil {
			return lkerrors.User(fmt.Sprintf("%s cannot be filtered by status %q", c, input.Status), err)
		}
	}
	view.SetSearch(input.Search)
	view.SetFilter(domain.FilterStatus, strings.ToLower(input.Status))
	view.SetFilter(domain.FilterRef, input.Ref)

	if input.SortBy != "" {
		if err := applySort(view, input.SortBy, input.SortOrder); err != nil {
			return err
		}
	}
	if input.PageSize > 0 {
		view.SetPageSize(input.PageSize)
	}
	if len(input.Columns) > 0 {
		if unknown := view.Columns().Restore(input.Columns); len(unknown) > 0 {
			return lkerrors.Userf("unknown column(s) for %s: %s", c, strings.Join(unknown, ", "))
		}
	}

	if err := view.Refresh(ctx); err != nil {
		return err
	}
	if input.Page > 1 {
		view.SetPage(input.Page)
	}

	w := input.Writer
	if w == nil {
		w = os.Stdout
	}
	page := format.Page{
		Columns:    view.Columns().Visible(),
		Rows:       view.PageRows(),
		Label:      view.Label(),
		Page:       view.Pager().Page(),
		TotalPages: view.TotalPages(),
	}
	return format.NewFormatter(format.FormatterType(input.Format)).FormatPage(page, w)
}

func applySort(view *RecordView, key, order string) error {
	if _, ok := domain.SortFields()[key]; !ok {
		return lkerrors.Userf("cannot sort by %q", key)
	}
	dir := listview.Asc
	if order != "" {
		parsed, err := listview.ParseDirection(order)
		if err != nil {
			return lkerrors.User(fmt.Sprintf("invalid sort order %q", order), err)
		}
		dir = parsed
	}
	view.SetSort(listview.SortConfig{Key: key, Direction: dir})
	return nil
}

// loadViewSettings returns the stored preferences of c. A broken settings
// file is logged and ignored so listing keeps working.
func loadViewSettings(store SettingsStore, c domain.Collection) settings.ViewSettings {
	s, err := store.LoadSettings()
	if err != nil {
		logging.Warn("ignoring unreadable settings", "error", err)
		return settings.ViewSettings{}
	}
	return s.ForView(string(c))
}
