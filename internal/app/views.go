// Package app holds the use cases behind the CLI commands and the TUI.
package app

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/cristianoliveira/listkit/internal/config"
	"github.com/cristianoliveira/listkit/internal/domain"
	"github.com/cristianoliveira/listkit/internal/listview"
	"github.com/cristianoliveira/listkit/internal/logging"
	"github.com/cristianoliveira/listkit/internal/search"
	"github.com/cristianoliveira/listkit/internal/settings"
)

// RecordView is the list view of one collection.
type RecordView = listview.ListView[domain.Record, string]

// ViewOptions configures NewView.
type ViewOptions struct {
	PageSize        int
	SearchMode      string
	NaturalSort     bool
	CaseInsensitive bool
	Features        listview.Features
}

// ViewOptionsFromConfig reads view options for collection c from configuration.
func ViewOptionsFromConfig(c domain.Collection) ViewOptions {
	return ViewOptions{
		PageSize:        config.GetInt("page_size", listview.DefaultPageSize),
		SearchMode:      config.Get("search_mode", "token"),
		NaturalSort:     config.GetBool("natural_sort", true),
		CaseInsensitive: config.GetBool("case_insensitive_sort", true),
		Features:        listview.FeaturesFrom(config.FeatureLookup(string(c))),
	}
}

// NewView builds the list view of collection c backed by repo. Stored
// columns, page size and sort are applied; stored filters are left to the caller.
func NewView(repo domain.Repository, c domain.Collection, opts ViewOptions, prefs settings.ViewSettings) (*RecordView, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCollection, c)
	}
	provider, err := search.New(opts.SearchMode, search.WithCaseInsensitive(true))
	if err != nil {
		return nil, err
	}
	view, err := listview.New(listview.Config[domain.Record, string]{
		Name: string(c),
		Source: func(ctx context.Context) ([]domain.Record, error) {
			return repo.List(ctx, c)
		},
		ID:       domain.RecordID,
		Match:    search.Matcher(c, provider),
		Sorter:   domain.NewSorter(opts.NaturalSort, opts.CaseInsensitive),
		Columns:  domain.Columns(c),
		PageSize: opts.PageSize,
		Features: opts.Features,
	})
	if err != nil {
		return nil, err
	}
	if !prefs.IsEmpty() {
		if dropped := view.ApplyPreferences(prefs.Preferences()); len(dropped) > 0 {
			logging.Debug("dropped unknown stored columns", "view", c, "columns", dropped)
		}
	}
	return view, nil
}

// MatchingIDs lists the ids of c matching the query through the backend,
// so rows outside the fetched page are selectable.
func MatchingIDs(repo domain.Repository, c domain.Collection, q listview.Query) listview.IDLister[string] {
	return func(ctx context.Context, limit int) ([]string, bool, error) {
		f, err := domain.FilterFromQuery(c, q)
		if err != nil {
			return nil, false, err
		}
		return repo.ListIDs(ctx, c, f, limit)
	}
}

// NewCoordinator creates a bulk coordinator from configuration.
func NewCoordinator() *listview.Coordinator[string] {
	opts := []listview.CoordinatorOption{
		listview.WithConcurrency(config.GetInt("bulk_concurrency", listview.DefaultConcurrency)),
		listview.WithLogger(logging.With("component", "bulk")),
	}
	if retries := config.GetInt("bulk_retries", 0); retries > 0 {
		opts = append(opts, listview.WithRetry(listview.FixedRetry{
			Attempts: retries + 1,
			Delay:    config.GetDuration("bulk_retry_delay", 0),
		}))
	}
	return listview.NewCoordinator[string](opts...)
}

// DeleteOp removes one record per call.
func DeleteOp(repo domain.Repository) listview.Op[string] {
	return func(ctx context.Context, id string) error {
		return permanentIfRejected(repo.Remove(ctx, id))
	}
}

// SetStatusOp moves one record per call to status.
func SetStatusOp(repo domain.Repository, status domain.Status) listview.Op[string] {
	return func(ctx context.Context, id string) error {
		return permanentIfRejected(repo.SetStatus(ctx, id, status))
	}
}

// permanentIfRejected marks errors that a retry cannot fix.
func permanentIfRejected(err error) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, domain.ErrReferenced) ||
		stderrors.Is(err, domain.ErrRecordNotFound) ||
		stderrors.Is(err, domain.ErrInvalidStatus) {
		return listview.Permanent(err)
	}
	return err
}
