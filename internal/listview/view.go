package listview

import (
	"context"
	"errors"
	"fmt"
	"maps"
)

// ErrFeatureDisabled is returned when an operation needs a module the view disabled.
var ErrFeatureDisabled = errors.New("feature disabled for this view")

// Source fetches the raw collection of a view from the backend.
type Source[R any] func(ctx context.Context) ([]R, error)

// Query holds the page-local filters of a view.
type Query struct {
	Search  string
	Filters map[string]string
}

// Filter returns the value of the named enum filter.
func (q Query) Filter(key string) string {
	return q.Filters[key]
}

// IsEmpty reports whether no filter is active.
func (q Query) IsEmpty() bool {
	return q.Search == "" && len(q.Filters) == 0
}

func (q Query) clone() Query {
	return Query{Search: q.Search, Filters: maps.Clone(q.Filters)}
}

// Matcher reports whether row passes the query.
type Matcher[R any] func(row R, q Query) bool

// Config wires a ListView to its collaborators.
type Config[R any, ID comparable] struct {
	Name     string
	Source   Source[R]
	ID       func(R) ID
	Match    Matcher[R]
	Sorter   *Sorter[R]
	Columns  []ColumnSpec
	PageSize int
	Sort     SortConfig
	Features Features
}

// Preferences is the persisted part of a view's state.
type Preferences struct {
	Columns  []string
	PageSize int
	Sort     SortConfig
}

// ListView is the state of one listing screen: fetched rows, filters, sort,
// pagination, selection and column visibility.
// It is not safe for concurrent use.
type ListView[R any, ID comparable] struct {
	name      string
	source    Source[R]
	id        func(R) ID
	match     Matcher[R]
	sorter    *Sorter[R]
	sort      *SortState
	pager     *Pager
	selection *Selection[ID]
	columns   *Columns
	features  Features

	query  Query
	rows   []R
	sorted []R
}

// New creates a ListView. Source and ID are required.
func New[R any, ID comparable](cfg Config[R, ID]) (*ListView[R, ID], error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("list view %q: source is nil", cfg.Name)
	}
	if cfg.ID == nil {
		return nil, fmt.Errorf("list view %q: id accessor is nil", cfg.Name)
	}
	v := &ListView[R, ID]{
		name:      cfg.Name,
		source:    cfg.Source,
		id:        cfg.ID,
		match:     cfg.Match,
		sorter:    cfg.Sorter,
		sort:      NewSortState(cfg.Sort),
		pager:     NewPager(cfg.PageSize),
		selection: NewSelection[ID](),
		columns:   NewColumns(cfg.Columns...),
		features:  cfg.Features,
	}
	return v, nil
}

// Name returns the view name.
func (v *ListView[R, ID]) Name() string { return v.name }

// Features returns the modules enabled for the view.
func (v *ListView[R, ID]) Features() Features { return v.features }

// Columns returns the column visibility state.
func (v *ListView[R, ID]) Columns() *Columns { return v.columns }

// Pager returns the pagination state.
func (v *ListView[R, ID]) Pager() *Pager { return v.pager }

// SortConfig returns the active sort.
func (v *ListView[R, ID]) SortConfig() SortConfig { return v.sort.Config() }

// SelectionMode returns the active selection mode.
func (v *ListView[R, ID]) SelectionMode() SelectionMode { return v.selection.Mode() }

// Query returns a copy of the active filters.
func (v *ListView[R, ID]) Query() Query { return v.query.clone() }

// Refresh fetches the collection again and recomputes the view.
func (v *ListView[R, ID]) Refresh(ctx context.Context) error {
	rows, err := v.source(ctx)
	if err != nil {
		return fmt.Errorf("list view %q: fetch: %w", v.name, err)
	}
	v.Load(rows)
	return nil
}

// Load replaces the backing collection with rows already fetched.
func (v *ListView[R, ID]) Load(rows []R) {
	v.rows = rows
	v.recompute()
	v.pruneSelection()
	v.pager.SetPage(v.pager.Page(), len(v.sorted))
}

// SetSearch sets the text filter and resets to page 1.
func (v *ListView[R, ID]) SetSearch(search string) {
	if v.query.Search == search {
		return
	}
	v.query.Search = search
	v.filtersChanged()
}

// SetFilter sets one enum filter; an empty value removes it. Resets to page 1.
func (v *ListView[R, ID]) SetFilter(key, value string) {
	if v.query.Filters[key] == value {
		return
	}
	if value == "" {
		delete(v.query.Filters, key)
	} else {
		if v.query.Filters == nil {
			v.query.Filters = make(map[string]string)
		}
		v.query.Filters[key] = value
	}
	v.filtersChanged()
}

// ClearFilters removes the search and every enum filter.
func (v *ListView[R, ID]) ClearFilters() {
	if v.query.IsEmpty() {
		return
	}
	v.query = Query{}
	v.filtersChanged()
}

func (v *ListView[R, ID]) filtersChanged() {
	v.recompute()
	v.pager.Reset()
}

func (v *ListView[R, ID]) recompute() {
	filtered := make([]R, 0, len(v.rows))
	for _, row := range v.rows {
		if v.match == nil || v.match(row, v.query) {
			filtered = append(filtered, row)
		}
	}
	v.sorted = v.sorter.Sort(filtered, v.sort.Config())
}

// Len returns the size of the backing collection.
func (v *ListView[R, ID]) Len() int { return len(v.rows) }

// Count returns the number of rows passing the filters.
func (v *ListView[R, ID]) Count() int { return len(v.sorted) }

// Sorted returns the filtered rows in sort order.
func (v *ListView[R, ID]) Sorted() []R {
	out := make([]R, len(v.sorted))
	copy(out, v.sorted)
	return out
}

// PageRows returns the rows of the current page.
func (v *ListView[R, ID]) PageRows() []R {
	return Paginate(v.sorted, v.pager.Window())
}

// PageIDs returns the ids of the current page.
func (v *ListView[R, ID]) PageIDs() []ID {
	rows := v.PageRows()
	ids := make([]ID, len(rows))
	for i, row := range rows {
		ids[i] = v.id(row)
	}
	return ids
}

// ID returns the id of row.
func (v *ListView[R, ID]) ID(row R) ID { return v.id(row) }

// TotalPages returns the page count of the filtered rows.
func (v *ListView[R, ID]) TotalPages() int { return v.pager.TotalPages(len(v.sorted)) }

// Label renders the "showing X-Y of Z" footer.
func (v *ListView[R, ID]) Label() string { return v.pager.Label(len(v.sorted)) }

// NextPage moves forward one page.
func (v *ListView[R, ID]) NextPage() bool { return v.pager.Next(len(v.sorted)) }

// PrevPage moves back one page.
func (v *ListView[R, ID]) PrevPage() bool { return v.pager.Prev() }

// SetPage moves to page, clamped to the available pages.
func (v *ListView[R, ID]) SetPage(page int) { v.pager.SetPage(page, len(v.sorted)) }

// SetPageSize changes the page size and resets to page 1.
func (v *ListView[R, ID]) SetPageSize(size int) { v.pager.SetPageSize(size) }

// ToggleSort handles a header click on key. Unknown keys are ignored.
func (v *ListView[R, ID]) ToggleSort(key string) bool {
	if key != "" && !v.sorter.Sortable(key) {
		return false
	}
	v.sort.Toggle(key)
	v.recompute()
	return true
}

// SetSort replaces the sort config.
func (v *ListView[R, ID]) SetSort(cfg SortConfig) {
	if cfg.Key == "" || !v.sorter.Sortable(cfg.Key) {
		v.sort.Clear()
	} else {
		v.sort.Set(cfg.Key, cfg.Direction)
	}
	v.recompute()
}

// ToggleColumn flips a column's visibility when column toggling is enabled.
func (v *ListView[R, ID]) ToggleColumn(key string) bool {
	if !v.features.ColumnToggle {
		return false
	}
	return v.columns.Toggle(key)
}

// ToggleOne flips the selection of id.
func (v *ListView[R, ID]) ToggleOne(id ID) { v.selection.ToggleOne(id) }

// ToggleAll selects or deselects the current page.
func (v *ListView[R, ID]) ToggleAll() { v.selection.TogglePage(v.PageIDs()) }

// ClearSelection empties the selection.
func (v *ListView[R, ID]) ClearSelection() { v.selection.Clear() }

// IsSelected reports whether id is selected.
func (v *ListView[R, ID]) IsSelected(id ID) bool { return v.selection.Contains(id) }

// IsIndeterminate reports a partial selection of the current page.
func (v *ListView[R, ID]) IsIndeterminate() bool {
	return v.selection.IsIndeterminate(v.PageIDs())
}

// IsAllSelected reports whether the whole current page is selected.
func (v *ListView[R, ID]) IsAllSelected() bool {
	return v.selection.IsAllSelected(v.PageIDs())
}

// Selected returns the selected ids after dropping those no longer in the collection.
func (v *ListView[R, ID]) Selected() []ID {
	v.pruneSelection()
	return v.selection.IDs()
}

// SelectAllMatching selects every id the backend lists for the active filter.
// hasMore reports that the cap truncated the selection.
func (v *ListView[R, ID]) SelectAllMatching(ctx context.Context, list IDLister[ID], limit int) (bool, error) {
	if !v.features.SelectAllMatching {
		return false, fmt.Errorf("list view %q: select all matching: %w", v.name, ErrFeatureDisabled)
	}
	return v.selection.SelectFiltered(ctx, list, limit)
}

// RunBulk runs op over the selection. Ids that succeeded leave the selection,
// failed ids stay selected so the action can be retried.
func (v *ListView[R, ID]) RunBulk(ctx context.Context, c *Coordinator[ID], op Op[ID]) (Result[ID], error) {
	res, err := c.Run(ctx, v.Selected(), op)
	if err != nil {
		return res, err
	}
	v.ApplyResult(res)
	return res, nil
}

// ApplyResult removes the succeeded ids of res from the selection.
func (v *ListView[R, ID]) ApplyResult(res Result[ID]) {
	v.selection.Remove(res.SucceededIDs()...)
}

// Preferences snapshots the persisted state.
func (v *ListView[R, ID]) Preferences() Preferences {
	return Preferences{
		Columns:  v.columns.VisibleKeys(),
		PageSize: v.pager.PageSize(),
		Sort:     v.sort.Config(),
	}
}

// ApplyPreferences restores persisted state and returns stored column keys
// that no longer exist.
func (v *ListView[R, ID]) ApplyPreferences(p Preferences) []string {
	dropped := v.columns.Restore(p.Columns)
	if p.PageSize > 0 {
		v.pager.SetPageSize(p.PageSize)
	}
	v.SetSort(p.Sort)
	return dropped
}

func (v *ListView[R, ID]) pruneSelection() {
	if v.selection.Len() == 0 {
		return
	}
	present := make(map[ID]struct{}, len(v.rows))
	for _, row := range v.rows {
		present[v.id(row)] = struct{}{}
	}
	v.selection.Retain(func(id ID) bool {
		_, ok := present[id]
		return ok
	})
}
