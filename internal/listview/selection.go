package listview

import (
	"context"
	"fmt"
)

// SelectionMode says what "select all" covers.
type SelectionMode int

const (
	// PageSelection means select-all covers the visible page only.
	PageSelection SelectionMode = iota
	// FilteredSelection means every id matching the active filter was selected
	// through the backend id listing.
	FilteredSelection
)

// String returns the string representation of the selection mode.
func (m SelectionMode) String() string {
	switch m {
	case PageSelection:
		return "page"
	case FilteredSelection:
		return "filtered"
	default:
		return fmt.Sprintf("SelectionMode(%d)", int(m))
	}
}

// DefaultSelectAllCap bounds the ids fetched by SelectFiltered.
const DefaultSelectAllCap = 5000

// IDLister lists up to limit ids matching the active filter.
// hasMore is true when more ids matched than were returned.
type IDLister[ID comparable] func(ctx context.Context, limit int) (ids []ID, hasMore bool, err error)

// Selection is an insertion-ordered set of row ids.
type Selection[ID comparable] struct {
	order []ID
	set   map[ID]struct{}
	mode  SelectionMode
}

// NewSelection creates an empty selection.
func NewSelection[ID comparable]() *Selection[ID] {
	return &Selection[ID]{set: make(map[ID]struct{})}
}

// Mode returns the current selection mode.
func (s *Selection[ID]) Mode() SelectionMode {
	return s.mode
}

// Len returns the number of selected ids.
func (s *Selection[ID]) Len() int {
	return len(s.order)
}

// Contains reports whether id is selected.
func (s *Selection[ID]) Contains(id ID) bool {
	_, ok := s.set[id]
	return ok
}

// IDs returns the selected ids in selection order.
func (s *Selection[ID]) IDs() []ID {
	ids := make([]ID, len(s.order))
	copy(ids, s.order)
	return ids
}

// ToggleOne flips the selection of a single id.
func (s *Selection[ID]) ToggleOne(id ID) {
	s.mode = PageSelection
	if s.Contains(id) {
		s.Remove(id)
		return
	}
	s.add(id)
}

// TogglePage removes every page id when all of them are selected, otherwise
// adds the missing ones. Ids outside the page are untouched.
func (s *Selection[ID]) TogglePage(pageIDs []ID) {
	s.mode = PageSelection
	if len(pageIDs) == 0 {
		return
	}
	if s.covers(pageIDs) {
		s.Remove(pageIDs...)
		return
	}
	for _, id := range pageIDs {
		s.add(id)
	}
}

// IsAllSelected reports whether every visible id is selected.
func (s *Selection[ID]) IsAllSelected(visible []ID) bool {
	return len(visible) > 0 && s.covers(visible)
}

// IsIndeterminate is true when the selection is non-empty and differs from
// the visible ids: some are missing, or ids off the page are selected too.
func (s *Selection[ID]) IsIndeterminate(visible []ID) bool {
	if s.Len() == 0 {
		return false
	}
	return !(s.Len() == len(visible) && s.covers(visible))
}

// Clear empties the selection and returns to page mode.
func (s *Selection[ID]) Clear() {
	s.order = nil
	s.set = make(map[ID]struct{})
	s.mode = PageSelection
}

// Remove deselects the given ids.
func (s *Selection[ID]) Remove(ids ...ID) {
	if len(ids) == 0 || s.Len() == 0 {
		return
	}
	drop := make(map[ID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := s.set[id]; ok {
			drop[id] = struct{}{}
			delete(s.set, id)
		}
	}
	if len(drop) == 0 {
		return
	}
	s.order = filterIDs(s.order, func(id ID) bool {
		_, gone := drop[id]
		return !gone
	})
}

// Retain keeps only ids for which keep returns true and returns the number dropped.
func (s *Selection[ID]) Retain(keep func(ID) bool) int {
	before := len(s.order)
	s.order = filterIDs(s.order, func(id ID) bool {
		if keep(id) {
			return true
		}
		delete(s.set, id)
		return false
	})
	return before - len(s.order)
}

// SelectFiltered replaces the selection with every id the lister returns.
// The returned hasMore must be surfaced to the user: the selection was truncated at limit.
func (s *Selection[ID]) SelectFiltered(ctx context.Context, list IDLister[ID], limit int) (bool, error) {
	if list == nil {
		return false, fmt.Errorf("select filtered: id lister is nil")
	}
	if limit <= 0 {
		limit = DefaultSelectAllCap
	}
	ids, hasMore, err := list(ctx, limit)
	if err != nil {
		return false, fmt.Errorf("select filtered: %w", err)
	}
	if len(ids) > limit {
		ids = ids[:limit]
		hasMore = true
	}
	s.Clear()
	for _, id := range ids {
		s.add(id)
	}
	s.mode = FilteredSelection
	return hasMore, nil
}

func (s *Selection[ID]) add(id ID) {
	if _, ok := s.set[id]; ok {
		return
	}
	s.set[id] = struct{}{}
	s.order = append(s.order, id)
}

func (s *Selection[ID]) covers(ids []ID) bool {
	for _, id := range ids {
		if !s.Contains(id) {
			return false
		}
	}
	return true
}

func filterIDs[ID comparable](ids []ID, keep func(ID) bool) []ID {
	out := ids[:0]
	for _, id := range ids {
		if keep(id) {
			out = append(out, id)
		}
	}
	return out
}
