package settings

import (
	"maps"

	"github.com/cristianoliveira/listkit/internal/listview"
)

// Preferences converts stored settings into list view preferences.
func (v ViewSettings) Preferences() listview.Preferences {
	p := listview.Preferences{
		Columns:  append([]string(nil), v.Columns...),
		PageSize: v.PageSize,
	}
	if v.SortBy != "" {
		dir, err := listview.ParseDirection(v.SortOrder)
		if err != nil {
			dir = listview.Asc
		}
		p.Sort = listview.SortConfig{Key: v.SortBy, Direction: dir}
	}
	return p
}

// FromPreferences captures a view's preferences and filters for storage.
func FromPreferences(p listview.Preferences, filters map[string]string) ViewSettings {
	v := ViewSettings{
		Columns:  append([]string(nil), p.Columns...),
		PageSize: p.PageSize,
	}
	if p.Sort.Key != "" {
		v.SortBy = p.Sort.Key
		v.SortOrder = p.Sort.Direction.String()
	}
	if len(filters) > 0 {
		v.Filters = maps.Clone(filters)
	}
	return v
}
