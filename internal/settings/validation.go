package settings

import "fmt"

// Validate checks that settings values are valid.
// Column keys are not checked: a view drops the ones it no longer has.
func Validate(settings *Settings) error {
	if settings == nil {
		return fmt.Errorf("settings cannot be nil")
	}
	for name, v := range settings.Views {
		if name == "" {
			return fmt.Errorf("view name cannot be empty")
		}
		if err := validateView(v); err != nil {
			return fmt.Errorf("view %s: %w", name, err)
		}
	}
	return nil
}

func validateView(v ViewSettings) error {
	if v.PageSize < 0 {
		return fmt.Errorf("invalid pageSize value: %d", v.PageSize)
	}
	if v.SortOrder != "" && v.SortOrder != SortOrderAsc && v.SortOrder != SortOrderDesc {
		return fmt.Errorf("invalid sortOrder value: %s", v.SortOrder)
	}
	if v.SortOrder != "" && v.SortBy == "" {
		return fmt.Errorf("sortOrder %s set without sortBy", v.SortOrder)
	}
	return nil
}
