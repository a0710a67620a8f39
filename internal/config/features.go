package config

import "strings"

// featureNames mirrors the module flags understood by list views.
var featureNames = []string{"bulk_delete", "bulk_status", "select_all_matching", "column_toggle"}

// FeatureLookup returns a flag lookup for one view. A per-view key such as
// products_bulk_delete wins over the global feature_bulk_delete. The second
// return value reports whether any key was set.
func FeatureLookup(view string) func(name string) (bool, bool) {
	view = strings.ToLower(strings.TrimSpace(view))
	return func(name string) (bool, bool) {
		if view != "" {
			if b, ok := parseBool(Get(view+"_"+name, "")); ok {
				return b, true
			}
		}
		if b, ok := parseBool(Get(FeaturePrefix+name, "")); ok {
			return b, true
		}
		return false, false
	}
}
