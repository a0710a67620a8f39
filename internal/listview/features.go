package listview

// Feature names used in configuration keys.
const (
	FeatureBulkDelete        = "bulk_delete"
	FeatureBulkStatus        = "bulk_status"
	FeatureSelectAllMatching = "select_all_matching"
	FeatureColumnToggle      = "column_toggle"
)

// FeatureNames lists every module flag in a stable order.
var FeatureNames = []string{
	FeatureBulkDelete,
	FeatureBulkStatus,
	FeatureSelectAllMatching,
	FeatureColumnToggle,
}

// Features is the set of optional modules enabled for one view.
// It is resolved once when the view loads.
type Features struct {
	BulkDelete        bool
	BulkStatus        bool
	SelectAllMatching bool
	ColumnToggle      bool
}

// AllFeatures returns Features with every module enabled.
func AllFeatures() Features {
	return Features{
		BulkDelete:        true,
		BulkStatus:        true,
		SelectAllMatching: true,
		ColumnToggle:      true,
	}
}

// FeaturesFrom builds Features from a lookup of flag name to enabled.
// Missing flags default to enabled.
func FeaturesFrom(enabled func(name string) (bool, bool)) Features {
	get := func(name string) bool {
		if enabled == nil {
			return true
		}
		v, ok := enabled(name)
		if !ok {
			return true
		}
		return v
	}
	return Features{
		BulkDelete:        get(FeatureBulkDelete),
		BulkStatus:        get(FeatureBulkStatus),
		SelectAllMatching: get(FeatureSelectAllMatching),
		ColumnToggle:      get(FeatureColumnToggle),
	}
}

// Enabled reports whether the named module is enabled.
func (f Features) Enabled(name string) bool {
	switch name {
	case FeatureBulkDelete:
		return f.BulkDelete
	case FeatureBulkStatus:
		return f.BulkStatus
	case FeatureSelectAllMatching:
		return f.SelectAllMatching
	case FeatureColumnToggle:
		return f.ColumnToggle
	default:
		return false
	}
}
