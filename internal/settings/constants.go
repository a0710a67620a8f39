// Package settings persists per-view list preferences: visible columns,
// page size, sort and the last applied filters.
package settings

import "os"

// File permission constants
const (
	// FileModeDir is the permission for directories (rwxr-xr-x)
	FileModeDir os.FileMode = 0755
	// FileModeFile is the permission for data files (rw-r--r--)
	FileModeFile os.FileMode = 0644

	// FileName is the settings file inside config_dir.
	FileName = "settings.json"

	// CurrentVersion is written to every saved file.
	CurrentVersion = 1
)

// Sort direction constants.
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)
