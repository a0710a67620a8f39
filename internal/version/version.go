// Package version reports the listkit build version.
package version

import "runtime/debug"

// Version and Commit are set with -ldflags at release time.
var (
	Version = "development"
	Commit  = "unknown"
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// String returns the version with the commit appended when known. Builds
// without ldflags fall back to the module version and vcs revision that
// `go install` records.
func String() string {
	v, c := Version, Commit
	if v == "development" || c == "unknown" {
		if info, ok := readBuildInfo(); ok {
			if v == "development" && info.Main.Version != "" && info.Main.Version != "(devel)" {
				v = info.Main.Version
			}
			if c == "unknown" {
				c = revision(info)
			}
		}
	}
	if c != "unknown" && c != "" {
		return v + "+" + c
	}
	return v
}

func revision(info *debug.BuildInfo) string {
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 7 {
				return s.Value[:7]
			}
			return s.Value
		}
	}
	return "unknown"
}
