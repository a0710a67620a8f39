// Package logging writes structured listkit logs to rotated files.
package logging

import (
	"os"
	"path/filepath"

	"github.com/cristianoliveira/listkit/internal/config"
)

// FilePrefix names every log file written by listkit.
const FilePrefix = "listkit_"

// Log file formats.
const (
	FormatJSON   = "json"
	FormatLogfmt = "logfmt"
)

// Config holds logging configuration.
type Config struct {
	Enabled  bool
	Level    string
	Format   string
	MaxFiles int
	// Dir overrides the log directory. Empty means LogDir().
	Dir     string
	Command string
	PID     int
}

// DefaultConfig returns logging disabled, at info level, in JSON.
func DefaultConfig() Config {
	return Config{
		Level:    "info",
		Format:   FormatJSON,
		MaxFiles: 10,
		Command:  filepath.Base(os.Args[0]),
		PID:      os.Getpid(),
	}
}

// FromGlobalConfig builds a Config from the logging_* keys. debug forces
// the debug level; otherwise quiet forces error.
func FromGlobalConfig() Config {
	cfg := DefaultConfig()
	cfg.Enabled = config.GetBool("logging_enabled", false)
	cfg.Level = config.Get("logging_level", cfg.Level)
	cfg.Format = config.Get("logging_format", cfg.Format)
	cfg.MaxFiles = config.GetInt("logging_max_files", cfg.MaxFiles)
	cfg.Dir = config.Get("logging_dir", "")
	switch {
	case config.GetBool("debug", false):
		cfg.Level = "debug"
	case config.GetBool("quiet", false):
		cfg.Level = "error"
	}
	return cfg
}

// LogDir returns {state_dir}/logs when it is writable, else a directory
// under the system temp dir.
func LogDir() (string, error) {
	if stateDir := config.Get("state_dir", ""); stateDir != "" {
		dir := filepath.Join(stateDir, "logs")
		if err := os.MkdirAll(dir, 0700); err == nil && writable(dir) {
			return dir, nil
		}
	}
	dir := filepath.Join(os.TempDir(), "listkit", "logs")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}

func writable(dir string) bool {
	f, err := os.CreateTemp(dir, ".probe")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}
