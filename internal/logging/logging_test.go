package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cristianoliveira/listkit/internal/config"
	"github.com/stretchr/testify/require"
)

func setupTest(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("LISTKIT_CONFIG_PATH", "")
	config.Load()
	return tmp
}

func readEntries(t *testing.T, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestConfigFromGlobal(t *testing.T) {
	setupTest(t)
	t.Setenv("LISTKIT_LOGGING_ENABLED", "true")
	t.Setenv("LISTKIT_LOGGING_LEVEL", "warn")
	t.Setenv("LISTKIT_LOGGING_MAX_FILES", "5")
	config.Load()

	cfg := FromGlobalConfig()
	require.True(t, cfg.Enabled)
	require.Equal(t, "warn", cfg.Level)
	require.Equal(t, 5, cfg.MaxFiles)
	require.Equal(t, filepath.Base(os.Args[0]), cfg.Command)
	require.Equal(t, os.Getpid(), cfg.PID)
}

func TestLogLevelMapping(t *testing.T) {
	setupTest(t)

	t.Setenv("LISTKIT_DEBUG", "true")
	t.Setenv("LISTKIT_QUIET", "true")
	config.Load()
	require.Equal(t, "debug", FromGlobalConfig().Level)

	t.Setenv("LISTKIT_DEBUG", "")
	config.Load()
	require.Equal(t, "error", FromGlobalConfig().Level)
}

func TestLogDirUnderStateDir(t *testing.T) {
	tmp := setupTest(t)

	dir, err := LogDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmp, "listkit", "logs"), dir)
}

func TestInitDisabledIsNoop(t *testing.T) {
	l, err := Init(Config{Enabled: false})
	require.NoError(t, err)
	require.Equal(t, noopLogger{}, l)
	require.NoError(t, l.Shutdown())
}

func TestInitWritesJSONWithRedaction(t *testing.T) {
	dir := t.TempDir()
	l, err := Init(Config{Enabled: true, Level: "debug", MaxFiles: 3, Dir: dir, Command: "list", PID: 42})
	require.NoError(t, err)

	l.With("component", "bulk").Info("bulk run finished", "succeeded", 4, "api_token", "abc123")
	l.Debug("debug line")
	path := l.(*loggerImpl).filePath()
	require.NoError(t, l.Shutdown())

	require.True(t, strings.HasPrefix(filepath.Base(path), FilePrefix))
	entries := readEntries(t, path)
	require.Len(t, entries, 2)
	require.Equal(t, "bulk run finished", entries[0]["msg"])
	require.Equal(t, "bulk", entries[0]["component"])
	require.Equal(t, "[REDACTED]", entries[0]["api_token"])
	require.EqualValues(t, 42, entries[0]["pid"])
	require.Equal(t, "list", entries[0]["command"])
}

func TestLevelFiltersEntries(t *testing.T) {
	dir := t.TempDir()
	l, err := Init(Config{Enabled: true, Level: "warn", Dir: dir, Command: "tui", PID: 1})
	require.NoError(t, err)

	l.Info("dropped")
	l.Warn("kept")
	path := l.(*loggerImpl).filePath()
	require.NoError(t, l.Shutdown())

	entries := readEntries(t, path)
	require.Len(t, entries, 1)
	require.Equal(t, "kept", entries[0]["msg"])
}

func TestRotateKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		path := filepath.Join(dir, fmt.Sprintf("%s%d.log", FilePrefix, i))
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0600))
		mtime := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(path, mtime, mtime))
	}
	other := filepath.Join(dir, "other.log")
	require.NoError(t, os.WriteFile(other, nil, 0600))

	require.NoError(t, rotate(dir, 2))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.ElementsMatch(t, []string{FilePrefix + "3.log", FilePrefix + "4.log", "other.log"}, names)
}

func TestRedactorSegments(t *testing.T) {
	r := newRedactor()
	require.True(t, r.isSensitive("DB_PASSWORD"))
	require.True(t, r.isSensitive("auth-header"))
	require.False(t, r.isSensitive("keyboard"))
	require.False(t, r.isSensitive("collection"))

	pairs := []any{"secret", "x", "name", "y"}
	out := r.redact(pairs)
	require.Equal(t, []any{"secret", "[REDACTED]", "name", "y"}, out)
	require.Equal(t, "x", pairs[1], "input is not modified")
}

func TestGlobalFallsBackToNoop(t *testing.T) {
	require.NotNil(t, GetGlobal())
	require.NotPanics(t, func() { Info("nothing configured") })
	require.Equal(t, Nop(), With("k", "v"))
}

func TestInitLogfmt(t *testing.T) {
	dir := t.TempDir()
	l, err := Init(Config{Enabled: true, Level: "info", Format: FormatLogfmt, Dir: dir, Command: "delete products", PID: 7})
	require.NoError(t, err)

	l.Info("deleted", "count", 3, "db_password", "hunter2")
	path := l.(*loggerImpl).filePath()
	require.NoError(t, l.Shutdown())
	require.NoError(t, l.Shutdown(), "closing twice is harmless")

	require.Contains(t, filepath.Base(path), "delete_products")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := string(data)
	require.Contains(t, line, "msg=deleted")
	require.Contains(t, line, "count=3")
	require.Contains(t, line, "db_password=[REDACTED]")
	require.NotContains(t, line, "hunter2")
}
