package hooks

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cristianoliveira/listkit/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHooks(t *testing.T, mode string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("LISTKIT_CONFIG_PATH", "")
	t.Setenv("LISTKIT_HOOKS_DIR", filepath.Join(dir, "hooks"))
	t.Setenv("LISTKIT_HOOKS_FAILURE_MODE", mode)
	config.Load()
	return filepath.Join(dir, "hooks")
}

func writeScript(t *testing.T, dir, point, name, body string, mode os.FileMode) string {
	t.Helper()
	pointDir := filepath.Join(dir, point)
	require.NoError(t, os.MkdirAll(pointDir, 0o755))
	path := filepath.Join(pointDir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), mode))
	return path
}

func TestPointNames(t *testing.T) {
	assert.Equal(t, "pre-delete", Pre("delete"))
	assert.Equal(t, "post-set-status", Post("set-status"))
}

func TestRunWithoutHooks(t *testing.T) {
	setupHooks(t, FailureAbort)
	assert.NoError(t, Run(context.Background(), Pre("delete"), nil))
}

func TestScriptsSkipsNonExecutableAndSortsByName(t *testing.T) {
	dir := setupHooks(t, FailureWarn)
	b := writeScript(t, dir, "pre-delete", "20-b.sh", "exit 0", 0o755)
	a := writeScript(t, dir, "pre-delete", "10-a.sh", "exit 0", 0o755)
	writeScript(t, dir, "pre-delete", "notes.txt", "exit 1", 0o644)

	assert.Equal(t, []string{a, b}, Scripts("pre-delete"))
}

func TestRunPassesEnvironment(t *testing.T) {
	dir := setupHooks(t, FailureAbort)
	out := filepath.Join(t.TempDir(), "env.txt")
	writeScript(t, dir, "post-delete", "dump.sh",
		`echo "$LISTKIT_HOOK_POINT $LISTKIT_COLLECTION $LISTKIT_COUNT" > `+out, 0o755)

	err := Run(context.Background(), Post("delete"), map[string]string{
		"LISTKIT_COLLECTION": "products",
		"LISTKIT_COUNT":      "3",
	})

	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "post-delete products 3", strings.TrimSpace(string(data)))
}

func TestRunFailureModes(t *testing.T) {
	tests := []struct {
		mode    string
		wantErr bool
	}{
		{FailureAbort, true},
		{FailureWarn, false},
		{FailureIgnore, false},
		{"bogus", false},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			dir := setupHooks(t, tt.mode)
			writeScript(t, dir, "pre-delete", "fail.sh", "echo nope; exit 3", 0o755)

			err := Run(context.Background(), Pre("delete"), nil)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "fail.sh")
				assert.Contains(t, err.Error(), "nope")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRunAbortStopsLaterScripts(t *testing.T) {
	dir := setupHooks(t, FailureAbort)
	marker := filepath.Join(t.TempDir(), "ran")
	writeScript(t, dir, "pre-delete", "10-fail.sh", "exit 1", 0o755)
	writeScript(t, dir, "pre-delete", "20-touch.sh", "touch "+marker, 0o755)

	require.Error(t, Run(context.Background(), Pre("delete"), nil))
	_, err := os.Stat(marker)
	assert.True(t, os.IsNotExist(err))
}

func TestRunTimeout(t *testing.T) {
	dir := setupHooks(t, FailureAbort)
	t.Setenv("LISTKIT_HOOKS_TIMEOUT", "50ms")
	config.Load()
	writeScript(t, dir, "pre-delete", "slow.sh", "exec sleep 5", 0o755)

	err := Run(context.Background(), Pre("delete"), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}
