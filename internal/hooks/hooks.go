// Package hooks runs user scripts before and after bulk actions.
//
// Scripts live in {hooks_dir}/<point>/ and run in name order. A point is
// "pre-" or "post-" followed by the action, e.g. pre-delete. Each script
// receives LISTKIT_HOOK_POINT, LISTKIT_HOOK_TIMESTAMP, LISTKIT_BINARY and the
// variables passed by the caller.
package hooks

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cristianoliveira/listkit/internal/config"
	"github.com/cristianoliveira/listkit/internal/logging"
)

// Failure modes.
const (
	FailureAbort  = "abort"
	FailureWarn   = "warn"
	FailureIgnore = "ignore"
)

const defaultTimeout = 30 * time.Second

// Pre returns the hook point run before action.
func Pre(action string) string { return "pre-" + action }

// Post returns the hook point run after action.
func Post(action string) string { return "post-" + action }

// Dir returns the hooks directory.
func Dir() string {
	if dir := config.Get("hooks_dir", ""); dir != "" {
		return dir
	}
	return filepath.Join(config.Get("config_dir", ""), "hooks")
}

func failureMode() string {
	switch mode := config.Get("hooks_failure_mode", FailureWarn); mode {
	case FailureAbort, FailureIgnore:
		return mode
	default:
		return FailureWarn
	}
}

// Scripts returns the executable scripts of a hook point in run order.
func Scripts(point string) []string {
	dir := filepath.Join(Dir(), point)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var scripts []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		info, err := os.Stat(path)
		if err != nil || info.Mode()&0111 == 0 {
			continue
		}
		scripts = append(scripts, path)
	}
	sort.Strings(scripts)
	return scripts
}

// Run executes the scripts of a hook point. With the abort failure mode the
// first failing script stops the run and its error is returned; otherwise
// failures are logged and Run returns nil.
func Run(ctx context.Context, point string, env map[string]string) error {
	scripts := Scripts(point)
	if len(scripts) == 0 {
		return nil
	}

	mode := failureMode()
	timeout := config.GetDuration("hooks_timeout", defaultTimeout)
	vars := baseEnv(point)
	for k, v := range env {
		vars = append(vars, k+"="+v)
	}

	log := logging.With("component", "hooks", "point", point)
	log.Info("running hooks", "count", len(scripts))
	for _, script := range scripts {
		name := filepath.Base(script)
		start := time.Now()
		output, err := runScript(ctx, script, vars, timeout)
		duration := time.Since(start)
		if err == nil {
			log.Debug("hook completed", "script", name, "duration", duration.String(), "output", output)
			continue
		}
		switch mode {
		case FailureAbort:
			return fmt.Errorf("hook %s failed: %w: %s", name, err, strings.TrimSpace(output))
		case FailureWarn:
			log.Warn("hook failed", "script", name, "error", err, "output", output)
		}
	}
	return nil
}

func runScript(ctx context.Context, path string, vars []string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, path)
	cmd.Env = append(os.Environ(), vars...)
	cmd.WaitDelay = time.Second
	output, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return string(output), fmt.Errorf("timed out after %s", timeout)
	}
	return string(output), err
}

func baseEnv(point string) []string {
	vars := []string{
		"LISTKIT_HOOK_POINT=" + point,
		"LISTKIT_HOOK_TIMESTAMP=" + time.Now().Format(time.RFC3339),
	}
	if exe, err := os.Executable(); err == nil {
		vars = append(vars, "LISTKIT_BINARY="+exe)
	}
	return vars
}
