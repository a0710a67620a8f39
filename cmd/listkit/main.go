/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"os"

	"github.com/cristianoliveira/listkit/cmd"
	"github.com/cristianoliveira/listkit/internal/colors"
	lkerrors "github.com/cristianoliveira/listkit/internal/errors"
	"github.com/cristianoliveira/listkit/internal/logging"
)

func main() {
	os.Exit(run(cmd.Execute))
}

// run executes the CLI and returns the process exit code.
func run(execute func() error) int {
	defer func() {
		if err := recordStore.Close(); err != nil {
			logging.Warn("failed to close storage", "error", err)
		}
	}()
	if err := execute(); err != nil {
		logging.Error("command failed", "error", err)
		colors.Error(lkerrors.UserMessage(err, err.Error()))
		return 1
	}
	return 0
}
