/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/listkit/cmd"
	"github.com/cristianoliveira/listkit/internal/app"
	"github.com/cristianoliveira/listkit/internal/domain"
	lkerrors "github.com/cristianoliveira/listkit/internal/errors"
	"github.com/cristianoliveira/listkit/internal/tui/state"
	"github.com/spf13/cobra"
)

const tuiCommandLong = `Interactive list screen for a collection.

USAGE:
    listkit tui <collection>

KEY BINDINGS:
    j/k, up/down      Move the cursor
    h/l, pgup/pgdown  Previous/next page
    1-9               Sort by the numbered column (again to reverse)
    space             Select the row under the cursor
    a                 Select or clear the whole page
    A                 Select every record matching the filters
    x                 Clear the selection
    /                 Search
    f                 Cycle the status filter
    c                 Choose visible columns
    d                 Delete the selection
    s                 Change the status of the selection
    r                 Reload
    ?                 Toggle help
    q                 Save preferences and quit`

// runProgram starts the bubbletea program; canceling ctx stops it.
// Can be changed for testing.
var runProgram = func(ctx context.Context, m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// NewTUICmd creates the tui command with explicit dependencies.
func NewTUICmd(repo domain.Repository, store app.SettingsStore) *cobra.Command {
	if repo == nil || store == nil {
		panic("NewTUICmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "tui <collection>",
		Short: "Interactive list screen",
		Long:  tuiCommandLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := domain.ParseCollection(args[0])
			if err != nil {
				return lkerrors.User(domain.UnknownCollection(args[0]), err)
			}
			model, err := state.NewModel(state.Options{
				Context:    cmd.Context(),
				Collection: c,
				Repo:       repo,
				Store:      store,
			})
			if err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			if err := runProgram(cmd.Context(), model); err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return nil
		},
	}
}

// tuiCmd represents the tui command
var tuiCmd = NewTUICmd(recordStore, settingsStore)

func init() {
	cmd.RootCmd.AddCommand(tuiCmd)
}
