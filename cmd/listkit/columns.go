/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"github.com/cristianoliveira/listkit/cmd"
	"github.com/cristianoliveira/listkit/internal/app"
	"github.com/spf13/cobra"
)

const columnsCommandLong = `Show or change which columns a collection displays.

USAGE:
    listkit columns <subcommand> <collection> [column...]

SUBCOMMANDS:
    show      List every column and whether it is visible
    hide      Hide columns
    unhide    Show hidden columns again
    reset     Show every column

Required columns (id and name) cannot be hidden. The choice is stored in
the settings file and shared with the TUI.

EXAMPLES:
    listkit columns hide products created_at ref
    listkit columns show products`

// NewColumnsCmd creates the columns command with explicit dependencies.
func NewColumnsCmd(store app.SettingsStore) *cobra.Command {
	if store == nil {
		panic("NewColumnsCmd: client dependency cannot be nil")
	}
	uc := app.NewColumnsUseCase(store)

	columnsCmd := &cobra.Command{
		Use:   "columns",
		Short: "Show or change visible columns",
		Long:  columnsCommandLong,
	}

	columnsCmd.AddCommand(&cobra.Command{
		Use:   "show <collection>",
		Short: "List columns and their visibility",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return uc.Show(args[0], cmd.OutOrStdout())
		},
	})
	columnsCmd.AddCommand(&cobra.Command{
		Use:   "hide <collection> <column>...",
		Short: "Hide columns",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return uc.Update(app.ColumnsInput{Collection: args[0], Hide: args[1:]})
		},
	})
	columnsCmd.AddCommand(&cobra.Command{
		Use:   "unhide <collection> <column>...",
		Short: "Show hidden columns",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return uc.Update(app.ColumnsInput{Collection: args[0], Show: args[1:]})
		},
	})
	columnsCmd.AddCommand(&cobra.Command{
		Use:   "reset <collection>",
		Short: "Show every column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return uc.Reset(args[0])
		},
	})

	return columnsCmd
}

// columnsCmd represents the columns command
var columnsCmd = NewColumnsCmd(settingsStore)

func init() {
	cmd.RootCmd.AddCommand(columnsCmd)
}
