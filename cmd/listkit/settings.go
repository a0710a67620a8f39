/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"os"

	"github.com/cristianoliveira/listkit/cmd"
	"github.com/cristianoliveira/listkit/internal/app"
	"github.com/spf13/cobra"
)

const (
	settingsCommandLong = `Manage stored view preferences.

USAGE:
    listkit settings <subcommand>

SUBCOMMANDS:
    reset    Reset settings to defaults
    show     Display current settings

EXAMPLES:
    # Reset every view with confirmation
    listkit settings reset

    # Reset one view without confirmation
    listkit settings reset products --force

    # Show the preferences of one view
    listkit settings show products`
	resetCommandLong = `Reset stored view preferences to defaults.

USAGE:
    listkit settings reset [view] [OPTIONS]

OPTIONS:
    --force    Reset without confirmation
    -h, --help Show this help`
	showCommandLong = `Display stored view preferences in JSON format.

USAGE:
    listkit settings show [view]`
)

// NewSettingsCmd creates the settings command with explicit dependencies.
func NewSettingsCmd(store app.SettingsStore) *cobra.Command {
	if store == nil {
		panic("NewSettingsCmd: client dependency cannot be nil")
	}
	uc := app.NewSettingsUseCase(store)

	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage stored view preferences",
		Long:  settingsCommandLong,
	}
	settingsCmd.AddCommand(newResetCmd(uc))
	settingsCmd.AddCommand(newShowCmd(uc))
	return settingsCmd
}

// newResetCmd creates the reset subcommand.
func newResetCmd(uc *app.SettingsUseCase) *cobra.Command {
	var resetForce bool
	resetCmd := &cobra.Command{
		Use:   "reset [view]",
		Short: "Reset view preferences to defaults",
		Long:  resetCommandLong,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := app.ResetSettingsInput{Force: resetForce, GetEnv: os.Getenv}
			if len(args) == 1 {
				input.View = args[0]
			}
			confirm := confirmFrom(cmd.InOrStdin(), cmd.OutOrStdout())
			input.ConfirmFn = func() bool {
				return confirm("Are you sure you want to reset settings to defaults?")
			}
			return uc.Reset(input)
		},
	}
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "Reset without confirmation")
	return resetCmd
}

// newShowCmd creates the show subcommand.
func newShowCmd(uc *app.SettingsUseCase) *cobra.Command {
	return &cobra.Command{
		Use:   "show [view]",
		Short: "Display current settings",
		Long:  showCommandLong,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view := ""
			if len(args) == 1 {
				view = args[0]
			}
			return uc.Show(view, cmd.OutOrStdout())
		},
	}
}

// settingsCmd represents the settings command
var settingsCmd = NewSettingsCmd(settingsStore)

func init() {
	cmd.RootCmd.AddCommand(settingsCmd)
}
