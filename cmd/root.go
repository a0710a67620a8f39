/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cristianoliveira/listkit/internal/colors"
	"github.com/cristianoliveira/listkit/internal/config"
	"github.com/cristianoliveira/listkit/internal/logging"
	"github.com/cristianoliveira/listkit/internal/version"
	"github.com/spf13/cobra"
)

var (
	debugFlag bool
	quietFlag bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:           "listkit",
	Short:         "Sortable, selectable, paginated admin lists with bulk actions.",
	Long:          `Sortable, selectable, paginated admin lists with bulk actions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		colors.SetDebug(debugFlag || config.GetBool("debug", false))
		colors.SetQuiet(quietFlag || config.GetBool("quiet", false))
		if err := logging.InitGlobal(); err != nil {
			colors.Warning("structured logging disabled:", err.Error())
		}
		logging.Debug("command started", "command", cmd.CommandPath())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Debug("command finished", "command", cmd.CommandPath())
		_ = logging.ShutdownGlobal()
	},
}

// Execute runs the root command. This is called by main.main().
// An interrupt or SIGTERM cancels the context of the running command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return RootCmd.ExecuteContext(ctx)
}

func init() {
	RootCmd.Version = version.String()
	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	RootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Print debug output")
	RootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress info and success output")

	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != RootCmd {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cmd.Long)
			return
		}
		printHelpText(cmd, cmd.OutOrStdout())
	})
}

func printHelpText(cmd *cobra.Command, w io.Writer) {
	commandOrder := []string{
		"list",
		"add",
		"delete",
		"set-status",
		"columns",
		"status",
		"settings",
		"import",
		"tui",
		"version",
	}

	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-16s %s", found.Name(), found.Short))
	}

	_, _ = fmt.Fprintf(w, `listkit v%s

Sortable, selectable, paginated admin lists with bulk actions.

USAGE:
    listkit [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    --debug         Print debug output
    -q, --quiet     Suppress info and success output
    -h, --help      Show help message
    -v, --version   Show version
`, version.String(), strings.Join(cmdLines, "\n"))
}
