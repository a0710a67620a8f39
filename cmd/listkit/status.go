/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"fmt"

	"github.com/cristianoliveira/listkit/cmd"
	"github.com/cristianoliveira/listkit/internal/domain"
	lkerrors "github.com/cristianoliveira/listkit/internal/errors"
	"github.com/cristianoliveira/listkit/internal/status"
	"github.com/spf13/cobra"
)

const statusCommandLong = `Count the records of collections by status.

USAGE:
    listkit status [collection...] [OPTIONS]

Without arguments every collection is summarized.

OPTIONS:
    --format <format>    compact, detailed (default: status_format config), count-only
    -h, --help           Show this help

EXAMPLES:
    $ listkit status orders
    orders 4: pending 1, paid 2, cancelled 1`

// NewStatusCmd creates the status command with explicit dependencies.
func NewStatusCmd(client status.Lister) *cobra.Command {
	if client == nil {
		panic("NewStatusCmd: client dependency cannot be nil")
	}

	var formatFlag string
	statusCmd := &cobra.Command{
		Use:   "status [collection...]",
		Short: "Count records by status",
		Long:  statusCommandLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			collections := domain.Collections()
			if len(args) > 0 {
				collections = nil
				for _, arg := range args {
					c, err := domain.ParseCollection(arg)
					if err != nil {
						return lkerrors.User(domain.UnknownCollection(arg), err)
					}
					collections = append(collections, c)
				}
			}
			for _, c := range collections {
				s, err := status.Summarize(cmd.Context(), client, c)
				if err != nil {
					return err
				}
				line, err := status.Render(s, formatFlag)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	statusCmd.Flags().StringVar(&formatFlag, "format", "", "Output format: compact, detailed, count-only")
	return statusCmd
}

// statusCmd represents the status command
var statusCmd = NewStatusCmd(recordStore)

func init() {
	cmd.RootCmd.AddCommand(statusCmd)
}
