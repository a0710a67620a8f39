/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"github.com/cristianoliveira/listkit/cmd"
	"github.com/cristianoliveira/listkit/internal/app"
	"github.com/cristianoliveira/listkit/internal/domain"
	lkerrors "github.com/cristianoliveira/listkit/internal/errors"
	"github.com/spf13/cobra"
)

const bulkOptionsHelp = `OPTIONS:
    --all-matching         Act on every record matching the filters below
    --search <text>        Filter by name or id (with --all-matching)
    --status <status>      Filter by status (with --all-matching)
    --ref <id>             Filter by referenced record (with --all-matching)
    -y, --yes              Do not ask for confirmation
    -h, --help             Show this help

Each record is processed independently. Records that fail are reported
and the command exits with status 1 when any record failed.`

// bulkFlags holds the flags shared by delete and set-status.
type bulkFlags struct {
	allMatching bool
	search      string
	status      string
	ref         string
	yes         bool
}

func (f *bulkFlags) register(c *cobra.Command) {
	c.Flags().BoolVar(&f.allMatching, "all-matching", false, "Act on every record matching the filters")
	c.Flags().StringVar(&f.search, "search", "", "Filter by name or id")
	c.Flags().StringVar(&f.status, "status", "", "Filter by status")
	c.Flags().StringVar(&f.ref, "ref", "", "Filter by referenced record")
	c.Flags().BoolVarP(&f.yes, "yes", "y", false, "Do not ask for confirmation")
}

func (f *bulkFlags) input(c *cobra.Command, collection string, ids []string) app.BulkInput {
	in := app.BulkInput{
		Collection:  collection,
		IDs:         ids,
		AllMatching: f.allMatching,
		Search:      f.search,
		Status:      f.status,
		Ref:         f.ref,
		Handler:     lkerrors.NewDefaultCLIHandler(),
	}
	if !f.yes {
		in.Confirm = confirmFrom(c.InOrStdin(), c.OutOrStdout())
	}
	return in
}

// NewDeleteCmd creates the delete command with explicit dependencies.
func NewDeleteCmd(repo domain.Repository) *cobra.Command {
	if repo == nil {
		panic("NewDeleteCmd: client dependency cannot be nil")
	}

	var flags bulkFlags
	deleteCmd := &cobra.Command{
		Use:   "delete <collection> [id...]",
		Short: "Delete records",
		Long: `Delete records by id, or every record matching a filter.

USAGE:
    listkit delete <collection> <id>...
    listkit delete <collection> --all-matching [FILTERS]

` + bulkOptionsHelp,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := app.NewBulkUseCase(repo).Delete(cmd.Context(), flags.input(cmd, args[0], args[1:]))
			return err
		},
	}
	flags.register(deleteCmd)
	return deleteCmd
}

// NewSetStatusCmd creates the set-status command with explicit dependencies.
func NewSetStatusCmd(repo domain.Repository) *cobra.Command {
	if repo == nil {
		panic("NewSetStatusCmd: client dependency cannot be nil")
	}

	var flags bulkFlags
	setStatusCmd := &cobra.Command{
		Use:   "set-status <collection> <status> [id...]",
		Short: "Change the status of records",
		Long: `Change the status of records by id, or of every record matching a filter.

USAGE:
    listkit set-status <collection> <status> <id>...
    listkit set-status <collection> <status> --all-matching [FILTERS]

` + bulkOptionsHelp,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := app.NewBulkUseCase(repo).SetStatus(cmd.Context(), flags.input(cmd, args[0], args[2:]), args[1])
			return err
		},
	}
	flags.register(setStatusCmd)
	return setStatusCmd
}

var (
	deleteCmd    = NewDeleteCmd(recordStore)
	setStatusCmd = NewSetStatusCmd(recordStore)
)

func init() {
	cmd.RootCmd.AddCommand(deleteCmd)
	cmd.RootCmd.AddCommand(setStatusCmd)
}
