/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/listkit/cmd"
	"github.com/cristianoliveira/listkit/internal/app"
	"github.com/cristianoliveira/listkit/internal/domain"
	"github.com/spf13/cobra"
)

// NewAddCmd creates the add command with explicit dependencies.
func NewAddCmd(repo domain.Repository) *cobra.Command {
	if repo == nil {
		panic("NewAddCmd: client dependency cannot be nil")
	}

	var input app.AddInput

	addCmd := &cobra.Command{
		Use:   "add <collection> <name>",
		Short: "Add a record to a collection",
		Long: `listkit add - Add a record to a collection

USAGE:
    listkit add <collection> [OPTIONS] <name>

OPTIONS:
    --status <status>      Initial status (default: the collection's first status)
    --amount <n>           Price, total or size depending on the collection
    --quantity <n>         Stock, item count or uses depending on the collection
    --ref <id>             Id of the record this one points at
    -h, --help             Show this help`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "add requires a collection and a name\n")
				return fmt.Errorf("add requires a collection and a name")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			input.Collection = args[0]
			input.Name = strings.Join(args[1:], " ")
			_, err := app.NewAddUseCase(repo).Execute(cmd.Context(), input)
			return err
		},
	}

	addCmd.Flags().StringVar(&input.Status, "status", "", "Initial status")
	addCmd.Flags().Float64Var(&input.Amount, "amount", 0, "Price, total or size")
	addCmd.Flags().IntVar(&input.Quantity, "quantity", 0, "Stock, item count or uses")
	addCmd.Flags().StringVar(&input.Ref, "ref", "", "Id of the record this one points at")

	return addCmd
}

// addCmd represents the add command.
var addCmd = NewAddCmd(recordStore)

func init() {
	cmd.RootCmd.AddCommand(addCmd)
}
