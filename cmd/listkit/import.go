/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"fmt"
	"os"

	"github.com/cristianoliveira/listkit/cmd"
	"github.com/cristianoliveira/listkit/internal/app"
	"github.com/spf13/cobra"
)

const importCommandLong = `Seed collections from a tab separated file.

USAGE:
    listkit import <file|-> [OPTIONS]

Each line holds: collection, name, status, amount, quantity, ref, and
optionally id and created_at (RFC 3339). Blank lines and lines starting
with # are skipped. Existing ids are updated; an id repeated in the file
keeps its last line. Requires the sqlite storage backend.

OPTIONS:
    --dry-run    Parse and validate without writing
    -h, --help   Show this help`

// NewImportCmd creates the import command with explicit dependencies.
func NewImportCmd(client app.ImportClient) *cobra.Command {
	if client == nil {
		panic("NewImportCmd: client dependency cannot be nil")
	}

	var dryRun bool
	importCmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Seed collections from a TSV file",
		Long:  importCommandLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("import: %w", err)
				}
				defer f.Close()
				in = f
			}
			_, err := app.NewImportUseCase(client).Execute(cmd.Context(), app.ImportInput{Reader: in, DryRun: dryRun})
			return err
		},
	}
	importCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and validate without writing")
	return importCmd
}

// importCmd represents the import command
var importCmd = NewImportCmd(recordStore)

func init() {
	cmd.RootCmd.AddCommand(importCmd)
}
