/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"strings"

	"github.com/cristianoliveira/listkit/cmd"
	"github.com/cristianoliveira/listkit/internal/app"
	"github.com/cristianoliveira/listkit/internal/domain"
	"github.com/spf13/cobra"
)

const listCommandLong = `Print one page of a collection.

USAGE:
    listkit list <collection> [OPTIONS]

OPTIONS:
    --search <text>        Keep records whose name or id contains every word
    --status <status>      Keep records with this status
    --ref <id>             Keep records pointing at this record
    --sort <column>        Sort by a column (id, name, status, amount, quantity, ref, created_at)
    --order <asc|desc>     Sort direction (default: asc)
    --page <n>             Page to print (default: 1)
    --page-size <n>        Rows per page (default: page_size config)
    --columns <a,b,...>    Columns to print instead of the stored ones
    --format <format>      Output format: table (default), tsv, ids, json
    -h, --help             Show this help

Sort, page size and columns default to the preferences stored for the
collection by the TUI and the columns command.`

// NewListCmd creates the list command with explicit dependencies.
func NewListCmd(repo domain.Repository, store app.SettingsStore) *cobra.Command {
	if repo == nil || store == nil {
		panic("NewListCmd: client dependency cannot be nil")
	}

	var input app.ListInput
	var columns string

	listCmd := &cobra.Command{
		Use:   "list <collection>",
		Short: "Print one page of a collection",
		Long:  listCommandLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input.Collection = args[0]
			input.Columns = splitList(columns)
			input.Writer = cmd.OutOrStdout()
			return app.NewListUseCase(repo, store).Execute(cmd.Context(), input)
		},
	}

	listCmd.Flags().StringVar(&input.Search, "search", "", "Keep records whose name or id contains every word")
	listCmd.Flags().StringVar(&input.Status, "status", "", "Keep records with this status")
	listCmd.Flags().StringVar(&input.Ref, "ref", "", "Keep records pointing at this record")
	listCmd.Flags().StringVar(&input.SortBy, "sort", "", "Sort by a column")
	listCmd.Flags().StringVar(&input.SortOrder, "order", "", "Sort direction: asc, desc")
	listCmd.Flags().IntVar(&input.Page, "page", 1, "Page to print")
	listCmd.Flags().IntVar(&input.PageSize, "page-size", 0, "Rows per page")
	listCmd.Flags().StringVar(&columns, "columns", "", "Comma separated columns to print")
	listCmd.Flags().StringVar(&input.Format, "format", "table", "Output format: table, tsv, ids, json")

	return listCmd
}

// splitList splits a comma separated flag value, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// listCmd represents the list command
var listCmd = NewListCmd(recordStore, settingsStore)

func init() {
	cmd.RootCmd.AddCommand(listCmd)
}
