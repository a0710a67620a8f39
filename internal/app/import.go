package app

import (
	"context"
	"fmt"
	"io"

	"github.com/cristianoliveira/listkit/internal/colors"
	"github.com/cristianoliveira/listkit/internal/storage/sqlite"
)

// ImportClient loads records from a TSV stream.
type ImportClient interface {
	Import(ctx context.Context, r io.Reader, opts sqlite.ImportOptions) (sqlite.ImportStats, error)
}

// ImportInput represents import command inputs.
type ImportInput struct {
	Reader io.Reader
	DryRun bool
}

// ImportUseCase seeds collections from a TSV file.
type ImportUseCase struct {
	client ImportClient
}

// NewImportUseCase creates an import use-case.
func NewImportUseCase(client ImportClient) *ImportUseCase {
	if client == nil {
		panic("NewImportUseCase: client dependency cannot be nil")
	}
	return &ImportUseCase{client: client}
}

// Execute runs the import and reports its statistics.
func (u *ImportUseCase) Execute(ctx context.Context, input ImportInput) (sqlite.ImportStats, error) {
	stats, err := u.client.Import(ctx, input.Reader, sqlite.ImportOptions{DryRun: input.DryRun})
	if err != nil {
		return stats, fmt.Errorf("import: %w", err)
	}
	for _, w := range stats.Warnings {
		colors.Warning(w)
	}
	summary := fmt.Sprintf("%d rows read, %d imported, %d skipped, %d duplicates",
		stats.TotalRows, stats.ImportedRows, stats.SkippedRows, stats.DuplicateRows)
	if input.DryRun {
		colors.Info("Dry run: " + summary)
		return stats, nil
	}
	colors.Success(summary)
	return stats, nil
}
