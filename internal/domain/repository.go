package domain

import "context"

// Repository is the backend collaborator list views fetch from and mutate.
type Repository interface {
	// Add inserts r and returns it with ID, Status and CreatedAt filled.
	Add(ctx context.Context, r Record) (Record, error)

	// Get retrieves a record by its ID.
	Get(ctx context.Context, id string) (Record, error)

	// List returns every record of a collection.
	List(ctx context.Context, c Collection) ([]Record, error)

	// ListIDs returns up to limit ids matching f, oldest first, and whether
	// more matched.
	ListIDs(ctx context.Context, c Collection, f Filter, limit int) ([]string, bool, error)

	// Remove deletes a record. Records referenced by another record are
	// rejected with ErrReferenced.
	Remove(ctx context.Context, id string) error

	// SetStatus moves a record to status.
	SetStatus(ctx context.Context, id string, status Status) error

	// Count returns the number of records in a collection.
	Count(ctx context.Context, c Collection) (int, error)
}
