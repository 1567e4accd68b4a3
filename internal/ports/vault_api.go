package ports

import (
	"context"

	"github.com/bft-labs/vaultsweep/internal/domain"
)

// VaultAPI is the subset of the vault service the sweeper needs.
// Every method issues exactly one request; nothing is cached or retried.
type VaultAPI interface {
	// Count returns the total number of records in the collection.
	Count(ctx context.Context, resource domain.Resource, vaultID int64) (int, error)

	// ListPage returns the ids on one page. An empty slice for an in-range
	// offset is valid and is not an error.
	ListPage(ctx context.Context, resource domain.Resource, vaultID int64, offset, size int) ([]domain.RecordID, error)

	// Mutate applies verb to one record. A rejection by the service is
	// reported in the result, not as an error; only transport failures
	// return an error.
	Mutate(ctx context.Context, resource domain.Resource, vaultID int64, id domain.RecordID, verb domain.Verb) (domain.MutationResult, error)
}
