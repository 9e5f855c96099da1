package persistence

import (
	"context"

	"github.com/campuspoints/points-api/internal/domain/entity"
)

// TransactionRepository defines persistence operations for ledger
// entries. The ledger is append-only: there is no update or delete.
type TransactionRepository interface {
	// Create appends a new ledger entry and fills in the assigned ID
	//
	// Possible errors:
	// - ErrConstraintViolation: a referenced user does not exist
	// - ErrDatabaseConnection
	Create(ctx context.Context, transaction *entity.Transaction) error

	// ListByUser returns a user's ledger entries ordered by created_at
	// descending, ties broken by primary key
	ListByUser(ctx context.Context, userID uint64, offset, limit int) ([]*entity.Transaction, error)

	// List returns all ledger entries ordered by primary key; admin use
	List(ctx context.Context, offset, limit int) ([]*entity.Transaction, error)

	// SumByUser returns the sum of amounts for the user's entries.
	// Used by consistency checks and tests of the ledger invariant.
	SumByUser(ctx context.Context, userID uint64) (int64, error)
}
