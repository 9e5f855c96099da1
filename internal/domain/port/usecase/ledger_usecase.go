package usecase

import (
	"context"

	"github.com/campuspoints/points-api/internal/domain/entity"
)

// Delta describes one requested balance mutation
type Delta struct {
	UserID      uint64
	Amount      int64
	Type        entity.TransactionType // optional; derived from Amount sign when empty
	Description string                 // optional; defaulted when empty
	AdminID     *uint64                // acting administrator, nil for self-service
}

// LedgerUseCase is the only entry point for balance changes. Every
// applied delta atomically pairs the balance update with exactly one
// ledger entry.
type LedgerUseCase interface {
	// ApplyDelta applies a signed amount to a user's balance and
	// appends the matching transaction, as one atomic unit. Returns the
	// updated user.
	//
	// Possible errors:
	// - ErrUserNotFound: unknown user; no side effects
	// - ErrInvalidTransactionType: caller-supplied type outside the known set
	// - any persistence failure, with the whole unit rolled back
	ApplyDelta(ctx context.Context, delta Delta) (*entity.User, error)

	// ListAllTransactions returns the global ledger ordered by ID; admin use
	ListAllTransactions(ctx context.Context, page Page) ([]*entity.Transaction, error)
}
