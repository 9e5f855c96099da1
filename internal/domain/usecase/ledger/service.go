// Package ledger implements the balance-mutation core: every change to
// a user's balance commits atomically with exactly one appended
// transaction record, so the balance never drifts from the sum of its
// ledger entries.
package ledger

import (
	"context"

	"github.com/campuspoints/points-api/internal/domain/entity"
	coreport "github.com/campuspoints/points-api/internal/domain/port/core"
	"github.com/campuspoints/points-api/internal/domain/port/persistence"
	"github.com/campuspoints/points-api/internal/domain/port/usecase"
)

// Service applies balance deltas through a unit of work
type Service struct {
	uow          persistence.UnitOfWork
	transactions persistence.TransactionRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates the ledger service. The transaction repository is
// used for reads outside any unit of work; all writes go through uow.
func NewService(
	uow persistence.UnitOfWork,
	transactions persistence.TransactionRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		transactions: transactions,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// ListAllTransactions returns the global ledger ordered by ID
func (s *Service) ListAllTransactions(ctx context.Context, page usecase.Page) ([]*entity.Transaction, error) {
	page = page.Normalize()
	return s.transactions.List(ctx, page.Offset, page.Limit)
}

// VerifyInvariant checks that a user's stored balance equals the sum of
// their ledger entries. Both values are read inside one unit so the
// comparison sees a single snapshot. Intended for diagnostics and
// tests; returns the two values alongside the comparison.
func (s *Service) VerifyInvariant(ctx context.Context, userID uint64) (balance, ledgerSum int64, ok bool, err error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return 0, 0, false, err
	}
	defer func() {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Failed to close invariant check unit", map[string]any{
				"user_id": userID,
				"error":   rbErr.Error(),
			})
		}
	}()

	user, err := s.uow.GetUserRepository(txCtx).GetByID(txCtx, userID)
	if err != nil {
		return 0, 0, false, err
	}
	sum, err := s.uow.GetTransactionRepository(txCtx).SumByUser(txCtx, userID)
	if err != nil {
		return 0, 0, false, err
	}
	return user.Balance, sum, user.Balance == sum, nil
}
