package ledger

import (
	"context"
	"errors"

	"github.com/campuspoints/points-api/internal/domain/entity"
	errs "github.com/campuspoints/points-api/internal/domain/error"
	"github.com/campuspoints/points-api/internal/domain/port/usecase"
)

// ApplyDelta applies a signed amount to a user's balance and appends the
// matching ledger entry as one atomic unit. The user's row is read
// under an exclusive lock for the duration of the unit, so concurrent
// deltas against the same user serialize instead of losing updates.
// There is no balance floor: debits may take the balance negative.
func (s *Service) ApplyDelta(ctx context.Context, delta usecase.Delta) (*entity.User, error) {
	if delta.UserID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
				s.logger.Error("Failed to roll back ledger unit", map[string]any{
					"user_id": delta.UserID,
					"error":   rbErr.Error(),
				})
			}
		}
	}()

	users := s.uow.GetUserRepository(txCtx)
	transactions := s.uow.GetTransactionRepository(txCtx)

	user, err := users.GetByIDForUpdate(txCtx, delta.UserID)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			s.logger.Warn("Balance mutation for unknown user", map[string]any{
				"user_id": delta.UserID,
			})
			return nil, err
		}
		return nil, errs.NewLedgerError(delta.UserID, delta.Amount, err)
	}

	entry, err := entity.NewTransaction(
		delta.UserID,
		delta.Amount,
		delta.Type,
		delta.Description,
		delta.AdminID,
		s.timeProvider,
	)
	if err != nil {
		return nil, err
	}

	user.ApplyDelta(delta.Amount)

	if err := users.UpdateBalance(txCtx, user.ID, user.Balance); err != nil {
		return nil, errs.NewLedgerError(delta.UserID, delta.Amount, err)
	}
	if err := transactions.Create(txCtx, entry); err != nil {
		return nil, errs.NewLedgerError(delta.UserID, delta.Amount, err)
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, errs.NewLedgerError(delta.UserID, delta.Amount, err)
	}
	committed = true

	s.logger.Info("Balance delta applied", map[string]any{
		"user_id":     user.ID,
		"amount":      delta.Amount,
		"type":        string(entry.Type),
		"new_balance": user.Balance,
		"admin_id":    delta.AdminID,
	})

	return user, nil
}
