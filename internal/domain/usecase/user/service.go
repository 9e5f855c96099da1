package user

import (
	"context"

	"github.com/campuspoints/points-api/internal/domain/entity"
	errs "github.com/campuspoints/points-api/internal/domain/error"
	coreport "github.com/campuspoints/points-api/internal/domain/port/core"
	"github.com/campuspoints/points-api/internal/domain/port/persistence"
	"github.com/campuspoints/points-api/internal/domain/port/usecase"
)

// Service exposes read operations over users and their ledgers
type Service struct {
	users        persistence.UserRepository
	transactions persistence.TransactionRepository
	logger       coreport.Logger
}

// NewService creates the user read service
func NewService(
	users persistence.UserRepository,
	transactions persistence.TransactionRepository,
	logger coreport.Logger,
) *Service {
	return &Service{
		users:        users,
		transactions: transactions,
		logger:       logger,
	}
}

// GetUser returns the user with the given ID
func (s *Service) GetUser(ctx context.Context, userID uint64) (*entity.User, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	return s.users.GetByID(ctx, userID)
}

// ListUsers returns users ordered by primary key
func (s *Service) ListUsers(ctx context.Context, page usecase.Page) ([]*entity.User, error) {
	page = page.Normalize()
	return s.users.List(ctx, page.Offset, page.Limit)
}

// ListTransactions returns a user's ledger history, newest first. The
// user must exist; an empty history for a known user is an empty slice,
// not an error.
func (s *Service) ListTransactions(ctx context.Context, userID uint64, page usecase.Page) ([]*entity.Transaction, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	page = page.Normalize()
	return s.transactions.ListByUser(ctx, userID, page.Offset, page.Limit)
}
