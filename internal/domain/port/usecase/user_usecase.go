package usecase

import (
	"context"

	"github.com/campuspoints/points-api/internal/domain/entity"
)

// UserUseCase exposes read operations over users and their ledgers
type UserUseCase interface {
	// GetUser returns the user with the given ID
	//
	// Possible errors:
	// - ErrInvalidUserID: if the ID is zero
	// - ErrUserNotFound: if no such user exists
	GetUser(ctx context.Context, userID uint64) (*entity.User, error)

	// ListUsers returns users ordered by ID
	ListUsers(ctx context.Context, page Page) ([]*entity.User, error)

	// ListTransactions returns a user's ledger history, newest first
	//
	// Possible errors:
	// - ErrUserNotFound: if the user does not exist
	ListTransactions(ctx context.Context, userID uint64, page Page) ([]*entity.Transaction, error)
}
