package persistence

import (
	"context"

	"github.com/campuspoints/points-api/internal/domain/entity"
)

// UserRepository defines the persistence operations for users
type UserRepository interface {
	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: if no user with the given ID exists
	// - ErrDatabaseConnection: if the database is unreachable
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// GetByIDForUpdate retrieves a user by ID while holding an
	// exclusive row lock for the remainder of the surrounding unit of
	// work. Only meaningful on a repository obtained from a UnitOfWork.
	//
	// Possible errors:
	// - ErrUserNotFound
	// - ErrDatabaseConnection
	GetByIDForUpdate(ctx context.Context, id uint64) (*entity.User, error)

	// GetByEmail retrieves a user by exact email match
	//
	// Possible errors:
	// - ErrUserNotFound
	// - ErrDatabaseConnection
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// GetByUsername retrieves a user by handle
	//
	// Possible errors:
	// - ErrUserNotFound
	// - ErrDatabaseConnection
	GetByUsername(ctx context.Context, username string) (*entity.User, error)

	// UsernameTaken reports whether a handle is already in use. This is
	// a best-effort pre-check; the unique constraint remains the
	// authority at insert time.
	UsernameTaken(ctx context.Context, username string) (bool, error)

	// Create inserts a new user and fills in the assigned ID
	//
	// Possible errors:
	// - ErrEmailTaken: unique email constraint fired
	// - ErrUsernameTaken: unique username constraint fired
	// - ErrDatabaseConnection
	Create(ctx context.Context, user *entity.User) error

	// UpdateBalance writes a new balance for the user. Callers must
	// already hold the row lock via GetByIDForUpdate; the ledger
	// service is the only intended caller.
	//
	// Possible errors:
	// - ErrUserNotFound
	// - ErrDatabaseConnection
	UpdateBalance(ctx context.Context, userID uint64, balance int64) error

	// List returns users ordered by primary key
	List(ctx context.Context, offset, limit int) ([]*entity.User, error)
}
