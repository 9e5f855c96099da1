package entity

import (
	"strings"
	"time"

	errs "github.com/campuspoints/points-api/internal/domain/error"
	coreport "github.com/campuspoints/points-api/internal/domain/port/core"
)

// Role determines which operations a user may perform
type Role string

// User roles
const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// User represents a member of the points economy.
// Balance is only ever changed through the ledger service, which pairs
// every change with a transaction record in the same atomic unit.
type User struct {
	ID          uint64    // Unique identifier, assigned by the store
	Email       string    // Unique login email, immutable after creation
	Username    string    // Unique derived handle ("@first.last"), immutable
	FullName    string    // Optional display name
	Balance     int64     // Current point total; mirror of the transaction sum
	GiftBalance int64     // Separate allowance pool, static for now
	Role        Role      // Access role, defaults to student
	IsActive    bool      // Reserved for suspension; not enforced yet
	CreatedAt   time.Time // When the user was created
}

// NewUser creates a new user ready for insertion. The store assigns the ID.
func NewUser(email, fullName, username string, giftBalance int64, timeProvider coreport.TimeProvider) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, errs.ErrInvalidEmail
	}
	if username == "" {
		return nil, errs.ErrInvalidUsername
	}

	return &User{
		Email:       email,
		Username:    username,
		FullName:    fullName,
		Balance:     0,
		GiftBalance: giftBalance,
		Role:        RoleStudent,
		IsActive:    true,
		CreatedAt:   timeProvider.Now(),
	}, nil
}

// IsAdmin reports whether the user may perform privileged operations
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ApplyDelta adds a signed amount to the balance. Callers must hold the
// user's row lock; the entity itself cannot enforce that. Negative
// balances are allowed (overdraft is not floored).
func (u *User) ApplyDelta(amount int64) {
	u.Balance += amount
}
