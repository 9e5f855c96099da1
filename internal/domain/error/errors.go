package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidUserID          = 4001
	CodeInvalidEmail           = 4002
	CodeInvalidUsername        = 4003
	CodeInvalidTransactionType = 4004
	CodeInvalidCredential      = 4010
	CodeForbidden              = 4030
	CodeUserNotFound           = 4040
	CodeTransactionNotFound    = 4041
	CodeEmailTaken             = 4090
	CodeUsernameTaken          = 4091
	CodeConstraintViolation    = 4092

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrInvalidUserID is returned when the user ID is not a positive integer
	ErrInvalidUserID = errors.New("user ID must be positive")

	// ErrInvalidEmail is returned when an email is empty or malformed
	ErrInvalidEmail = errors.New("invalid email")

	// ErrInvalidUsername is returned when a username is empty
	ErrInvalidUsername = errors.New("invalid username")

	// ErrInvalidTransactionType is returned when a ledger entry type is outside the known set
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidCredential is returned when an external credential fails verification
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrForbidden is returned when the caller lacks the required role
	ErrForbidden = errors.New("admin privileges required")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrEmailTaken is returned when a user with the same email already exists
	ErrEmailTaken = errors.New("user with this email already exists")

	// ErrUsernameTaken is returned when the unique username constraint fires at insert time
	ErrUsernameTaken = errors.New("username already taken")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrInvalidEmail):
		return CodeInvalidEmail
	case errors.Is(err, ErrInvalidUsername):
		return CodeInvalidUsername
	case errors.Is(err, ErrInvalidTransactionType):
		return CodeInvalidTransactionType
	case errors.Is(err, ErrInvalidCredential):
		return CodeInvalidCredential
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrEmailTaken):
		return CodeEmailTaken
	case errors.Is(err, ErrUsernameTaken):
		return CodeUsernameTaken
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraintViolation
	default:
		return CodeInternalServer
	}
}

// LedgerError carries context about a failed balance mutation
type LedgerError struct {
	UserID uint64
	Amount int64
	Err    error
}

// Error implements the error interface for LedgerError
func (e *LedgerError) Error() string {
	return fmt.Sprintf("ledger operation failed for user %d (amount: %d): %v",
		e.UserID, e.Amount, e.Err)
}

// Unwrap returns the underlying error
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *LedgerError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "ledger_error",
		"user_id":    e.UserID,
		"amount":     e.Amount,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewLedgerError wraps a failure in a balance mutation with its context
func NewLedgerError(userID uint64, amount int64, err error) error {
	return &LedgerError{UserID: userID, Amount: amount, Err: err}
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}

// IsConflictError checks if the error is a uniqueness conflict
func IsConflictError(err error) bool {
	return errors.Is(err, ErrEmailTaken) || errors.Is(err, ErrUsernameTaken)
}
