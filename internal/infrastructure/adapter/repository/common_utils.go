package repository

import (
	"strings"
)

// ErrorClassifier inspects database driver errors. Postgres surfaces
// constraint failures as text, so classification is by substring; the
// constraint name tells us which unique column fired.
type ErrorClassifier struct{}

// NewErrorClassifier creates a new ErrorClassifier
func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{}
}

// IsDuplicateKeyError checks if the error is a unique-constraint violation
func (c *ErrorClassifier) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint") ||
		strings.Contains(msg, "Duplicate entry")
}

// IsUsernameConflict checks if a duplicate-key error fired on the
// username column
func (c *ErrorClassifier) IsUsernameConflict(err error) bool {
	return c.IsDuplicateKeyError(err) &&
		strings.Contains(strings.ToLower(err.Error()), "username")
}

// IsEmailConflict checks if a duplicate-key error fired on the email column
func (c *ErrorClassifier) IsEmailConflict(err error) bool {
	return c.IsDuplicateKeyError(err) &&
		strings.Contains(strings.ToLower(err.Error()), "email")
}

// IsLockError checks if the error is due to locking or serialization
func (c *ErrorClassifier) IsLockError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "lock wait timeout") ||
		strings.Contains(msg, "could not serialize access") ||
		strings.Contains(msg, "serialization failure")
}

// IsTransientError checks if an error is transient and can be retried
func (c *ErrorClassifier) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "server closed") ||
		strings.Contains(msg, "broken pipe")
}

// IsConstraintError checks if the error is any constraint violation
// (foreign key, not null, check), duplicates included
func (c *ErrorClassifier) IsConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "constraint") ||
		strings.Contains(msg, "violates") ||
		strings.Contains(msg, "foreign key") ||
		strings.Contains(msg, "not null") ||
		c.IsDuplicateKeyError(err)
}
