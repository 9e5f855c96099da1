package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassifier(t *testing.T) {
	c := NewErrorClassifier()

	pgDupEmail := errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email" (SQLSTATE 23505)`)
	pgDupUsername := errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_username" (SQLSTATE 23505)`)

	t.Run("duplicate key detection", func(t *testing.T) {
		assert.True(t, c.IsDuplicateKeyError(pgDupEmail))
		assert.True(t, c.IsDuplicateKeyError(errors.New("UNIQUE constraint failed: users.email")))
		assert.False(t, c.IsDuplicateKeyError(errors.New("connection refused")))
		assert.False(t, c.IsDuplicateKeyError(nil))
	})

	t.Run("column attribution", func(t *testing.T) {
		assert.True(t, c.IsEmailConflict(pgDupEmail))
		assert.False(t, c.IsEmailConflict(pgDupUsername))

		assert.True(t, c.IsUsernameConflict(pgDupUsername))
		// The username index name contains "user", not "email"; make
		// sure attribution does not cross over
		assert.False(t, c.IsUsernameConflict(pgDupEmail))
	})

	t.Run("lock errors", func(t *testing.T) {
		assert.True(t, c.IsLockError(errors.New("ERROR: deadlock detected (SQLSTATE 40P01)")))
		assert.True(t, c.IsLockError(errors.New("ERROR: could not serialize access due to concurrent update")))
		assert.False(t, c.IsLockError(pgDupEmail))
		assert.False(t, c.IsLockError(nil))
	})

	t.Run("transient errors", func(t *testing.T) {
		assert.True(t, c.IsTransientError(errors.New("read tcp: connection reset by peer")))
		assert.True(t, c.IsTransientError(errors.New("dial tcp: connection refused")))
		assert.True(t, c.IsTransientError(errors.New("unexpected EOF")))
		assert.False(t, c.IsTransientError(pgDupEmail))
	})

	t.Run("constraint errors", func(t *testing.T) {
		assert.True(t, c.IsConstraintError(errors.New(`insert or update on table "transactions" violates foreign key constraint "fk_transactions_user"`)))
		assert.True(t, c.IsConstraintError(pgDupEmail))
		assert.False(t, c.IsConstraintError(errors.New("connection refused")))
	})
}
