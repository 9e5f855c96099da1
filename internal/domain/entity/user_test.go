package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	errs "github.com/campuspoints/points-api/internal/domain/error"
	"github.com/campuspoints/points-api/mocks/port/core"
)

func TestNewUser(t *testing.T) {
	fixedTime := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should create user with defaults", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)
		mockTimeProvider.On("Now").Return(fixedTime)

		user, err := NewUser("jordan.lee@example.edu", "Jordan Lee", "@jordan.lee", 25, mockTimeProvider)

		assert.NoError(t, err)
		assert.Equal(t, "jordan.lee@example.edu", user.Email)
		assert.Equal(t, "Jordan Lee", user.FullName)
		assert.Equal(t, "@jordan.lee", user.Username)
		assert.Equal(t, int64(0), user.Balance)
		assert.Equal(t, int64(25), user.GiftBalance)
		assert.Equal(t, RoleStudent, user.Role)
		assert.True(t, user.IsActive)
		assert.Equal(t, fixedTime, user.CreatedAt)
	})

	t.Run("should trim email whitespace", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)
		mockTimeProvider.On("Now").Return(fixedTime)

		user, err := NewUser("  sam@example.edu  ", "Sam", "@sam", 0, mockTimeProvider)

		assert.NoError(t, err)
		assert.Equal(t, "sam@example.edu", user.Email)
	})

	t.Run("should reject empty email", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)

		user, err := NewUser("   ", "Sam", "@sam", 0, mockTimeProvider)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, errs.ErrInvalidEmail)
	})

	t.Run("should reject empty username", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)

		user, err := NewUser("sam@example.edu", "Sam", "", 0, mockTimeProvider)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, errs.ErrInvalidUsername)
	})
}

func TestUser_ApplyDelta(t *testing.T) {
	t.Run("should add positive amount", func(t *testing.T) {
		user := &User{Balance: 10}
		user.ApplyDelta(50)
		assert.Equal(t, int64(60), user.Balance)
	})

	t.Run("should allow balance to go negative", func(t *testing.T) {
		user := &User{Balance: 5}
		user.ApplyDelta(-20)
		assert.Equal(t, int64(-15), user.Balance)
	})

	t.Run("should accumulate across deltas", func(t *testing.T) {
		user := &User{}
		user.ApplyDelta(100)
		user.ApplyDelta(-30)
		user.ApplyDelta(7)
		assert.Equal(t, int64(77), user.Balance)
	})
}

func TestUser_IsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleStudent}).IsAdmin())
	assert.False(t, (&User{}).IsAdmin())
}
