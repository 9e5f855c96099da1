package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campuspoints/points-api/internal/domain/entity"
	errs "github.com/campuspoints/points-api/internal/domain/error"
	"github.com/campuspoints/points-api/internal/domain/port/usecase"
	"github.com/campuspoints/points-api/mocks/port/core"
	"github.com/campuspoints/points-api/mocks/port/persistence"
)

func TestService_GetUser(t *testing.T) {
	ctx := context.Background()

	t.Run("should return user by ID", func(t *testing.T) {
		mockUserRepo := new(persistence.MockUserRepository)
		mockLogger := new(core.MockLogger)

		expected := &entity.User{ID: 7, Email: "jordan.lee@example.edu"}
		mockUserRepo.On("GetByID", ctx, uint64(7)).Return(expected, nil)

		service := NewService(mockUserRepo, nil, mockLogger)
		user, err := service.GetUser(ctx, 7)

		assert.NoError(t, err)
		assert.Equal(t, expected, user)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("should reject zero ID without hitting the repository", func(t *testing.T) {
		mockUserRepo := new(persistence.MockUserRepository)

		service := NewService(mockUserRepo, nil, new(core.MockLogger))
		user, err := service.GetUser(ctx, 0)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
		mockUserRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("should propagate not found", func(t *testing.T) {
		mockUserRepo := new(persistence.MockUserRepository)
		mockUserRepo.On("GetByID", ctx, uint64(99)).Return(nil, errs.ErrUserNotFound)

		service := NewService(mockUserRepo, nil, new(core.MockLogger))
		user, err := service.GetUser(ctx, 99)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}

func TestService_ListUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("should normalize the page before listing", func(t *testing.T) {
		mockUserRepo := new(persistence.MockUserRepository)
		expected := []*entity.User{{ID: 1}, {ID: 2}}

		// Negative offset and zero limit fall back to the defaults
		mockUserRepo.On("List", ctx, 0, usecase.DefaultPageLimit).Return(expected, nil)

		service := NewService(mockUserRepo, nil, new(core.MockLogger))
		users, err := service.ListUsers(ctx, usecase.Page{Offset: -5, Limit: 0})

		assert.NoError(t, err)
		assert.Equal(t, expected, users)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("should clamp oversized limits", func(t *testing.T) {
		mockUserRepo := new(persistence.MockUserRepository)
		mockUserRepo.On("List", ctx, 10, usecase.MaxPageLimit).Return(nil, nil)

		service := NewService(mockUserRepo, nil, new(core.MockLogger))
		_, err := service.ListUsers(ctx, usecase.Page{Offset: 10, Limit: 10000})

		assert.NoError(t, err)
		mockUserRepo.AssertExpectations(t)
	})
}

func TestService_ListTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("should return history for existing user", func(t *testing.T) {
		mockUserRepo := new(persistence.MockUserRepository)
		mockTxRepo := new(persistence.MockTransactionRepository)

		expected := []*entity.Transaction{{ID: 2, UserID: 7}, {ID: 1, UserID: 7}}
		mockUserRepo.On("GetByID", ctx, uint64(7)).Return(&entity.User{ID: 7}, nil)
		mockTxRepo.On("ListByUser", ctx, uint64(7), 0, usecase.DefaultPageLimit).Return(expected, nil)

		service := NewService(mockUserRepo, mockTxRepo, new(core.MockLogger))
		txs, err := service.ListTransactions(ctx, 7, usecase.Page{})

		assert.NoError(t, err)
		assert.Equal(t, expected, txs)
	})

	t.Run("should return empty slice for user with no history", func(t *testing.T) {
		mockUserRepo := new(persistence.MockUserRepository)
		mockTxRepo := new(persistence.MockTransactionRepository)

		mockUserRepo.On("GetByID", ctx, uint64(7)).Return(&entity.User{ID: 7}, nil)
		mockTxRepo.On("ListByUser", ctx, uint64(7), 0, usecase.DefaultPageLimit).Return([]*entity.Transaction{}, nil)

		service := NewService(mockUserRepo, mockTxRepo, new(core.MockLogger))
		txs, err := service.ListTransactions(ctx, 7, usecase.Page{})

		assert.NoError(t, err)
		assert.NotNil(t, txs)
		assert.Empty(t, txs)
	})

	t.Run("should fail for unknown user before listing", func(t *testing.T) {
		mockUserRepo := new(persistence.MockUserRepository)
		mockTxRepo := new(persistence.MockTransactionRepository)

		mockUserRepo.On("GetByID", ctx, uint64(99)).Return(nil, errs.ErrUserNotFound)

		service := NewService(mockUserRepo, mockTxRepo, new(core.MockLogger))
		txs, err := service.ListTransactions(ctx, 99, usecase.Page{})

		assert.Nil(t, txs)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
		mockTxRepo.AssertNotCalled(t, "ListByUser")
	})

	t.Run("should propagate repository failures", func(t *testing.T) {
		mockUserRepo := new(persistence.MockUserRepository)
		mockTxRepo := new(persistence.MockTransactionRepository)
		dbErr := errors.New("connection reset")

		mockUserRepo.On("GetByID", ctx, uint64(7)).Return(&entity.User{ID: 7}, nil)
		mockTxRepo.On("ListByUser", ctx, uint64(7), 0, usecase.DefaultPageLimit).Return(nil, dbErr)

		service := NewService(mockUserRepo, mockTxRepo, new(core.MockLogger))
		txs, err := service.ListTransactions(ctx, 7, usecase.Page{})

		assert.Nil(t, txs)
		assert.Equal(t, dbErr, err)
	})
}
