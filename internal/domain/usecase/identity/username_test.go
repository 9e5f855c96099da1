package identity

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/campuspoints/points-api/internal/domain/entity"
	"github.com/campuspoints/points-api/mocks/port/core"
	"github.com/campuspoints/points-api/mocks/port/persistence"
)

func TestAllocator_Allocate(t *testing.T) {
	ctx := context.Background()

	t.Run("should return base handle when free", func(t *testing.T) {
		mockUserRepo := new(persistence.MockUserRepository)
		mockLogger := new(core.MockLogger)

		mockUserRepo.On("UsernameTaken", ctx, "@jordan.lee").Return(false, nil)

		allocator := NewAllocator(mockUserRepo, DefaultAllocatorConfig(), mockLogger)
		handle, err := allocator.Allocate(ctx, "Jordan Lee")

		assert.NoError(t, err)
		assert.Equal(t, "@jordan.lee", handle)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("should suffix on collision", func(t *testing.T) {
		mockUserRepo := new(persistence.MockUserRepository)
		mockLogger := new(core.MockLogger)

		mockUserRepo.On("UsernameTaken", ctx, "@jordan.lee").Return(true, nil)
		// Any suffixed candidate is free
		mockUserRepo.On("UsernameTaken", ctx, mock.MatchedBy(func(s string) bool {
			return s != "@jordan.lee"
		})).Return(false, nil)

		allocator := NewAllocator(mockUserRepo, DefaultAllocatorConfig(), mockLogger)
		handle, err := allocator.Allocate(ctx, "Jordan Lee")

		assert.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^@jordan\.lee\.[0-9a-f]{4}$`), handle)
	})

	t.Run("should fall back unchecked after exhausting retries", func(t *testing.T) {
		mockUserRepo := new(persistence.MockUserRepository)
		mockLogger := new(core.MockLogger)

		// Everything reads as taken
		mockUserRepo.On("UsernameTaken", ctx, mock.Anything).Return(true, nil)
		mockLogger.On("Warn", "Username allocation exhausted retries, using unchecked fallback", mock.Anything).Return()

		allocator := NewAllocator(mockUserRepo, AllocatorConfig{
			MaxAttempts:         3,
			SuffixBytes:         2,
			FallbackSuffixBytes: 4,
		}, mockLogger)
		handle, err := allocator.Allocate(ctx, "Jordan Lee")

		assert.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^@jordan\.lee\.[0-9a-f]{8}$`), handle)
		// Base check plus MaxAttempts candidate checks, nothing more
		mockUserRepo.AssertNumberOfCalls(t, "UsernameTaken", 4)
		mockLogger.AssertExpectations(t)
	})

	t.Run("should propagate repository errors", func(t *testing.T) {
		mockUserRepo := new(persistence.MockUserRepository)
		mockLogger := new(core.MockLogger)
		dbErr := errors.New("connection refused")

		mockUserRepo.On("UsernameTaken", ctx, "@jordan.lee").Return(false, dbErr)

		allocator := NewAllocator(mockUserRepo, DefaultAllocatorConfig(), mockLogger)
		handle, err := allocator.Allocate(ctx, "Jordan Lee")

		assert.Empty(t, handle)
		assert.Equal(t, dbErr, err)
	})

	t.Run("should allocate distinct handles for repeated names", func(t *testing.T) {
		repo := newFakeUserRepo()
		mockLogger := new(core.MockLogger)
		mockLogger.On("Warn", mock.Anything, mock.Anything).Return().Maybe()

		allocator := NewAllocator(repo, DefaultAllocatorConfig(), mockLogger)

		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			handle, err := allocator.Allocate(ctx, "Jordan Lee")
			assert.NoError(t, err)
			assert.False(t, seen[handle], "duplicate handle %s", handle)
			seen[handle] = true

			// Register the handle the way a successful insert would
			repo.seed(&entity.User{
				Email:    handle + "@example.edu",
				Username: handle,
			})
		}
	})
}

func TestAllocator_RandomHandle(t *testing.T) {
	allocator := NewAllocator(newFakeUserRepo(), DefaultAllocatorConfig(), new(core.MockLogger))

	first := allocator.RandomHandle()
	second := allocator.RandomHandle()

	assert.Regexp(t, regexp.MustCompile(`^@[0-9a-f]{8}$`), first)
	assert.NotEqual(t, first, second)
}
