package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/campuspoints/points-api/internal/domain/entity"
	errs "github.com/campuspoints/points-api/internal/domain/error"
	authport "github.com/campuspoints/points-api/internal/domain/port/auth"
	mockauth "github.com/campuspoints/points-api/mocks/port/auth"
	"github.com/campuspoints/points-api/mocks/port/core"
	mockpersistence "github.com/campuspoints/points-api/mocks/port/persistence"
)

func newTestTimeProvider() *core.MockTimeProvider {
	fixedTime := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	mockTimeProvider := new(core.MockTimeProvider)
	mockTimeProvider.On("Now").Return(fixedTime)
	return mockTimeProvider
}

func newQuietLogger() *core.MockLogger {
	mockLogger := new(core.MockLogger)
	mockLogger.On("Debug", mock.Anything, mock.Anything).Return().Maybe()
	mockLogger.On("Info", mock.Anything, mock.Anything).Return().Maybe()
	mockLogger.On("Warn", mock.Anything, mock.Anything).Return().Maybe()
	mockLogger.On("Error", mock.Anything, mock.Anything).Return().Maybe()
	return mockLogger
}

func TestService_ResolveOrCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("should return existing user unchanged", func(t *testing.T) {
		repo := newFakeUserRepo()
		repo.seed(&entity.User{
			Email:    "jordan.lee@example.edu",
			Username: "@jordan.lee",
			FullName: "Jordan Lee",
			Balance:  40,
		})

		service := NewService(repo, nil, nil, DefaultConfig(), newTestTimeProvider(), newQuietLogger())

		user, err := service.ResolveOrCreate(ctx, authport.Claim{
			Email:    "jordan.lee@example.edu",
			FullName: "A Completely Different Name",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Jordan Lee", user.FullName, "repeat logins must not sync the profile")
		assert.Equal(t, int64(40), user.Balance)
	})

	t.Run("should create user on first sight", func(t *testing.T) {
		repo := newFakeUserRepo()
		service := NewService(repo, nil, nil, DefaultConfig(), newTestTimeProvider(), newQuietLogger())

		user, err := service.ResolveOrCreate(ctx, authport.Claim{
			Email:    "sam.rivera@example.edu",
			FullName: "Sam Rivera",
		})

		assert.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.Equal(t, "@sam.rivera", user.Username)
		assert.Equal(t, int64(0), user.Balance)
		assert.Equal(t, int64(25), user.GiftBalance)
		assert.Equal(t, entity.RoleStudent, user.Role)
	})

	t.Run("should derive name from email local part when claim has none", func(t *testing.T) {
		repo := newFakeUserRepo()
		service := NewService(repo, nil, nil, DefaultConfig(), newTestTimeProvider(), newQuietLogger())

		user, err := service.ResolveOrCreate(ctx, authport.Claim{
			Email: "alex.kim@example.edu",
		})

		assert.NoError(t, err)
		assert.Equal(t, "alex.kim", user.FullName)
		assert.Equal(t, "@alex.kim", user.Username)
	})

	t.Run("should return winner row when losing an email race", func(t *testing.T) {
		mockUserRepo := new(mockpersistence.MockUserRepository)
		winner := &entity.User{
			ID:       42,
			Email:    "race@example.edu",
			Username: "@race.winner",
			FullName: "Race Winner",
		}

		// First lookup misses, the insert loses the race, the re-fetch
		// finds the winner's row
		mockUserRepo.On("GetByEmail", ctx, "race@example.edu").Return(nil, errs.ErrUserNotFound).Once()
		mockUserRepo.On("UsernameTaken", ctx, mock.Anything).Return(false, nil)
		mockUserRepo.On("Create", ctx, mock.Anything).Return(errs.ErrEmailTaken).Once()
		mockUserRepo.On("GetByEmail", ctx, "race@example.edu").Return(winner, nil).Once()

		service := NewService(mockUserRepo, nil, nil, DefaultConfig(), newTestTimeProvider(), newQuietLogger())

		user, err := service.ResolveOrCreate(ctx, authport.Claim{
			Email:    "race@example.edu",
			FullName: "Race Loser",
		})

		assert.NoError(t, err)
		assert.Equal(t, winner, user)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("should surface the conflict when the winner row is missing", func(t *testing.T) {
		mockUserRepo := new(mockpersistence.MockUserRepository)

		mockUserRepo.On("GetByEmail", ctx, "ghost@example.edu").Return(nil, errs.ErrUserNotFound)
		mockUserRepo.On("UsernameTaken", ctx, mock.Anything).Return(false, nil)
		mockUserRepo.On("Create", ctx, mock.Anything).Return(errs.ErrEmailTaken)

		service := NewService(mockUserRepo, nil, nil, DefaultConfig(), newTestTimeProvider(), newQuietLogger())

		user, err := service.ResolveOrCreate(ctx, authport.Claim{
			Email:    "ghost@example.edu",
			FullName: "Ghost",
		})

		assert.Nil(t, user)
		assert.ErrorIs(t, err, errs.ErrEmailTaken)
	})

	t.Run("should retry once with random handle on username conflict", func(t *testing.T) {
		repo := newFakeUserRepo()
		repo.createErrs = []error{errs.ErrUsernameTaken}

		service := NewService(repo, nil, nil, DefaultConfig(), newTestTimeProvider(), newQuietLogger())

		user, err := service.ResolveOrCreate(ctx, authport.Claim{
			Email:    "pat@example.edu",
			FullName: "Pat",
		})

		assert.NoError(t, err)
		assert.NotEqual(t, "@pat", user.Username)
		assert.Regexp(t, `^@[0-9a-f]{8}$`, user.Username)
	})

	t.Run("should detect username conflict by message substring", func(t *testing.T) {
		repo := newFakeUserRepo()
		repo.createErrs = []error{errors.New(`duplicate key value violates unique constraint "idx_users_username"`)}

		service := NewService(repo, nil, nil, DefaultConfig(), newTestTimeProvider(), newQuietLogger())

		user, err := service.ResolveOrCreate(ctx, authport.Claim{
			Email:    "kit@example.edu",
			FullName: "Kit",
		})

		assert.NoError(t, err)
		assert.Regexp(t, `^@[0-9a-f]{8}$`, user.Username)
	})

	t.Run("should propagate unrelated create failures", func(t *testing.T) {
		repo := newFakeUserRepo()
		dbErr := errors.New("disk full")
		repo.createErrs = []error{dbErr}

		service := NewService(repo, nil, nil, DefaultConfig(), newTestTimeProvider(), newQuietLogger())

		user, err := service.ResolveOrCreate(ctx, authport.Claim{
			Email:    "lee@example.edu",
			FullName: "Lee",
		})

		assert.Nil(t, user)
		assert.Equal(t, dbErr, err)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("should verify, resolve and issue token", func(t *testing.T) {
		repo := newFakeUserRepo()
		mockVerifier := new(mockauth.MockVerifier)
		mockTokens := new(mockauth.MockTokenIssuer)

		mockVerifier.On("Verify", ctx, authport.ProviderGoogle, "id-token").Return(&authport.Claim{
			Email:    "jordan.lee@example.edu",
			FullName: "Jordan Lee",
		}, nil)
		mockTokens.On("Issue", mock.AnythingOfType("uint64")).Return("signed-token", nil)

		service := NewService(repo, mockVerifier, mockTokens, DefaultConfig(), newTestTimeProvider(), newQuietLogger())

		result, err := service.Login(ctx, authport.ProviderGoogle, "id-token", "")

		assert.NoError(t, err)
		assert.Equal(t, "signed-token", result.AccessToken)
		assert.Equal(t, "jordan.lee@example.edu", result.User.Email)
		mockVerifier.AssertExpectations(t)
		mockTokens.AssertExpectations(t)
	})

	t.Run("should prefer caller-supplied name over claim", func(t *testing.T) {
		repo := newFakeUserRepo()
		mockVerifier := new(mockauth.MockVerifier)
		mockTokens := new(mockauth.MockTokenIssuer)

		mockVerifier.On("Verify", ctx, authport.ProviderApple, "id-token").Return(&authport.Claim{
			Email: "new@example.edu",
		}, nil)
		mockTokens.On("Issue", mock.AnythingOfType("uint64")).Return("signed-token", nil)

		service := NewService(repo, mockVerifier, mockTokens, DefaultConfig(), newTestTimeProvider(), newQuietLogger())

		result, err := service.Login(ctx, authport.ProviderApple, "id-token", "Requested Name")

		assert.NoError(t, err)
		assert.Equal(t, "Requested Name", result.User.FullName)
		assert.Equal(t, "@requested.name", result.User.Username)
	})

	t.Run("should fail when verification fails", func(t *testing.T) {
		repo := newFakeUserRepo()
		mockVerifier := new(mockauth.MockVerifier)

		mockVerifier.On("Verify", ctx, authport.ProviderGoogle, "bad").Return(nil, errs.ErrInvalidCredential)

		service := NewService(repo, mockVerifier, nil, DefaultConfig(), newTestTimeProvider(), newQuietLogger())

		result, err := service.Login(ctx, authport.ProviderGoogle, "bad", "")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrInvalidCredential)
	})
}
