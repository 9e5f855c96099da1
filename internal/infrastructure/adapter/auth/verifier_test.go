package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	domainerror "github.com/campuspoints/points-api/internal/domain/error"
	authport "github.com/campuspoints/points-api/internal/domain/port/auth"
	"github.com/campuspoints/points-api/mocks/port/core"
)

func newRegistryLogger() *core.MockLogger {
	mockLogger := new(core.MockLogger)
	mockLogger.On("Info", mock.Anything, mock.Anything).Return().Maybe()
	mockLogger.On("Warn", mock.Anything, mock.Anything).Return().Maybe()
	return mockLogger
}

func TestRegistry_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("should accept email credential via dev provider", func(t *testing.T) {
		registry := NewRegistry(VerifierConfig{AllowDevLogin: true}, newRegistryLogger())

		claim, err := registry.Verify(ctx, authport.ProviderDev, "student@example.edu")

		assert.NoError(t, err)
		assert.Equal(t, "student@example.edu", claim.Email)
	})

	t.Run("should reject empty dev credential", func(t *testing.T) {
		registry := NewRegistry(VerifierConfig{AllowDevLogin: true}, newRegistryLogger())

		claim, err := registry.Verify(ctx, authport.ProviderDev, "")

		assert.Nil(t, claim)
		assert.ErrorIs(t, err, domainerror.ErrInvalidCredential)
	})

	t.Run("should reject dev provider when disabled", func(t *testing.T) {
		registry := NewRegistry(VerifierConfig{AllowDevLogin: false}, newRegistryLogger())

		claim, err := registry.Verify(ctx, authport.ProviderDev, "student@example.edu")

		assert.Nil(t, claim)
		assert.ErrorIs(t, err, domainerror.ErrInvalidCredential)
	})

	t.Run("should reject unknown provider", func(t *testing.T) {
		registry := NewRegistry(VerifierConfig{}, newRegistryLogger())

		claim, err := registry.Verify(ctx, authport.Provider("facebook"), "token")

		assert.Nil(t, claim)
		assert.ErrorIs(t, err, domainerror.ErrInvalidCredential)
	})
}

func TestProvider_Valid(t *testing.T) {
	assert.True(t, authport.ProviderGoogle.Valid())
	assert.True(t, authport.ProviderApple.Valid())
	assert.True(t, authport.ProviderDev.Valid())
	assert.False(t, authport.Provider("facebook").Valid())
	assert.False(t, authport.Provider("").Valid())
}
