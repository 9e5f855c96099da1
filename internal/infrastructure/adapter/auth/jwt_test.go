package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/campuspoints/points-api/internal/domain/error"
	"github.com/campuspoints/points-api/mocks/port/core"
)

func newIssuer(secret string, ttl time.Duration, now time.Time) *JWTIssuer {
	mockTimeProvider := new(core.MockTimeProvider)
	mockTimeProvider.On("Now").Return(now)

	return NewJWTIssuer(JWTConfig{
		Secret:   secret,
		TokenTTL: ttl,
		Issuer:   "points-api",
	}, mockTimeProvider).(*JWTIssuer)
}

func TestJWTIssuer(t *testing.T) {
	t.Run("should round trip user ID", func(t *testing.T) {
		issuer := newIssuer("test-secret", time.Hour, time.Now())

		token, err := issuer.Issue(42)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		userID, err := issuer.Parse(token)
		assert.NoError(t, err)
		assert.Equal(t, uint64(42), userID)
	})

	t.Run("should reject token signed with another secret", func(t *testing.T) {
		issuer := newIssuer("secret-a", time.Hour, time.Now())
		other := newIssuer("secret-b", time.Hour, time.Now())

		token, err := issuer.Issue(42)
		require.NoError(t, err)

		userID, err := other.Parse(token)
		assert.Zero(t, userID)
		assert.ErrorIs(t, err, domainerror.ErrInvalidCredential)
	})

	t.Run("should reject expired token", func(t *testing.T) {
		// Issued two hours in the past with a one hour TTL
		issuer := newIssuer("test-secret", time.Hour, time.Now().Add(-2*time.Hour))

		token, err := issuer.Issue(42)
		require.NoError(t, err)

		userID, err := issuer.Parse(token)
		assert.Zero(t, userID)
		assert.ErrorIs(t, err, domainerror.ErrInvalidCredential)
	})

	t.Run("should reject garbage input", func(t *testing.T) {
		issuer := newIssuer("test-secret", time.Hour, time.Now())

		userID, err := issuer.Parse("not.a.token")
		assert.Zero(t, userID)
		assert.ErrorIs(t, err, domainerror.ErrInvalidCredential)
	})
}
