package identity

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/campuspoints/points-api/internal/domain/entity"
	coreport "github.com/campuspoints/points-api/internal/domain/port/core"
	"github.com/campuspoints/points-api/internal/domain/port/persistence"
)

// AllocatorConfig holds tunables for username allocation
type AllocatorConfig struct {
	// MaxAttempts bounds collision retries with the short suffix
	MaxAttempts int
	// SuffixBytes is the random suffix size for collision retries (2 bytes = 4 hex chars)
	SuffixBytes int
	// FallbackSuffixBytes is the suffix size for the unchecked last resort (4 bytes = 8 hex chars)
	FallbackSuffixBytes int
}

// DefaultAllocatorConfig returns the standard allocation tunables
func DefaultAllocatorConfig() AllocatorConfig {
	return AllocatorConfig{
		MaxAttempts:         10,
		SuffixBytes:         2,
		FallbackSuffixBytes: 4,
	}
}

// Allocator derives unique handles from display names. Allocation is
// check-then-act and therefore racy under heavy concurrent collision;
// the unique constraint at insert time remains the authority, and the
// resolver retries once with a pure random handle when it fires.
type Allocator struct {
	users  persistence.UserRepository
	config AllocatorConfig
	logger coreport.Logger
}

// NewAllocator creates a username allocator backed by the given repository
func NewAllocator(users persistence.UserRepository, config AllocatorConfig, logger coreport.Logger) *Allocator {
	if config.MaxAttempts <= 0 {
		config = DefaultAllocatorConfig()
	}
	return &Allocator{
		users:  users,
		config: config,
		logger: logger,
	}
}

// Allocate produces a handle for the display name that is unique at the
// time of the check. Collisions get a random hex suffix; after
// MaxAttempts the longer fallback suffix is returned without a further
// check, accepting a vanishingly small residual collision probability.
func (a *Allocator) Allocate(ctx context.Context, displayName string) (string, error) {
	base := entity.NormalizeHandle(displayName)

	taken, err := a.users.UsernameTaken(ctx, base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	for attempt := 0; attempt < a.config.MaxAttempts; attempt++ {
		candidate := fmt.Sprintf("%s.%s", base, randomHex(a.config.SuffixBytes))
		taken, err := a.users.UsernameTaken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	fallback := fmt.Sprintf("%s.%s", base, randomHex(a.config.FallbackSuffixBytes))
	a.logger.Warn("Username allocation exhausted retries, using unchecked fallback", map[string]any{
		"base":     base,
		"fallback": fallback,
		"attempts": a.config.MaxAttempts,
	})
	return fallback, nil
}

// RandomHandle returns a handle with no name-derived prefix. Used as
// the last line of defense when the insert itself hits the username
// constraint.
func (a *Allocator) RandomHandle() string {
	return entity.HandlePrefix + randomHex(a.config.FallbackSuffixBytes)
}

// randomHex returns n random bytes hex-encoded (2n characters)
func randomHex(n int) string {
	buf := make([]byte, n)
	// rand.Read only fails when the OS entropy source is broken, in
	// which case there is nothing sensible to do but panic
	if _, err := rand.Read(buf); err != nil {
		panic("username: failed to read random bytes: " + err.Error())
	}
	return hex.EncodeToString(buf)
}
