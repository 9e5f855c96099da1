package auth

import (
	"context"
	"fmt"

	domainerror "github.com/campuspoints/points-api/internal/domain/error"
	authport "github.com/campuspoints/points-api/internal/domain/port/auth"
	"github.com/campuspoints/points-api/internal/domain/port/core"
)

// VerifierConfig contains settings for credential verification
type VerifierConfig struct {
	// AllowDevLogin enables the dev provider, which accepts any email
	// as a credential. Must stay off in production.
	AllowDevLogin bool
}

// providerVerifier validates credentials for a single identity provider
type providerVerifier interface {
	Verify(ctx context.Context, credential string) (*authport.Claim, error)
}

// Registry dispatches credential verification to the provider named in
// the request
type Registry struct {
	verifiers map[authport.Provider]providerVerifier
	logger    core.Logger
}

// NewRegistry creates a verifier registry with the standard providers
func NewRegistry(config VerifierConfig, logger core.Logger) authport.Verifier {
	verifiers := map[authport.Provider]providerVerifier{
		authport.ProviderGoogle: newGoogleVerifier(),
		authport.ProviderApple:  newAppleVerifier(),
	}
	if config.AllowDevLogin {
		verifiers[authport.ProviderDev] = &devVerifier{}
	}
	return &Registry{
		verifiers: verifiers,
		logger:    logger,
	}
}

// Verify validates the credential with the named provider
func (r *Registry) Verify(ctx context.Context, provider authport.Provider, credential string) (*authport.Claim, error) {
	if !provider.Valid() {
		return nil, fmt.Errorf("%w: unknown provider %q", domainerror.ErrInvalidCredential, provider)
	}

	verifier, ok := r.verifiers[provider]
	if !ok {
		// Known provider that is disabled in this environment
		r.logger.Warn("Login attempt with disabled provider", map[string]any{
			"provider": string(provider),
		})
		return nil, domainerror.ErrInvalidCredential
	}

	claim, err := verifier.Verify(ctx, credential)
	if err != nil {
		r.logger.Info("Credential verification failed", map[string]any{
			"provider": string(provider),
			"error":    err.Error(),
		})
		return nil, domainerror.ErrInvalidCredential
	}
	if claim.Email == "" {
		return nil, domainerror.ErrInvalidCredential
	}
	return claim, nil
}

// devVerifier accepts the credential itself as the email address.
// Only registered when dev login is explicitly enabled.
type devVerifier struct{}

func (v *devVerifier) Verify(_ context.Context, credential string) (*authport.Claim, error) {
	if credential == "" {
		return nil, domainerror.ErrInvalidCredential
	}
	return &authport.Claim{Email: credential}, nil
}
