package auth

import "context"

// Provider identifies an external identity provider
type Provider string

// Supported identity providers
const (
	ProviderGoogle Provider = "google"
	ProviderApple  Provider = "apple"
	ProviderDev    Provider = "dev"
)

// Valid reports whether the provider is one of the supported set
func (p Provider) Valid() bool {
	switch p {
	case ProviderGoogle, ProviderApple, ProviderDev:
		return true
	}
	return false
}

// Claim is the identity asserted by a successfully verified credential
type Claim struct {
	Email    string
	FullName string
}

// Verifier validates an opaque external credential and returns the
// identity claim it asserts. Verification failures surface as
// ErrInvalidCredential.
type Verifier interface {
	Verify(ctx context.Context, provider Provider, credential string) (*Claim, error)
}
