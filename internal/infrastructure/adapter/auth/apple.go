package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	authport "github.com/campuspoints/points-api/internal/domain/port/auth"
)

const (
	appleKeysURL    = "https://appleid.apple.com/auth/keys"
	appleIssuer     = "https://appleid.apple.com"
	appleKeysMaxAge = time.Hour
)

// appleVerifier verifies Apple identity tokens locally against
// Apple's published signing keys. The key set is cached and refetched
// when a token references an unknown key ID.
type appleVerifier struct {
	client *http.Client
	url    string

	mu        sync.Mutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
}

func newAppleVerifier() *appleVerifier {
	return &appleVerifier{
		client: &http.Client{Timeout: 10 * time.Second},
		url:    appleKeysURL,
	}
}

type appleJWK struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type appleJWKSet struct {
	Keys []appleJWK `json:"keys"`
}

func (v *appleVerifier) Verify(ctx context.Context, credential string) (*authport.Claim, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(credential, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("token has no key ID")
		}
		return v.signingKey(ctx, kid)
	}, jwt.WithIssuer(appleIssuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("identity token rejected: %w", err)
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("token carries no email")
	}

	// Apple never puts the name in the token, so FullName stays empty
	// and account creation falls back to the requested or derived name
	return &authport.Claim{Email: email}, nil
}

// signingKey returns the RSA key for the given key ID, refetching the
// key set when the ID is unknown or the cache is stale
func (v *appleVerifier) signingKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if key, ok := v.keys[kid]; ok && time.Since(v.fetchedAt) < appleKeysMaxAge {
		return key, nil
	}

	if err := v.fetchKeysLocked(ctx); err != nil {
		return nil, err
	}

	key, ok := v.keys[kid]
	if !ok {
		return nil, fmt.Errorf("no signing key with ID %q", kid)
	}
	return key, nil
}

func (v *appleVerifier) fetchKeysLocked(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.url, nil)
	if err != nil {
		return err
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch signing keys: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("signing key fetch returned status %d", resp.StatusCode)
	}

	var set appleJWKSet
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return fmt.Errorf("failed to decode signing key set: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(set.Keys))
	for _, jwk := range set.Keys {
		if jwk.Kty != "RSA" {
			continue
		}
		key, err := jwkToRSAPublicKey(jwk)
		if err != nil {
			return err
		}
		keys[jwk.Kid] = key
	}

	v.keys = keys
	v.fetchedAt = time.Now()
	return nil
}

func jwkToRSAPublicKey(jwk appleJWK) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(jwk.N)
	if err != nil {
		return nil, fmt.Errorf("invalid key modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(jwk.E)
	if err != nil {
		return nil, fmt.Errorf("invalid key exponent: %w", err)
	}

	e := 0
	for _, b := range eBytes {
		e = e<<8 | int(b)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: e,
	}, nil
}
