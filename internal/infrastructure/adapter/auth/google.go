package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	authport "github.com/campuspoints/points-api/internal/domain/port/auth"
)

const googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// googleVerifier verifies Google ID tokens against the tokeninfo
// endpoint, which checks the signature and expiry server side
type googleVerifier struct {
	client *http.Client
	url    string
}

func newGoogleVerifier() *googleVerifier {
	return &googleVerifier{
		client: &http.Client{Timeout: 10 * time.Second},
		url:    googleTokenInfoURL,
	}
}

type googleTokenInfo struct {
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
}

func (v *googleVerifier) Verify(ctx context.Context, credential string) (*authport.Claim, error) {
	endpoint := v.url + "?id_token=" + url.QueryEscape(credential)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tokeninfo rejected token with status %d", resp.StatusCode)
	}

	var info googleTokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}
	if info.Email == "" || info.EmailVerified != "true" {
		return nil, fmt.Errorf("token carries no verified email")
	}

	return &authport.Claim{
		Email:    info.Email,
		FullName: info.Name,
	}, nil
}
