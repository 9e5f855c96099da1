package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainerror "github.com/campuspoints/points-api/internal/domain/error"
	authport "github.com/campuspoints/points-api/internal/domain/port/auth"
	"github.com/campuspoints/points-api/internal/domain/port/core"
)

// JWTConfig contains settings for token issuance
type JWTConfig struct {
	Secret   string
	TokenTTL time.Duration
	Issuer   string
}

// JWTIssuer mints and validates HS256 signed access tokens
type JWTIssuer struct {
	config       JWTConfig
	timeProvider core.TimeProvider
}

// NewJWTIssuer creates a new JWT token issuer
func NewJWTIssuer(config JWTConfig, timeProvider core.TimeProvider) authport.TokenIssuer {
	if config.TokenTTL <= 0 {
		config.TokenTTL = 72 * time.Hour
	}
	return &JWTIssuer{
		config:       config,
		timeProvider: timeProvider,
	}
}

// Issue returns a signed access token for the user
func (i *JWTIssuer) Issue(userID uint64) (string, error) {
	now := i.timeProvider.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(userID, 10),
		Issuer:    i.config.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.config.TokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(i.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse validates a token and returns the user ID it was issued for
func (i *JWTIssuer) Parse(tokenString string) (uint64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(i.config.Secret), nil
	})
	if err != nil || !token.Valid {
		return 0, domainerror.ErrInvalidCredential
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return 0, domainerror.ErrInvalidCredential
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return 0, domainerror.ErrInvalidCredential
	}
	return userID, nil
}
