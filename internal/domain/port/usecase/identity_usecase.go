package usecase

import (
	"context"

	"github.com/campuspoints/points-api/internal/domain/entity"
	"github.com/campuspoints/points-api/internal/domain/port/auth"
)

// LoginResult is returned after a successful provider login
type LoginResult struct {
	User        *entity.User
	AccessToken string
}

// IdentityUseCase maps external identity claims to internal users
type IdentityUseCase interface {
	// ResolveOrCreate returns the user for a verified claim, creating
	// one on first sight. Concurrent first logins for the same email
	// converge on a single row.
	ResolveOrCreate(ctx context.Context, claim auth.Claim) (*entity.User, error)

	// Login verifies an external credential, resolves the user and
	// issues an access token
	//
	// Possible errors:
	// - ErrInvalidCredential: verification failed
	Login(ctx context.Context, provider auth.Provider, credential, fullName string) (*LoginResult, error)
}
