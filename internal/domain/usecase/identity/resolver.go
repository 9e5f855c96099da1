package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/campuspoints/points-api/internal/domain/entity"
	errs "github.com/campuspoints/points-api/internal/domain/error"
	"github.com/campuspoints/points-api/internal/domain/port/auth"
	coreport "github.com/campuspoints/points-api/internal/domain/port/core"
	"github.com/campuspoints/points-api/internal/domain/port/persistence"
	"github.com/campuspoints/points-api/internal/domain/port/usecase"
)

// Config holds tunables for identity resolution
type Config struct {
	// InitialGiftBalance is granted to every new user
	InitialGiftBalance int64
	// Allocator holds the username allocation tunables
	Allocator AllocatorConfig
}

// DefaultConfig returns the standard identity tunables
func DefaultConfig() Config {
	return Config{
		InitialGiftBalance: 25,
		Allocator:          DefaultAllocatorConfig(),
	}
}

// Service resolves verified external identity claims to durable users
type Service struct {
	users        persistence.UserRepository
	allocator    *Allocator
	verifier     auth.Verifier
	tokens       auth.TokenIssuer
	config       Config
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates the identity service
func NewService(
	users persistence.UserRepository,
	verifier auth.Verifier,
	tokens auth.TokenIssuer,
	config Config,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		users:        users,
		allocator:    NewAllocator(users, config.Allocator, logger),
		verifier:     verifier,
		tokens:       tokens,
		config:       config,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// ResolveOrCreate returns the user for a verified claim, creating one on
// first sight. Exactly one user row ever exists per distinct email:
// when two first logins race, the losing insert hits the unique email
// constraint and is resolved by re-fetching the winner's row. Repeat
// logins return the stored profile unchanged (no profile sync).
func (s *Service) ResolveOrCreate(ctx context.Context, claim auth.Claim) (*entity.User, error) {
	user, err := s.users.GetByEmail(ctx, claim.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, errs.ErrUserNotFound) {
		return nil, err
	}

	fullName := claim.FullName
	if fullName == "" {
		fullName = emailLocalPart(claim.Email)
	}

	username, err := s.allocator.Allocate(ctx, fullName)
	if err != nil {
		return nil, err
	}

	user, err = entity.NewUser(claim.Email, fullName, username, s.config.InitialGiftBalance, s.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		return s.recoverCreateConflict(ctx, claim, user, err)
	}

	s.logger.Info("User created on first login", map[string]any{
		"user_id":  user.ID,
		"email":    user.Email,
		"username": user.Username,
	})
	return user, nil
}

// recoverCreateConflict handles the two uniqueness races an insert can
// lose: an email race (another request created the same user, return
// the winner's row) and a username race (regenerate with a pure random
// handle and retry exactly once).
func (s *Service) recoverCreateConflict(ctx context.Context, claim auth.Claim, user *entity.User, createErr error) (*entity.User, error) {
	if errors.Is(createErr, errs.ErrUsernameTaken) || isUsernameConflict(createErr) {
		user.Username = s.allocator.RandomHandle()
		s.logger.Warn("Username conflict at insert, retrying with random handle", map[string]any{
			"email":    claim.Email,
			"username": user.Username,
		})
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}

	if errors.Is(createErr, errs.ErrEmailTaken) {
		winner, err := s.users.GetByEmail(ctx, claim.Email)
		if err != nil {
			// The row that beat us should be there; if it is not,
			// surface the original conflict
			return nil, createErr
		}
		s.logger.Info("Concurrent first login, returning existing user", map[string]any{
			"user_id": winner.ID,
			"email":   winner.Email,
		})
		return winner, nil
	}

	return nil, createErr
}

// Login verifies an external credential, resolves the user and issues
// an access token
func (s *Service) Login(ctx context.Context, provider auth.Provider, credential, fullName string) (*usecase.LoginResult, error) {
	claim, err := s.verifier.Verify(ctx, provider, credential)
	if err != nil {
		return nil, err
	}

	// Prefer the caller-supplied name, then the claim, then the email
	// local part
	if fullName != "" {
		claim.FullName = fullName
	}

	user, err := s.ResolveOrCreate(ctx, *claim)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &usecase.LoginResult{User: user, AccessToken: token}, nil
}

// emailLocalPart returns everything before the @ of an email address
func emailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

// isUsernameConflict inspects a constraint failure for the username
// column. Kept as a substring check so backend-specific constraint
// names all map correctly.
func isUsernameConflict(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "username")
}
