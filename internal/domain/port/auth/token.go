package auth

// TokenIssuer mints and validates opaque access tokens for users
type TokenIssuer interface {
	// Issue returns a signed access token for the user
	Issue(userID uint64) (string, error)
	// Parse validates a token and returns the user ID it was issued for
	Parse(token string) (uint64, error)
}
