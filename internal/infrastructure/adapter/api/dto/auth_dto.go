package dto

// LoginRequest represents the API request for a provider login
type LoginRequest struct {
	Provider   string `json:"provider" binding:"required,oneof=google apple dev"`
	Credential string `json:"credential" binding:"required"`
	FullName   string `json:"fullName"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	User        UserResponse `json:"user"`
}
