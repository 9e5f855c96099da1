package dto

import (
	"time"

	"github.com/campuspoints/points-api/internal/domain/entity"
)

// UserResponse represents a user profile in API responses
type UserResponse struct {
	ID          uint64    `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	FullName    string    `json:"fullName,omitempty"`
	Balance     int64     `json:"balance"`
	GiftBalance int64     `json:"giftBalance"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewUserResponse maps a user entity to its API representation
func NewUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		FullName:    user.FullName,
		Balance:     user.Balance,
		GiftBalance: user.GiftBalance,
		Role:        string(user.Role),
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
	}
}

// NewUserListResponse maps a slice of users
func NewUserListResponse(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}
