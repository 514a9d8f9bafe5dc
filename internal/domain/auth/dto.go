package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/pandalens/pandalens-api/internal/domain/user"
)

// SignUpRequest for POST /auth/sign-up
type SignUpRequest struct {
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,min=6,max=128"`
	DisplayName string `json:"display_name" validate:"max=100"`
}

// SignInRequest for POST /auth/sign-in
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

// RefreshRequest for POST /auth/refresh and /auth/sign-out
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse returned after sign-in or sign-up
type AuthResponse struct {
	User    UserResponse   `json:"user"`
	Tokens  TokensResponse `json:"tokens"`
	Created bool           `json:"created"` // account was created by this request
}

// UserResponse represents user in API response
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	CreatedAt   string    `json:"created_at"`
}

// SessionResponse is the body of GET /auth/session. User is null for guests.
type SessionResponse struct {
	User *UserResponse `json:"user"`
}

// TokensResponse represents tokens in API response
type TokensResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"` // seconds until access token expires
	TokenType    string `json:"token_type"`
}

// NewUserResponse creates UserResponse from user
func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}
