package user

import (
	"time"

	"github.com/google/uuid"
)

// Role of an account.
type Role string

const (
	RoleClient       Role = "client"
	RolePhotographer Role = "photographer"
)

// User represents a user account
type User struct {
	ID           uuid.UUID  `db:"id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	DisplayName  string     `db:"display_name"`
	Role         Role       `db:"role"`
	LastSignInAt *time.Time `db:"last_sign_in_at"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

