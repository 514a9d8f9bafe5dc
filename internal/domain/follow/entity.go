package follow

import (
	"time"

	"github.com/google/uuid"
)

// Follow is a user's subscription to a photographer.
type Follow struct {
	ID             uuid.UUID `json:"id" db:"id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	PhotographerID uuid.UUID `json:"photographer_id" db:"photographer_id"`
	FollowedAt     time.Time `json:"followed_at" db:"followed_at"`
}

// Status is the follow state of one photographer as seen by one user.
type Status struct {
	PhotographerID uuid.UUID `json:"photographer_id"`
	Following      bool      `json:"following"`
	Followers      int       `json:"followers"`
}
