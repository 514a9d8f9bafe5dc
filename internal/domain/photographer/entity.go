package photographer

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Gender values; "all" is only meaningful as a filter.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderAll    = "all"
)

// Photographer is a directory entry.
type Photographer struct {
	ID          uuid.UUID       `db:"id"`
	UserID      *uuid.UUID      `db:"user_id"` // account that manages the profile
	Name        string          `db:"name"`
	AvatarURL   string          `db:"avatar_url"`
	Rating      decimal.Decimal `db:"rating"`
	ReviewCount int             `db:"review_count"`
	Specialties pq.StringArray  `db:"specialties"`
	Location    string          `db:"location"`
	PriceRange  string          `db:"price_range"`
	Bio         string          `db:"bio"`
	Gender      string          `db:"gender"`
	Featured    bool            `db:"featured"`
	CreatedAt   time.Time       `db:"created_at"`

	// PortfolioCategories are the distinct categories of the portfolio photos.
	PortfolioCategories pq.StringArray `db:"portfolio_categories"`
}

// ManagedBy reports whether userID owns the profile.
func (p *Photographer) ManagedBy(userID uuid.UUID) bool {
	return p.UserID != nil && *p.UserID == userID
}
