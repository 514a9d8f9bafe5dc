package portfolio

import (
	"time"

	"github.com/google/uuid"
)

// PhotoResponse represents a portfolio photo in API responses
type PhotoResponse struct {
	ID             uuid.UUID `json:"id"`
	PhotographerID uuid.UUID `json:"photographer_id"`
	URL            string    `json:"url"`
	ThumbURL       string    `json:"thumb_url"`
	Title          string    `json:"title"`
	Category       string    `json:"category"`
	Description    string    `json:"description,omitempty"`
	TakenOn        *string   `json:"taken_on"`
	Location       string    `json:"location,omitempty"`
	Camera         string    `json:"camera,omitempty"`
	Lens           string    `json:"lens,omitempty"`
	Settings       string    `json:"settings,omitempty"`
	Width          int       `json:"width"`
	Height         int       `json:"height"`
	CreatedAt      string    `json:"created_at"`
}

// NewPhotoResponse converts entity to response DTO
func NewPhotoResponse(p *Photo) *PhotoResponse {
	resp := &PhotoResponse{
		ID:             p.ID,
		PhotographerID: p.PhotographerID,
		URL:            p.URL,
		ThumbURL:       p.ThumbURL,
		Title:          p.Title,
		Category:       p.Category,
		Description:    p.Description,
		Location:       p.Location,
		Camera:         p.Camera,
		Lens:           p.Lens,
		Settings:       p.Settings,
		Width:          p.Width,
		Height:         p.Height,
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
	}
	if p.TakenOn.Valid {
		takenOn := p.TakenOn.String
		resp.TakenOn = &takenOn
	}
	return resp
}

func newPhotoResponses(photos []*Photo) []*PhotoResponse {
	out := make([]*PhotoResponse, len(photos))
	for i, p := range photos {
		out[i] = NewPhotoResponse(p)
	}
	return out
}
