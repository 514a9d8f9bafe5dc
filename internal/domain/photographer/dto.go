package photographer

import "github.com/google/uuid"

// Response represents a photographer in API responses
type Response struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	AvatarURL   string    `json:"avatar_url"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
	Specialties []string  `json:"specialties"`
	Categories  []string  `json:"categories"`
	Location    string    `json:"location"`
	PriceRange  string    `json:"price_range"`
	Bio         string    `json:"bio"`
	Gender      string    `json:"gender"`
	Featured    bool      `json:"featured"`
}

// SearchResponse is the body of GET /photographers.
type SearchResponse struct {
	Items           []*Response `json:"items"`
	Recommendations []*Response `json:"recommendations"`
	Total           int         `json:"total"`
}

func NewResponse(p *Photographer) *Response {
	specialties := []string(p.Specialties)
	if specialties == nil {
		specialties = []string{}
	}
	categories := []string(p.PortfolioCategories)
	if categories == nil {
		categories = []string{}
	}
	return &Response{
		ID:          p.ID,
		Name:        p.Name,
		AvatarURL:   p.AvatarURL,
		Rating:      p.Rating.Round(1).InexactFloat64(),
		ReviewCount: p.ReviewCount,
		Specialties: specialties,
		Categories:  categories,
		Location:    p.Location,
		PriceRange:  p.PriceRange,
		Bio:         p.Bio,
		Gender:      p.Gender,
		Featured:    p.Featured,
	}
}

func newResponses(list []*Photographer) []*Response {
	out := make([]*Response, len(list))
	for i, p := range list {
		out[i] = NewResponse(p)
	}
	return out
}

func NewSearchResponse(res *SearchResult) *SearchResponse {
	return &SearchResponse{
		Items:           newResponses(res.Matches),
		Recommendations: newResponses(res.Recommendations),
		Total:           len(res.Matches),
	}
}
