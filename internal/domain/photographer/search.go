package photographer

import "strings"

const (
	// recommendThreshold is the exact-match count below which recommendations are offered.
	recommendThreshold = 3
	maxRecommendations = 6
)

// Filter narrows the directory. Empty fields and "all" match everything.
type Filter struct {
	Term     string `json:"q" validate:"max=100"`
	Gender   string `json:"gender" validate:"gender_filter"`
	Category string `json:"category" validate:"max=50"`
}

func (f Filter) normalized() Filter {
	f.Term = strings.TrimSpace(f.Term)
	f.Gender = strings.TrimSpace(f.Gender)
	f.Category = strings.TrimSpace(f.Category)
	if f.Gender == GenderAll {
		f.Gender = ""
	}
	if f.Category == "all" {
		f.Category = ""
	}
	return f
}

// Active reports whether any filter is set.
func (f Filter) Active() bool {
	f = f.normalized()
	return f.Term != "" || f.Gender != "" || f.Category != ""
}

// SearchResult splits the directory into exact matches and similar profiles.
type SearchResult struct {
	Matches         []*Photographer
	Recommendations []*Photographer
}

// Search applies f to all, keeping the input order. When a filter is active
// and fewer than three photographers match, up to six others are recommended:
// by category when one is set, otherwise by gender when gender is the only
// filter.
func Search(all []*Photographer, f Filter) *SearchResult {
	f = f.normalized()
	res := &SearchResult{Matches: []*Photographer{}, Recommendations: []*Photographer{}}

	matched := make(map[*Photographer]bool)
	for _, p := range all {
		if matchesTerm(p, f.Term) && matchesGender(p, f.Gender) && matchesCategory(p, f.Category) {
			res.Matches = append(res.Matches, p)
			matched[p] = true
		}
	}

	if len(res.Matches) >= recommendThreshold || !f.Active() {
		return res
	}

	for _, p := range all {
		if len(res.Recommendations) == maxRecommendations {
			break
		}
		if matched[p] {
			continue
		}
		switch {
		case f.Category != "":
			if matchesCategory(p, f.Category) {
				res.Recommendations = append(res.Recommendations, p)
			}
		case f.Gender != "" && f.Term == "":
			if p.Gender == f.Gender {
				res.Recommendations = append(res.Recommendations, p)
			}
		}
	}
	return res
}

func matchesTerm(p *Photographer, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(p.Name), term) || strings.Contains(strings.ToLower(p.Bio), term) {
		return true
	}
	for _, s := range p.Specialties {
		if strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}

func matchesGender(p *Photographer, gender string) bool {
	return gender == "" || p.Gender == gender
}

func matchesCategory(p *Photographer, category string) bool {
	if category == "" {
		return true
	}
	for _, c := range p.PortfolioCategories {
		if strings.Contains(c, category) {
			return true
		}
	}
	for _, s := range p.Specialties {
		if strings.Contains(s, category) {
			return true
		}
	}
	return false
}
