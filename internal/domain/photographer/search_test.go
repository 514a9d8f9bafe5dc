package photographer

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

func fixture() []*Photographer {
	return []*Photographer{
		{ID: uuid.New(), Name: "Lin Xiaoyu", Bio: "Natural light portraits", Gender: GenderFemale,
			Specialties: pq.StringArray{"人像", "情侣"}, PortfolioCategories: pq.StringArray{"人像", "街拍"}},
		{ID: uuid.New(), Name: "Zhang Wei", Bio: "Architecture and city rhythm", Gender: GenderMale,
			Specialties: pq.StringArray{"建筑", "街拍"}, PortfolioCategories: pq.StringArray{"建筑", "街拍"}},
		{ID: uuid.New(), Name: "Chen Mei", Bio: "Family moments", Gender: GenderFemale,
			Specialties: pq.StringArray{"家庭", "儿童"}, PortfolioCategories: pq.StringArray{"家庭", "儿童"}},
		{ID: uuid.New(), Name: "Wang Lei", Bio: "Wedding stories", Gender: GenderMale,
			Specialties: pq.StringArray{"婚纱"}},
	}
}

func names(list []*Photographer) []string {
	out := make([]string, len(list))
	for i, p := range list {
		out[i] = p.Name
	}
	return out
}

func TestSearchWithoutFilterReturnsAll(t *testing.T) {
	all := fixture()
	res := Search(all, Filter{Gender: "all", Category: "all"})
	if len(res.Matches) != len(all) || len(res.Recommendations) != 0 {
		t.Fatalf("expected all matches and no recommendations, got %v / %v", names(res.Matches), names(res.Recommendations))
	}
}

func TestSearchTermIsCaseInsensitive(t *testing.T) {
	res := Search(fixture(), Filter{Term: "ARCHITECTURE"})
	if len(res.Matches) != 1 || res.Matches[0].Name != "Zhang Wei" {
		t.Fatalf("expected Zhang Wei, got %v", names(res.Matches))
	}

	res = Search(fixture(), Filter{Term: "婚纱"})
	if len(res.Matches) != 1 || res.Matches[0].Name != "Wang Lei" {
		t.Fatalf("expected specialty match, got %v", names(res.Matches))
	}
}

func TestSearchCategoryUsesPortfolioAndSpecialties(t *testing.T) {
	res := Search(fixture(), Filter{Category: "街拍"})
	got := names(res.Matches)
	if len(got) != 2 || got[0] != "Lin Xiaoyu" || got[1] != "Zhang Wei" {
		t.Fatalf("expected Lin Xiaoyu and Zhang Wei, got %v", got)
	}
}

func TestSearchRecommendsByCategory(t *testing.T) {
	res := Search(fixture(), Filter{Gender: GenderFemale, Category: "街拍"})
	if got := names(res.Matches); len(got) != 1 || got[0] != "Lin Xiaoyu" {
		t.Fatalf("expected Lin Xiaoyu, got %v", got)
	}
	if got := names(res.Recommendations); len(got) != 1 || got[0] != "Zhang Wei" {
		t.Fatalf("expected Zhang Wei recommended, got %v", got)
	}
}

func TestSearchNoGenderRecommendationWithTerm(t *testing.T) {
	res := Search(fixture(), Filter{Term: "family", Gender: GenderFemale})
	if len(res.Matches) != 1 {
		t.Fatalf("expected one match, got %v", names(res.Matches))
	}
	if len(res.Recommendations) != 0 {
		t.Fatalf("gender recommendations need gender to be the only filter, got %v", names(res.Recommendations))
	}
}

func TestSearchRecommendationsAreCapped(t *testing.T) {
	var all []*Photographer
	for i := 0; i < 10; i++ {
		all = append(all, &Photographer{ID: uuid.New(), Name: fmt.Sprintf("P%d", i), Gender: GenderMale,
			Specialties: pq.StringArray{"风光"}})
	}
	all = append(all, &Photographer{ID: uuid.New(), Name: "Target", Gender: GenderFemale,
		Specialties: pq.StringArray{"风光"}})

	res := Search(all, Filter{Term: "target", Category: "风光"})
	if len(res.Matches) != 1 {
		t.Fatalf("expected one match, got %v", names(res.Matches))
	}
	if len(res.Recommendations) != maxRecommendations {
		t.Fatalf("expected %d recommendations, got %d", maxRecommendations, len(res.Recommendations))
	}
	for _, p := range res.Recommendations {
		if p.Name == "Target" {
			t.Fatalf("exact matches must not be recommended")
		}
	}
}

func TestSearchEnoughMatchesSkipsRecommendations(t *testing.T) {
	all := fixture()
	all = append(all, &Photographer{ID: uuid.New(), Name: "Extra", Gender: GenderFemale, Specialties: pq.StringArray{"人像"}})

	res := Search(all, Filter{Gender: GenderFemale})
	if len(res.Matches) != 3 || len(res.Recommendations) != 0 {
		t.Fatalf("expected 3 matches and no recommendations, got %v / %v", names(res.Matches), names(res.Recommendations))
	}
}
