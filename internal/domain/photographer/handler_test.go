package photographer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type fakeRepo struct {
	list []*Photographer
}

func (f *fakeRepo) List(ctx context.Context) ([]*Photographer, error) { return f.list, nil }

func (f *fakeRepo) ListFeatured(ctx context.Context, limit int) ([]*Photographer, error) {
	var out []*Photographer
	for _, p := range f.list {
		if p.Featured && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Photographer, error) {
	for _, p := range f.list {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, ErrPhotographerNotFound
}

func (f *fakeRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := f.GetByID(ctx, id)
	return err == nil, nil
}

func newTestRouter(repo Repository) http.Handler {
	h := NewHandler(NewService(repo))
	r := chi.NewRouter()
	r.Route("/photographers", func(r chi.Router) {
		h.MountDirectory(r)
		r.Route("/{photographerID}", h.MountProfile)
	})
	return r
}

func TestSearchHandler(t *testing.T) {
	router := newTestRouter(&fakeRepo{list: fixture()})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/photographers?gender=female&category=%E8%A1%97%E6%8B%8D", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var env struct {
		Data SearchResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.Total != 1 || len(env.Data.Recommendations) != 1 {
		t.Fatalf("unexpected result %+v", env.Data)
	}
}

func TestSearchHandlerRejectsUnknownGender(t *testing.T) {
	router := newTestRouter(&fakeRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/photographers?gender=robot", nil))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestGetHandler(t *testing.T) {
	p := fixture()[0]
	p.Rating = decimal.RequireFromString("4.85")
	p.Featured = true
	router := newTestRouter(&fakeRepo{list: []*Photographer{p}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/photographers/"+p.ID.String(), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var env struct {
		Data Response `json:"data"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if env.Data.Rating != 4.9 || env.Data.Name != p.Name {
		t.Fatalf("unexpected response %+v", env.Data)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/photographers/"+uuid.NewString(), nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/photographers/featured", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for featured, got %d", rec.Code)
	}
}
