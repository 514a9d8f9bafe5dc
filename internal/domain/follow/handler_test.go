package follow

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pandalens/pandalens-api/internal/pkg/response"
	"github.com/pandalens/pandalens-api/internal/pkg/session"
)

func withSession(userID uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID != uuid.Nil {
				r = r.WithContext(session.WithSession(r.Context(), &session.Session{UserID: userID}))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func newTestRouter(svc *Service, userID uuid.UUID) http.Handler {
	h := NewHandler(svc)
	r := chi.NewRouter()
	r.Route("/photographers/{photographerID}", func(r chi.Router) {
		h.MountPhotographer(r, withSession(userID))
	})
	r.Mount("/me", h.MeRoutes(withSession(userID)))
	return r
}

func TestToggleHandlerGuestGetsAuthRequired(t *testing.T) {
	photographerID := uuid.New()
	router := newTestRouter(newTestService(newFakeRepo(), photographerID), uuid.Nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/photographers/"+photographerID.String()+"/follow/toggle", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var env response.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Error == nil || env.Error.Code != response.CodeAuthRequired {
		t.Fatalf("expected AUTH_REQUIRED, got %+v", env.Error)
	}
}

func TestToggleHandlerRoundTrip(t *testing.T) {
	photographerID := uuid.New()
	repo := newFakeRepo()
	router := newTestRouter(newTestService(repo, photographerID), uuid.New())
	path := "/photographers/" + photographerID.String() + "/follow"

	for _, want := range []bool{true, false} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path+"/toggle", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var env struct {
			Data Status `json:"data"`
		}
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
		if env.Data.Following != want {
			t.Fatalf("expected following=%v, got %+v", want, env.Data)
		}
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, path, nil))
	if rec.Code != http.StatusOK || len(repo.rows) != 1 {
		t.Fatalf("PUT should follow, got %d rows=%d", rec.Code, len(repo.rows))
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path+"/count", nil))
	var count struct {
		Data map[string]int `json:"data"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &count)
	if rec.Code != http.StatusOK || count.Data["followers"] != 1 {
		t.Fatalf("expected 1 follower, got %d %+v", rec.Code, count.Data)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me/follows", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, path, nil))
	if rec.Code != http.StatusOK || len(repo.rows) != 0 {
		t.Fatalf("DELETE should unfollow, got %d rows=%d", rec.Code, len(repo.rows))
	}
}

func TestFollowHandlerBadID(t *testing.T) {
	router := newTestRouter(newTestService(newFakeRepo()), uuid.New())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/photographers/abc/follow", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
