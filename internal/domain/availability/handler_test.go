package availability

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type weekEnvelope struct {
	Success bool         `json:"success"`
	Data    WeekResponse `json:"data"`
}

func newTestRouter(repo *fakeRepo) http.Handler {
	h := NewHandler(newTestService(repo), "¥")
	r := chi.NewRouter()
	r.Route("/photographers/{photographerID}", h.MountWeek)
	r.Mount("/availability", h.Routes())
	return r
}

func TestWeekHandlerRendersPrice(t *testing.T) {
	repo := &fakeRepo{slots: []*Slot{slot("2026-03-05", "10:00:00", false)}}
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/photographers/"+uuid.NewString()+"/availability", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body weekEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data.Items) != 1 || body.Data.Items[0].PriceDisplay != "¥800" {
		t.Fatalf("expected a single ¥800 slot, got %+v", body.Data.Items)
	}
	if body.Data.PrevWeek != nil {
		t.Fatalf("current week must not expose prev_week")
	}
	if body.Data.WeekStart != "2026-03-02" || body.Data.NextWeek != "2026-03-09" {
		t.Fatalf("unexpected navigation %s -> %s", body.Data.WeekStart, body.Data.NextWeek)
	}
}

func TestWeekHandlerHonoursWeekParam(t *testing.T) {
	repo := &fakeRepo{}
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/photographers/"+uuid.NewString()+"/availability?week=2026-03-18", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if repo.from.Format(DateLayout) != "2026-03-16" {
		t.Fatalf("expected week of 2026-03-16, got %s", repo.from.Format(DateLayout))
	}
	var body weekEnvelope
	_ = json.NewDecoder(rec.Body).Decode(&body)
	if body.Data.PrevWeek == nil || *body.Data.PrevWeek != "2026-03-09" {
		t.Fatalf("expected prev_week 2026-03-09, got %v", body.Data.PrevWeek)
	}
}

func TestWeekHandlerRejectsBadInput(t *testing.T) {
	router := newTestRouter(&fakeRepo{})

	for _, path := range []string{
		"/photographers/not-a-uuid/availability",
		"/photographers/" + uuid.NewString() + "/availability?week=soon",
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, rec.Code)
		}
	}
}

func TestGetSlotHandler(t *testing.T) {
	s := slot("2026-03-05", "10:00:00", true)
	router := newTestRouter(&fakeRepo{byID: map[uuid.UUID]*Slot{s.ID: s}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/availability/slots/"+s.ID.String(), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/availability/slots/"+uuid.NewString(), nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
