package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestMountPhotographerRoutes_SharedPhotographerRouter(t *testing.T) {
	root := chi.NewRouter()

	okHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/photographers" && chi.URLParam(r, "photographerID") != "p1" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}

	func() {
		defer func() {
			if rec := recover(); rec != nil {
				t.Fatalf("registering photographer routes panicked: %v", rec)
			}
		}()
		mountPhotographerRoutes(root,
			func(r chi.Router) { r.Get("/", okHandler) },
			func(r chi.Router) { r.Get("/", okHandler) },
			func(r chi.Router) { r.Get("/availability", okHandler) },
			func(r chi.Router) {
				r.Route("/follow", func(r chi.Router) { r.Post("/toggle", okHandler) })
			},
			func(r chi.Router) {
				r.Route("/portfolio", func(r chi.Router) { r.Delete("/{photoID}", okHandler) })
			},
		)
	}()

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"directory", http.MethodGet, "/photographers"},
		{"profile", http.MethodGet, "/photographers/p1"},
		{"availability", http.MethodGet, "/photographers/p1/availability"},
		{"follow toggle", http.MethodPost, "/photographers/p1/follow/toggle"},
		{"portfolio delete", http.MethodDelete, "/photographers/p1/portfolio/ph1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			root.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))
			if rr.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rr.Code)
			}
		})
	}
}
