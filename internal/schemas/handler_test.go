package schemas

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newRouter() http.Handler {
	h := NewHandler()
	r := chi.NewRouter()
	r.Get("/api/schemas", h.List)
	r.Get("/api/schemas/{name}", h.Get)
	return r
}

func TestListSchemas(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/schemas", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var out map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, name := range []string{"video-create", "video-update", "client-create", "contact"} {
		if _, ok := out[name]; !ok {
			t.Fatalf("missing schema %s", name)
		}
	}
}

func TestGetSchema(t *testing.T) {
	r := newRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/schemas/client-create", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var schema struct {
		Required []string `json:"required"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &schema); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(schema.Required) != 1 || schema.Required[0] != "name" {
		t.Fatalf("unexpected required fields %v", schema.Required)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/schemas/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
