package certificates

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portfolio-backend/internal/content"
	"portfolio-backend/internal/content/contenttest"
	"portfolio-backend/internal/validation"
)

func TestListDropsInvalidAndOrdersByIssuedAt(t *testing.T) {
	store := contenttest.NewSQLite(t)
	ctx := context.Background()
	docs := map[string]content.Document{
		"cert.a": {"title": "Color grading", "imageUrl": "https://img.example/a.png", "issuedAt": "2023-04-01"},
		"cert.b": {"title": "Motion design", "imageUrl": "https://img.example/b.png", "issuedAt": "2024-11-20", "issuer": "Academy"},
		"cert.c": {"title": "No image"},
	}
	for id, doc := range docs {
		if err := store.CreateIfMissing(ctx, content.TypeCertificate, id, doc); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(NewService(store, nil, time.Minute, validation.New(), log), log)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/certificates", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var items []content.Certificate
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected invalid certificate dropped, got %+v", items)
	}
	if items[0].ID != "cert.b" || items[0].Issuer != "Academy" {
		t.Fatalf("expected newest first, got %+v", items)
	}
}
