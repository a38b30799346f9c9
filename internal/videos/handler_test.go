package videos

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"portfolio-backend/internal/cache"
	"portfolio-backend/internal/content"
	"portfolio-backend/internal/content/contenttest"
	"portfolio-backend/internal/validation"

	"github.com/go-chi/chi/v5"
)

type mapCache map[string][]byte

func (m mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m[key] = value
	return nil
}

func (m mapCache) Delete(_ context.Context, key string) error {
	delete(m, key)
	return nil
}

func newTestRouter(t *testing.T, store content.Store, c cache.Cache) http.Handler {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	val := validation.New()
	h := NewHandler(NewService(store, c, time.Minute, val, log), val, log)

	r := chi.NewRouter()
	r.Get("/api/videos", h.List)
	r.Post("/api/videos", h.Create)
	r.Put("/api/videos", h.Update)
	r.Delete("/api/videos/{id}", h.Delete)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeVideos(t *testing.T, rec *httptest.ResponseRecorder) []content.Video {
	t.Helper()
	var items []content.Video
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode videos: %v (%s)", err, rec.Body.String())
	}
	return items
}

func TestCreateThenList(t *testing.T) {
	router := newTestRouter(t, contenttest.NewSQLite(t), nil)

	rec := do(t, router, http.MethodPost, "/api/videos", `{"title":" Brand film ","youtubeId":"dQw4w9WgXcQ","category":"long"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created content.Video
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ID == "" || created.Title != "Brand film" {
		t.Fatalf("unexpected created video: %+v", created)
	}

	rec = do(t, router, http.MethodGet, "/api/videos", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	items := decodeVideos(t, rec)
	if len(items) != 1 || items[0].ID != created.ID || items[0].YouTubeID != "dQw4w9WgXcQ" {
		t.Fatalf("unexpected list: %+v", items)
	}
}

func TestCreateValidation(t *testing.T) {
	router := newTestRouter(t, contenttest.NewSQLite(t), nil)

	rec := do(t, router, http.MethodPost, "/api/videos", `{"title":"Reel","youtubeId":"x","category":"medium"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"Category":"oneof"`) {
		t.Fatalf("expected category detail, got %s", rec.Body.String())
	}

	rec = do(t, router, http.MethodPost, "/api/videos", `{"id":"x","title":"Reel","youtubeId":"x","category":"short"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for id on create, got %d", rec.Code)
	}
}

func TestListFailureReturnsEmptyArray(t *testing.T) {
	store := contenttest.NewFlaky(contenttest.NewSQLite(t))
	store.SetDown(content.TypeVideo, true)
	router := newTestRouter(t, store, nil)

	rec := do(t, router, http.MethodGet, "/api/videos", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), contenttest.ErrUnavailable.Error()) {
		t.Fatalf("store error leaked to caller")
	}
}

func TestUpdateAndDelete(t *testing.T) {
	router := newTestRouter(t, contenttest.NewSQLite(t), nil)

	rec := do(t, router, http.MethodPost, "/api/videos", `{"title":"Cut","youtubeId":"a","category":"short"}`)
	var created content.Video
	_ = json.Unmarshal(rec.Body.Bytes(), &created)

	body := `{"id":"` + created.ID + `","title":"Final cut","youtubeId":"a","category":"long","thumbnail":"https://img.example/t.jpg"}`
	rec = do(t, router, http.MethodPut, "/api/videos", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	items := decodeVideos(t, do(t, router, http.MethodGet, "/api/videos", ""))
	if len(items) != 1 || items[0].Title != "Final cut" || items[0].Category != "long" || items[0].Thumbnail == "" {
		t.Fatalf("update not visible: %+v", items)
	}

	rec = do(t, router, http.MethodPut, "/api/videos", `{"id":"missing","title":"x","youtubeId":"y","category":"long"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = do(t, router, http.MethodDelete, "/api/videos/"+created.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec = do(t, router, http.MethodDelete, "/api/videos/"+created.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
	if items := decodeVideos(t, do(t, router, http.MethodGet, "/api/videos", "")); len(items) != 0 {
		t.Fatalf("expected empty list, got %+v", items)
	}
}

func TestMutationInvalidatesCache(t *testing.T) {
	store := contenttest.NewFlaky(contenttest.NewSQLite(t))
	c := mapCache{}
	router := newTestRouter(t, store, c)

	do(t, router, http.MethodGet, "/api/videos", "")
	do(t, router, http.MethodGet, "/api/videos", "")
	if got := store.Fetches(content.TypeVideo); got != 1 {
		t.Fatalf("expected cached second read, got %d fetches", got)
	}

	do(t, router, http.MethodPost, "/api/videos", `{"title":"New","youtubeId":"n","category":"short"}`)
	items := decodeVideos(t, do(t, router, http.MethodGet, "/api/videos", ""))
	if len(items) != 1 {
		t.Fatalf("expected fresh read after create, got %+v", items)
	}
	if got := store.Fetches(content.TypeVideo); got != 2 {
		t.Fatalf("expected 2 fetches, got %d", got)
	}
}

// heldStore pauses the first list read after it has read the store, until
// release is closed.
type heldStore struct {
	content.Store
	fetched chan struct{}
	release chan struct{}
	once    sync.Once
}

func (h *heldStore) Fetch(ctx context.Context, q content.Query) ([]content.Document, error) {
	docs, err := h.Store.Fetch(ctx, q)
	h.once.Do(func() {
		close(h.fetched)
		<-h.release
	})
	return docs, err
}

func TestListRacingCreateDoesNotCacheStaleList(t *testing.T) {
	store := &heldStore{
		Store:   contenttest.NewSQLite(t),
		fetched: make(chan struct{}),
		release: make(chan struct{}),
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(store, mapCache{}, time.Minute, validation.New(), log)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := svc.List(ctx); err != nil {
			t.Errorf("List error: %v", err)
		}
	}()
	<-store.fetched

	created, err := svc.Create(ctx, content.VideoInput{Title: "Launch", YouTubeID: "abc", Category: "long"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	close(store.release)
	<-done

	items, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(items) != 1 || items[0].ID != created.ID {
		t.Fatalf("expected list to contain %s after create, got %+v", created.ID, items)
	}
}
