package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"portfolio-backend/internal/auth"
	"portfolio-backend/internal/content"
)

type fakeAPI struct {
	mu       sync.Mutex
	videos   []content.Video
	clients  []content.Client
	requests []string
	adminKey string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	f.adminKey = r.Header.Get("X-Admin-Key")
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/videos":
		_ = json.NewEncoder(w).Encode(f.videos)
	case r.Method == http.MethodGet && r.URL.Path == "/api/clients":
		_ = json.NewEncoder(w).Encode(f.clients)
	case r.Method == http.MethodGet && r.URL.Path == "/api/certificates":
		io.WriteString(w, `[{"id":"cert1","title":"Resolve","imageUrl":"https://img.example/c.png","issuedAt":"2024-03-15"}]`)
	case r.Method == http.MethodPost && r.URL.Path == "/api/videos":
		var in content.VideoInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		v := in.Video("v-new")
		f.videos = append([]content.Video{v}, f.videos...)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(v)
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/clients/"):
		id := strings.TrimPrefix(r.URL.Path, "/api/clients/")
		for i, c := range f.clients {
			if c.ID == id {
				f.clients = append(f.clients[:i], f.clients[i+1:]...)
				io.WriteString(w, `{"status":"deleted"}`)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error":"client not found"}`)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeAPI) sawRequest(req string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if r == req {
			return true
		}
	}
	return false
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(strings.NewReader(stdin))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVideoAdd(t *testing.T) {
	api := &fakeAPI{}
	srv := httptest.NewServer(api)
	defer srv.Close()

	out, err := run(t, "", "--api-url", srv.URL, "--admin-key", "k1",
		"video", "add", "--title", "Promo", "--youtube-id", "abc", "--category", "short")
	if err != nil {
		t.Fatalf("video add error: %v", err)
	}
	for _, want := range []string{"video add: loading", "video add: success", "created v-new"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if !api.sawRequest("GET /api/videos") {
		t.Fatalf("video list was not refreshed after create")
	}
	if api.adminKey != "k1" {
		t.Fatalf("admin key not sent")
	}
}

func TestClientDeleteNeedsConfirmation(t *testing.T) {
	api := &fakeAPI{clients: []content.Client{{ID: "c1", Name: "Studio"}}}
	srv := httptest.NewServer(api)
	defer srv.Close()

	_, err := run(t, "n\n", "--api-url", srv.URL, "client", "delete", "c1")
	if err == nil || err.Error() != "cancelled" {
		t.Fatalf("expected cancelled, got %v", err)
	}
	if api.sawRequest("DELETE /api/clients/c1") {
		t.Fatalf("delete issued without confirmation")
	}

	out, err := run(t, "", "--api-url", srv.URL, "client", "delete", "c1", "--yes")
	if err != nil {
		t.Fatalf("client delete error: %v", err)
	}
	if !strings.Contains(out, "deleted c1") || !api.sawRequest("DELETE /api/clients/c1") {
		t.Fatalf("unexpected output %s", out)
	}

	_, err = run(t, "y\n", "--api-url", srv.URL, "client", "delete", "c1")
	if err == nil || !strings.Contains(err.Error(), "request failed") {
		t.Fatalf("expected request failure for unknown client, got %v", err)
	}
}

func TestList(t *testing.T) {
	api := &fakeAPI{
		videos: []content.Video{
			{ID: "v1", Title: "Brand film", YouTubeID: "a", Category: "long"},
			{ID: "v2", Title: "Reel", YouTubeID: "b", Category: "short"},
		},
		clients: []content.Client{{ID: "c1", Name: "Studio"}},
	}
	srv := httptest.NewServer(api)
	defer srv.Close()

	out, err := run(t, "", "--api-url", srv.URL, "list")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	long := strings.Index(out, "LONG FORM")
	reels := strings.Index(out, "REELS")
	if long < 0 || reels < 0 || !strings.Contains(out[long:reels], "v1") || !strings.Contains(out[reels:], "v2") {
		t.Fatalf("unexpected list output:\n%s", out)
	}
	if !strings.Contains(out, "Studio") || !strings.Contains(out, "cert1") {
		t.Fatalf("clients or certificates missing:\n%s", out)
	}
}

func TestHashPassword(t *testing.T) {
	out, err := run(t, "s3cret\n", "hash-password")
	if err != nil {
		t.Fatalf("hash-password error: %v", err)
	}
	if err := auth.ComparePassword(strings.TrimSpace(out), "s3cret"); err != nil {
		t.Fatalf("hash does not match: %v", err)
	}
}
