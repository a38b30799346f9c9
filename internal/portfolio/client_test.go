package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio-backend/internal/content"
	"portfolio-backend/internal/middleware"
)

func TestAPIClientVideosDropsInvalidRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{"id":"v1","title":"Reel","youtubeId":"x","category":"short"},
			{"id":"v2","title":"Broken","youtubeId":"y","category":"vertical"},
			{"id":"v3","title":"Doc","youtubeId":"z","category":"long"}
		]`)
	}))
	defer srv.Close()

	client := NewAPIClient(srv.URL, "", nil, quietLogger())
	videos, err := client.Videos(context.Background())
	if err != nil {
		t.Fatalf("Videos error: %v", err)
	}
	if len(videos) != 2 || videos[0].ID != "v1" || videos[1].ID != "v3" {
		t.Fatalf("unexpected videos: %+v", videos)
	}
}

func TestAPIClientCollapsesFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"status": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, `[]`)
		},
		"malformed": func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"not":"a list"`)
		},
	}
	for name, handler := range cases {
		srv := httptest.NewServer(handler)
		client := NewAPIClient(srv.URL, "", nil, quietLogger())
		if _, err := client.Clients(context.Background()); !errors.Is(err, ErrRequestFailed) {
			t.Fatalf("%s: expected ErrRequestFailed, got %v", name, err)
		}
		srv.Close()
	}

	client := NewAPIClient("http://127.0.0.1:1", "", nil, quietLogger())
	if err := client.DeleteVideo(context.Background(), "v1"); !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("transport: expected ErrRequestFailed, got %v", err)
	}
}

func TestAPIClientWrites(t *testing.T) {
	var gotKey, gotPath, gotMethod string
	var gotBody content.VideoInput
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get(middleware.AdminKeyHeader)
		gotPath = r.URL.EscapedPath()
		gotMethod = r.Method
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPost {
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			w.WriteHeader(http.StatusCreated)
			io.WriteString(w, `{"id":"new","title":"Reel","youtubeId":"x","category":"short"}`)
			return
		}
		io.WriteString(w, `{"status":"deleted"}`)
	}))
	defer srv.Close()

	client := NewAPIClient(srv.URL+"/", "key-1", nil, quietLogger())
	created, err := client.CreateVideo(context.Background(), content.VideoInput{Title: "Reel", YouTubeID: "x", Category: "short"})
	if err != nil || created.ID != "new" {
		t.Fatalf("CreateVideo = %+v, %v", created, err)
	}
	if gotKey != "key-1" || gotBody.YouTubeID != "x" {
		t.Fatalf("unexpected request: key %q body %+v", gotKey, gotBody)
	}

	if err := client.DeleteClient(context.Background(), "client/1"); err != nil {
		t.Fatalf("DeleteClient error: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/clients/client%2F1" {
		t.Fatalf("unexpected delete request %s %s", gotMethod, gotPath)
	}
}
