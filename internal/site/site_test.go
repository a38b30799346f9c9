package site

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio-backend/internal/content"
	"portfolio-backend/internal/portfolio"
)

func testSource(clientsErr error) portfolio.SourceFuncs {
	return portfolio.SourceFuncs{
		VideosFunc: func(context.Context) ([]content.Video, error) {
			return []content.Video{
				{ID: "v1", Title: "Brand Film", YouTubeID: "abc123", Category: content.CategoryLong, Description: "Shot on **location**"},
				{ID: "v2", Title: "Quick Reel", YouTubeID: "def456", Category: content.CategoryShort, Thumbnail: "https://cdn.example/reel.jpg"},
			}, nil
		},
		ClientsFunc: func(context.Context) ([]content.Client, error) {
			if clientsErr != nil {
				return nil, clientsErr
			}
			return []content.Client{{ID: "c1", Name: "northwind", Description: "<script>alert(1)</script>"}}, nil
		},
		CertificatesFunc: func(context.Context) ([]content.Certificate, error) {
			return []content.Certificate{{ID: "cert1", Title: "Colorist", ImageURL: "https://cdn.example/cert.png", Issuer: "Academy"}}, nil
		},
	}
}

func render(t *testing.T, h *Handler, target string) string {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Index(rec, httptest.NewRequest(http.MethodGet, target, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	return rec.Body.String()
}

func newTestHandler(src portfolio.Source, withCertificates bool) *Handler {
	return NewHandler(src, withCertificates, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestIndexRendersSections(t *testing.T) {
	body := render(t, newTestHandler(testSource(nil), true), "/")

	longStart := strings.Index(body, `id="long-form"`)
	reelsStart := strings.Index(body, `id="reels"`)
	if longStart < 0 || reelsStart < 0 {
		t.Fatalf("missing sections")
	}
	longSection := body[longStart:reelsStart]
	if !strings.Contains(longSection, `data-video-id="v1"`) || strings.Contains(longSection, `data-video-id="v2"`) {
		t.Fatalf("long-form section wrong: %s", longSection)
	}
	if !strings.Contains(body[reelsStart:], `data-video-id="v2"`) {
		t.Fatalf("reel missing from reels section")
	}
	if !strings.Contains(body, "https://img.youtube.com/vi/abc123/maxresdefault.jpg") || !strings.Contains(body, "https://cdn.example/reel.jpg") {
		t.Fatalf("thumbnails not rendered")
	}
	if !strings.Contains(body, "<strong>location</strong>") {
		t.Fatalf("markdown description not rendered")
	}
	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Fatalf("raw html from description leaked")
	}
	if !strings.Contains(body, `data-certificate-id="cert1"`) {
		t.Fatalf("certificates missing")
	}
	if strings.Contains(body, `class="modal"`) {
		t.Fatalf("modal should be closed")
	}
}

func TestIndexClientFailureKeepsVideos(t *testing.T) {
	body := render(t, newTestHandler(testSource(errors.New("store down")), false), "/")
	if !strings.Contains(body, `data-video-id="v1"`) {
		t.Fatalf("videos missing when clients failed")
	}
	if strings.Contains(body, `id="clients"`) {
		t.Fatalf("clients section should be hidden")
	}
	if strings.Contains(body, `id="certificates"`) {
		t.Fatalf("certificates should be disabled")
	}
}

func TestIndexWatchOpensModal(t *testing.T) {
	h := newTestHandler(testSource(nil), true)

	body := render(t, h, "/?watch=v2")
	if !strings.Contains(body, `data-state="opening"`) || !strings.Contains(body, `id="modal-loading"`) {
		t.Fatalf("modal not opening: %s", body)
	}
	if !strings.Contains(body, "https://www.youtube.com/embed/def456") {
		t.Fatalf("embed url missing")
	}

	body = render(t, h, "/?certificate=cert1")
	if !strings.Contains(body, `class="modal"`) || !strings.Contains(body, `alt="Colorist"`) {
		t.Fatalf("certificate modal missing")
	}

	body = render(t, h, "/?watch=unknown")
	if strings.Contains(body, `class="modal"`) {
		t.Fatalf("unknown id should not open the modal")
	}
}

func TestThumbnailURL(t *testing.T) {
	if got := ThumbnailURL(content.Video{YouTubeID: "xyz"}); got != "https://img.youtube.com/vi/xyz/maxresdefault.jpg" {
		t.Fatalf("unexpected thumbnail %s", got)
	}
	if got := ThumbnailURL(content.Video{YouTubeID: "xyz", Thumbnail: " https://cdn.example/t.jpg "}); got != "https://cdn.example/t.jpg" {
		t.Fatalf("override ignored: %s", got)
	}
}
