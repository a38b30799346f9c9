// Package site renders the public landing page.
package site

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"portfolio-backend/internal/content"
	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/portfolio"
	"portfolio-backend/internal/transport"
)

//go:embed templates/*.html
var templateFS embed.FS

type videoView struct {
	content.Video
	DescriptionHTML template.HTML
	ThumbnailURL    string
	FallbackURL     string
}

type clientView struct {
	content.Client
	DescriptionHTML template.HTML
	Initial         string
}

type certificateView struct {
	content.Certificate
	DescriptionHTML template.HTML
}

type pageView struct {
	Longs            []videoView
	Shorts           []videoView
	Clients          []clientView
	Certificates     []certificateView
	ShowCertificates bool
	Modal            portfolio.ModalSnapshot
}

type Handler struct {
	source           portfolio.Source
	withCertificates bool
	tmpl             *template.Template
	md               goldmark.Markdown
	log              *slog.Logger
}

func NewHandler(source portfolio.Source, withCertificates bool, log *slog.Logger) *Handler {
	return &Handler{
		source:           source,
		withCertificates: withCertificates,
		tmpl:             template.Must(template.ParseFS(templateFS, "templates/landing.html")),
		md:               goldmark.New(goldmark.WithRendererOptions(goldmarkHTML.WithHardWraps())),
		log:              log,
	}
}

// Index renders the landing page from a fresh aggregation pass.
// ?watch={videoId} and ?certificate={certificateId} open the modal.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	log := middleware.LoggerFromRequest(h.log, r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	page := portfolio.NewPage(h.source, h.withCertificates, log)
	report := page.Load(ctx)
	if err := report.Err(); err != nil {
		log.Warn("landing render: partial content", slog.String("error", err.Error()))
	}

	var modal portfolio.Modal
	if id := strings.TrimSpace(r.URL.Query().Get("watch")); id != "" {
		if v, ok := page.FindVideo(id); ok {
			modal.Open(portfolio.VideoItem(v))
		}
	} else if id := strings.TrimSpace(r.URL.Query().Get("certificate")); id != "" && h.withCertificates {
		if c, ok := page.FindCertificate(id); ok {
			modal.Open(portfolio.CertificateItem(c))
		}
	}

	longs, shorts := page.Sections()
	view := pageView{
		Longs:            h.videoViews(longs),
		Shorts:           h.videoViews(shorts),
		Clients:          h.clientViews(page.Clients()),
		ShowCertificates: h.withCertificates,
		Modal:            modal.Snapshot(),
	}
	if h.withCertificates {
		view.Certificates = h.certificateViews(page.Certificates())
	}

	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "landing.html", view); err != nil {
		log.Error("landing render: template error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "render error", nil)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) markdown(src string) template.HTML {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := h.md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	// goldmark drops raw HTML unless WithUnsafe is set.
	return template.HTML(buf.String())
}

func (h *Handler) videoViews(videos []content.Video) []videoView {
	out := make([]videoView, 0, len(videos))
	for _, v := range videos {
		out = append(out, videoView{
			Video:           v,
			DescriptionHTML: h.markdown(v.Description),
			ThumbnailURL:    ThumbnailURL(v),
			FallbackURL:     youtubeThumbnail(v.YouTubeID, "hqdefault"),
		})
	}
	return out
}

func (h *Handler) clientViews(clients []content.Client) []clientView {
	out := make([]clientView, 0, len(clients))
	for _, c := range clients {
		initial := ""
		if r, _ := utf8.DecodeRuneInString(strings.TrimSpace(c.Name)); r != utf8.RuneError {
			initial = strings.ToUpper(string(r))
		}
		out = append(out, clientView{Client: c, DescriptionHTML: h.markdown(c.Description), Initial: initial})
	}
	return out
}

func (h *Handler) certificateViews(certs []content.Certificate) []certificateView {
	out := make([]certificateView, 0, len(certs))
	for _, c := range certs {
		out = append(out, certificateView{Certificate: c, DescriptionHTML: h.markdown(c.Description)})
	}
	return out
}

// ThumbnailURL prefers the stored override and falls back to the YouTube
// still.
func ThumbnailURL(v content.Video) string {
	if t := strings.TrimSpace(v.Thumbnail); t != "" {
		return t
	}
	return youtubeThumbnail(v.YouTubeID, "maxresdefault")
}

func youtubeThumbnail(youtubeID, quality string) string {
	return "https://img.youtube.com/vi/" + youtubeID + "/" + quality + ".jpg"
}
