package portfolio

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"portfolio-backend/internal/content"
)

// LoadReport carries the outcome of each fetch of one aggregation pass.
type LoadReport struct {
	Videos       error
	Clients      error
	Certificates error
}

func (r LoadReport) Err() error {
	return errors.Join(r.Videos, r.Clients, r.Certificates)
}

// Page holds the lists shown by one page view. Each list starts empty and is
// only ever replaced as a whole by a successful fetch.
type Page struct {
	source           Source
	withCertificates bool
	log              *slog.Logger

	mu           sync.RWMutex
	videos       []content.Video
	clients      []content.Client
	certificates []content.Certificate
}

func NewPage(source Source, withCertificates bool, log *slog.Logger) *Page {
	if log == nil {
		log = slog.Default()
	}
	return &Page{
		source:           source,
		withCertificates: withCertificates,
		log:              log,
		videos:           []content.Video{},
		clients:          []content.Client{},
		certificates:     []content.Certificate{},
	}
}

// Load runs the fetchers concurrently. A failing fetch leaves its own list
// untouched and never blocks the others.
func (p *Page) Load(ctx context.Context) LoadReport {
	var (
		wg     sync.WaitGroup
		report LoadReport
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		report.Videos = p.RefreshVideos(ctx)
	}()
	go func() {
		defer wg.Done()
		report.Clients = p.RefreshClients(ctx)
	}()
	if p.withCertificates {
		wg.Add(1)
		go func() {
			defer wg.Done()
			report.Certificates = p.RefreshCertificates(ctx)
		}()
	}
	wg.Wait()

	return report
}

func (p *Page) RefreshVideos(ctx context.Context) error {
	items, err := p.source.Videos(ctx)
	if err != nil {
		p.log.Warn("page videos: fetch failed", slog.String("error", err.Error()))
		return err
	}
	p.mu.Lock()
	p.videos = append(make([]content.Video, 0, len(items)), items...)
	p.mu.Unlock()
	return nil
}

func (p *Page) RefreshClients(ctx context.Context) error {
	items, err := p.source.Clients(ctx)
	if err != nil {
		p.log.Warn("page clients: fetch failed", slog.String("error", err.Error()))
		return err
	}
	p.mu.Lock()
	p.clients = append(make([]content.Client, 0, len(items)), items...)
	p.mu.Unlock()
	return nil
}

func (p *Page) RefreshCertificates(ctx context.Context) error {
	items, err := p.source.Certificates(ctx)
	if err != nil {
		p.log.Warn("page certificates: fetch failed", slog.String("error", err.Error()))
		return err
	}
	p.mu.Lock()
	p.certificates = append(make([]content.Certificate, 0, len(items)), items...)
	p.mu.Unlock()
	return nil
}

func (p *Page) Videos() []content.Video {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]content.Video(nil), p.videos...)
}

func (p *Page) Clients() []content.Client {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]content.Client(nil), p.clients...)
}

func (p *Page) Certificates() []content.Certificate {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]content.Certificate(nil), p.certificates...)
}

// Sections is the long/short split of the current videos.
func (p *Page) Sections() (longs, shorts []content.Video) {
	return Partition(p.Videos())
}

func (p *Page) FindVideo(id string) (content.Video, bool) {
	for _, v := range p.Videos() {
		if v.ID == id {
			return v, true
		}
	}
	return content.Video{}, false
}

func (p *Page) FindCertificate(id string) (content.Certificate, bool) {
	for _, c := range p.Certificates() {
		if c.ID == id {
			return c, true
		}
	}
	return content.Certificate{}, false
}
