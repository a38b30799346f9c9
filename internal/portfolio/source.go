package portfolio

import (
	"context"

	"portfolio-backend/internal/content"
)

// Source is the read side the page aggregates from.
type Source interface {
	Videos(ctx context.Context) ([]content.Video, error)
	Clients(ctx context.Context) ([]content.Client, error)
	Certificates(ctx context.Context) ([]content.Certificate, error)
}

type VideoWriter interface {
	CreateVideo(ctx context.Context, in content.VideoInput) (content.Video, error)
	UpdateVideo(ctx context.Context, in content.VideoUpdate) (content.Video, error)
	DeleteVideo(ctx context.Context, id string) error
}

type ClientWriter interface {
	CreateClient(ctx context.Context, in content.ClientInput) (content.Client, error)
	DeleteClient(ctx context.Context, id string) error
}

type ContactSender interface {
	SendContact(ctx context.Context, msg content.ContactMessage) error
}

// SourceFuncs adapts plain functions to Source. A nil func yields an empty
// list.
type SourceFuncs struct {
	VideosFunc       func(ctx context.Context) ([]content.Video, error)
	ClientsFunc      func(ctx context.Context) ([]content.Client, error)
	CertificatesFunc func(ctx context.Context) ([]content.Certificate, error)
}

func (s SourceFuncs) Videos(ctx context.Context) ([]content.Video, error) {
	if s.VideosFunc == nil {
		return []content.Video{}, nil
	}
	return s.VideosFunc(ctx)
}

func (s SourceFuncs) Clients(ctx context.Context) ([]content.Client, error) {
	if s.ClientsFunc == nil {
		return []content.Client{}, nil
	}
	return s.ClientsFunc(ctx)
}

func (s SourceFuncs) Certificates(ctx context.Context) ([]content.Certificate, error) {
	if s.CertificatesFunc == nil {
		return []content.Certificate{}, nil
	}
	return s.CertificatesFunc(ctx)
}
