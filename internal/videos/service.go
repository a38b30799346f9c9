package videos

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"portfolio-backend/internal/cache"
	"portfolio-backend/internal/content"
	"portfolio-backend/internal/validation"
)

type Service struct {
	store    content.Store
	cache    cache.Cache
	versions *cache.Versions
	ttl      time.Duration
	val      *validation.Validator
	log      *slog.Logger
}

func NewService(store content.Store, c cache.Cache, ttl time.Duration, val *validation.Validator, log *slog.Logger) *Service {
	if c == nil {
		c = cache.NewNoop()
	}
	return &Service{
		store:    store,
		cache:    c,
		versions: cache.NewVersions(),
		ttl:      ttl,
		val:      val,
		log:      log,
	}
}

// List returns every video, newest first.
func (s *Service) List(ctx context.Context) ([]content.Video, error) {
	var cached []content.Video
	if cache.GetJSON(ctx, s.cache, cache.KeyVideos, &cached) {
		return cached, nil
	}
	return s.Warm(ctx)
}

// Warm reads the store and refreshes the cached list.
func (s *Service) Warm(ctx context.Context) ([]content.Video, error) {
	gen := s.versions.Current(cache.KeyVideos)
	docs, err := s.store.Fetch(ctx, content.VideoQuery)
	if err != nil {
		return nil, err
	}
	items, errs := content.Decode[content.Video](docs, s.val)
	for _, err := range errs {
		s.log.Warn("videos list: dropped invalid record", slog.String("error", err.Error()))
	}
	if _, err := s.versions.SetJSON(ctx, s.cache, cache.KeyVideos, gen, items, s.ttl); err != nil {
		s.log.Warn("videos list: cache set failed", slog.String("error", err.Error()))
	}
	return items, nil
}

func (s *Service) Create(ctx context.Context, in content.VideoInput) (content.Video, error) {
	in = normalize(in)
	id, err := s.store.Create(ctx, content.TypeVideo, in.Document())
	if err != nil {
		return content.Video{}, err
	}
	s.invalidate(ctx)
	return in.Video(id), nil
}

func (s *Service) Update(ctx context.Context, in content.VideoUpdate) (content.Video, error) {
	id := strings.TrimSpace(in.ID)
	fields := normalize(in.VideoInput)
	if err := s.store.Patch(ctx, content.TypeVideo, id, fields.Document()); err != nil {
		return content.Video{}, err
	}
	s.invalidate(ctx)
	return fields.Video(id), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, content.TypeVideo, strings.TrimSpace(id)); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.versions.Invalidate(ctx, s.cache, cache.KeyVideos); err != nil {
		s.log.Warn("videos cache invalidate failed", slog.String("error", err.Error()))
	}
}

func normalize(in content.VideoInput) content.VideoInput {
	return content.VideoInput{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		YouTubeID:   strings.TrimSpace(in.YouTubeID),
		Category:    strings.ToLower(strings.TrimSpace(in.Category)),
		Thumbnail:   strings.TrimSpace(in.Thumbnail),
	}
}
