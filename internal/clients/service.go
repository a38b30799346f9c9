package clients

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

func (s *Service) List(ctx context.Context) ([]content.Client, error) {
	var cached []content.Client
	if cache.GetJSON(ctx, s.cache, cache.KeyClients, &cached) {
		return cached, nil
	}
	return s.Warm(ctx)
}

func (s *Service) Warm(ctx context.Context) ([]content.Client, error) {
	gen := s.versions.Current(cache.KeyClients)
	docs, err := s.store.Fetch(ctx, content.ClientQuery)
	if err != nil {
		return nil, err
	}
	items, errs := content.Decode[content.Client](docs, s.val)
	for _, err := range errs {
		s.log.Warn("clients list: dropped invalid record", slog.String("error", err.Error()))
	}
	if _, err := s.versions.SetJSON(ctx, s.cache, cache.KeyClients, gen, items, s.ttl); err != nil {
		s.log.Warn("clients list: cache set failed", slog.String("error", err.Error()))
	}
	return items, nil
}

func (s *Service) Create(ctx context.Context, in content.ClientInput) (content.Client, error) {
	in = content.ClientInput{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Logo:        strings.TrimSpace(in.Logo),
	}
	id, err := s.store.Create(ctx, content.TypeClient, in.Document())
	if err != nil {
		return content.Client{}, err
	}
	s.invalidate(ctx)
	return in.Client(id), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, content.TypeClient, strings.TrimSpace(id)); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.versions.Invalidate(ctx, s.cache, cache.KeyClients); err != nil {
		s.log.Warn("clients cache invalidate failed", slog.String("error", err.Error()))
	}
}
