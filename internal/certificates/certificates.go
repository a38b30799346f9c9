// Package certificates serves the read-only certificate list.
package certificates

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"portfolio-backend/internal/cache"
	"portfolio-backend/internal/content"
	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/transport"
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
	return &Service{store: store, cache: c, versions: cache.NewVersions(), ttl: ttl, val: val, log: log}
}

// List returns certificates, most recently issued first.
func (s *Service) List(ctx context.Context) ([]content.Certificate, error) {
	var cached []content.Certificate
	if cache.GetJSON(ctx, s.cache, cache.KeyCertificates, &cached) {
		return cached, nil
	}
	return s.Warm(ctx)
}

func (s *Service) Warm(ctx context.Context) ([]content.Certificate, error) {
	gen := s.versions.Current(cache.KeyCertificates)
	docs, err := s.store.Fetch(ctx, content.CertificateQuery)
	if err != nil {
		return nil, err
	}
	items, errs := content.Decode[content.Certificate](docs, s.val)
	for _, err := range errs {
		s.log.Warn("certificates list: dropped invalid record", slog.String("error", err.Error()))
	}
	if _, err := s.versions.SetJSON(ctx, s.cache, cache.KeyCertificates, gen, items, s.ttl); err != nil {
		s.log.Warn("certificates list: cache set failed", slog.String("error", err.Error()))
	}
	return items, nil
}

type Handler struct {
	service *Service
	log     *slog.Logger
}

func NewHandler(service *Service, log *slog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := middleware.LoggerFromRequest(h.log, r)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, err := h.service.List(ctx)
	if err != nil {
		log.Error("certificates list: content store error", slog.String("error", err.Error()))
		transport.WriteJSON(w, http.StatusInternalServerError, []content.Certificate{})
		return
	}

	log.Info("certificates list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, items)
}
