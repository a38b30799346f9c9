package videos

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"portfolio-backend/internal/content"
	"portfolio-backend/internal/httpx"
	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/transport"
	"portfolio-backend/internal/validation"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service *Service
	val     *validation.Validator
	log     *slog.Logger
}

func NewHandler(service *Service, val *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{
		service: service,
		val:     val,
		log:     log,
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := middleware.LoggerFromRequest(h.log, r)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, err := h.service.List(ctx)
	if err != nil {
		log.Error("videos list: content store error", slog.String("error", err.Error()))
		transport.WriteJSON(w, http.StatusInternalServerError, []content.Video{})
		return
	}

	log.Info("videos list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := middleware.LoggerFromRequest(h.log, r)

	var req content.VideoInput
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		log.Warn("videos create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		log.Warn("videos create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Create(ctx, req)
	if err != nil {
		log.Error("videos create: content store error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "content store error", nil)
		return
	}

	log.Info("videos create: ok", slog.String("video_id", item.ID))
	transport.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := middleware.LoggerFromRequest(h.log, r)

	var req content.VideoUpdate
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		log.Warn("videos update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		log.Warn("videos update: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Update(ctx, req)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			log.Warn("videos update: not found", slog.String("video_id", req.ID))
			transport.WriteError(w, http.StatusNotFound, "video not found", nil)
			return
		}
		log.Error("videos update: content store error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "content store error", nil)
		return
	}

	log.Info("videos update: ok", slog.String("video_id", item.ID))
	transport.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := middleware.LoggerFromRequest(h.log, r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("videos delete: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		if errors.Is(err, content.ErrNotFound) {
			log.Warn("videos delete: not found", slog.String("video_id", id))
			transport.WriteError(w, http.StatusNotFound, "video not found", nil)
			return
		}
		log.Error("videos delete: content store error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "content store error", nil)
		return
	}

	log.Info("videos delete: ok", slog.String("video_id", id))
	transport.WriteStatus(w, http.StatusOK, "deleted")
}
