package contact

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"portfolio-backend/internal/content"
	"portfolio-backend/internal/httpx"
	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/transport"
	"portfolio-backend/internal/validation"
)

// Sender delivers a contact submission and returns the provider message id.
type Sender interface {
	SendContactMessage(ctx context.Context, recipient string, msg content.ContactMessage) (string, error)
}

type Handler struct {
	sender    Sender
	recipient string
	val       *validation.Validator
	log       *slog.Logger
}

// NewHandler returns a contact handler. A nil sender or empty recipient makes
// every submission answer 503.
func NewHandler(sender Sender, recipient string, val *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{
		sender:    sender,
		recipient: strings.TrimSpace(recipient),
		val:       val,
		log:       log,
	}
}

func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	log := middleware.LoggerFromRequest(h.log, r)

	var req content.ContactMessage
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		log.Warn("contact send: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	req = content.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Message: strings.TrimSpace(req.Message),
	}
	if err := h.val.Struct(req); err != nil {
		log.Warn("contact send: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	if h.sender == nil || h.recipient == "" {
		log.Error("contact send: delivery not configured")
		transport.WriteError(w, http.StatusServiceUnavailable, "contact unavailable", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	messageID, err := h.sender.SendContactMessage(ctx, h.recipient, req)
	if err != nil {
		log.Error("contact send: delivery failed", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadGateway, "delivery failed", nil)
		return
	}

	log.Info("contact send: ok", slog.String("message_id", messageID))
	transport.WriteStatus(w, http.StatusOK, "sent")
}
