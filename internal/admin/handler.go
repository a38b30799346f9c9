package admin

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"portfolio-backend/internal/auth"
	"portfolio-backend/internal/httpx"
	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/transport"
	"portfolio-backend/internal/validation"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type Credentials struct {
	User         string
	PasswordHash string
}

// Handler serves the cookie based admin session used by the dashboard.
type Handler struct {
	creds   Credentials
	manager *auth.Manager
	secure  bool
	val     *validation.Validator
	log     *slog.Logger
}

func NewHandler(creds Credentials, manager *auth.Manager, secureCookies bool, val *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{
		creds:   creds,
		manager: manager,
		secure:  secureCookies,
		val:     val,
		log:     log,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := middleware.LoggerFromRequest(h.log, r)

	var req LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		log.Warn("admin login: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		log.Warn("admin login: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	if h.manager == nil || h.creds.PasswordHash == "" {
		log.Warn("admin login: not configured")
		transport.WriteError(w, http.StatusServiceUnavailable, "admin auth not configured", nil)
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.creds.User)) == 1
	if err := auth.ComparePassword(h.creds.PasswordHash, req.Password); err != nil || !userOK {
		log.Warn("admin login: invalid credentials", slog.String("username", req.Username))
		transport.WriteError(w, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	if !h.issue(w) {
		log.Error("admin login: token error")
		return
	}
	log.Info("admin login: ok", slog.String("username", req.Username))
	transport.WriteStatus(w, http.StatusOK, "ok")
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	log := middleware.LoggerFromRequest(h.log, r)
	if h.manager == nil {
		log.Warn("admin refresh: not configured")
		transport.WriteError(w, http.StatusServiceUnavailable, "admin auth not configured", nil)
		return
	}

	cookie, err := r.Cookie(auth.RefreshCookie)
	if err != nil || cookie.Value == "" {
		log.Warn("admin refresh: missing refresh token")
		transport.WriteError(w, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	claims, err := h.manager.ParseRefresh(cookie.Value)
	if err != nil || claims.Role != auth.RoleAdmin {
		log.Warn("admin refresh: invalid refresh token")
		transport.WriteError(w, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}

	if !h.issue(w) {
		log.Error("admin refresh: token error")
		return
	}
	log.Info("admin refresh: ok")
	transport.WriteStatus(w, http.StatusOK, "ok")
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	log := middleware.LoggerFromRequest(h.log, r)
	auth.ClearCookies(w, h.secure)
	log.Info("admin logout: ok")
	transport.WriteStatus(w, http.StatusOK, "ok")
}

func (h *Handler) issue(w http.ResponseWriter) bool {
	access, err := h.manager.NewAccessToken(auth.RoleAdmin)
	if err != nil {
		transport.WriteError(w, http.StatusInternalServerError, "token error", nil)
		return false
	}
	refresh, err := h.manager.NewRefreshToken(auth.RoleAdmin)
	if err != nil {
		transport.WriteError(w, http.StatusInternalServerError, "token error", nil)
		return false
	}
	auth.SetCookies(w, access, refresh, h.manager.AccessTTL, h.manager.RefreshTTL, h.secure)
	return true
}
