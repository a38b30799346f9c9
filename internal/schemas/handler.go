// Package schemas serves the JSON Schemas of the admin write payloads.
package schemas

import (
	"net/http"

	"portfolio-backend/internal/content"
	"portfolio-backend/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/invopop/jsonschema"
)

type Handler struct {
	schemas map[string]*jsonschema.Schema
}

func NewHandler() *Handler {
	return &Handler{schemas: content.Schemas()}
}

// List returns every schema keyed by form name.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, h.schemas)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	schema, ok := h.schemas[chi.URLParam(r, "name")]
	if !ok {
		transport.WriteError(w, http.StatusNotFound, "schema not found", nil)
		return
	}
	transport.WriteJSON(w, http.StatusOK, schema)
}
