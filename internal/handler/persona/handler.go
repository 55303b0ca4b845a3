package persona

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/respondentai/backend/internal/model/persona"
	"github.com/respondentai/backend/pkg/utils"
)

// Handler serves the persona catalog.
type Handler struct {
	personas persona.Catalog
}

// New creates the persona handler.
func New(personas persona.Catalog) *Handler {
	return &Handler{
		personas: personas,
	}
}

// RegisterRoutes mounts the persona catalog routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/personas", h.handleListPersonas)
}

// handleListPersonas lists the selectable personas in catalog order.
func (h *Handler) handleListPersonas(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.personas.List())
}
