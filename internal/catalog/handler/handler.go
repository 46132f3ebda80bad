package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"sesaco/internal/catalog"
	"sesaco/pkg/platform/httputil"
)

// Handler serves the checklist structure for form rendering.
type Handler struct {
	catalog *catalog.Catalog
}

func New(c *catalog.Catalog) *Handler {
	return &Handler{catalog: c}
}

// Register mounts catalog endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/checklist/structure", h.handleStructure)
}

func (h *Handler) handleStructure(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"sections": h.catalog.Sections(),
	})
}
