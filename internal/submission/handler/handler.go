package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sesaco/internal/submission/models"
	"sesaco/internal/submission/service"
	"sesaco/pkg/platform/httputil"
	"sesaco/pkg/requestcontext"
)

// Service defines the interface for submission intake and lookup.
type Service interface {
	Save(ctx context.Context, input service.Input) (models.Submission, error)
	ListByCompany(ctx context.Context, ruc string) ([]models.Submission, error)
}

// Handler wires the checklist submission endpoints to the service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the submission endpoints. All of them require auth.
func (h *Handler) Register(r chi.Router) {
	r.Post("/submissions", h.handleSave)
	r.Get("/companies/{ruc}/submissions", h.handleList)
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	input, ok := httputil.Decode[service.Input](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	submission, err := h.service.Save(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "submission rejected",
			"request_id", requestID,
			"ruc", input.CompanyRUC,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, submission)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.service.ListByCompany(r.Context(), chi.URLParam(r, "ruc"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"submissions": submissions})
}
