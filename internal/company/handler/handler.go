package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sesaco/internal/company/models"
	dErrors "sesaco/pkg/domain-errors"
	"sesaco/pkg/platform/httputil"
	"sesaco/pkg/requestcontext"
)

// Service defines the interface for company operations.
type Service interface {
	Register(ctx context.Context, company models.Company) (models.Company, error)
	Replace(ctx context.Context, company models.Company) (models.Company, error)
	Get(ctx context.Context, ruc string) (models.Company, error)
	List(ctx context.Context) ([]models.Company, error)
}

// Handler wires the company registry endpoints to the service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the company endpoints. All of them require auth.
func (h *Handler) Register(r chi.Router) {
	r.Post("/companies", h.handleRegister)
	r.Get("/companies", h.handleList)
	r.Get("/companies/{ruc}", h.handleGet)
	r.Put("/companies/{ruc}", h.handleReplace)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	company, ok := httputil.Decode[models.Company](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	created, err := h.service.Register(ctx, company)
	if err != nil {
		h.logger.WarnContext(ctx, "company registration rejected",
			"request_id", requestID,
			"ruc", company.RUC,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleReplace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	company, ok := httputil.Decode[models.Company](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	// The path parameter is authoritative; a diverging body RUC is rejected.
	ruc := chi.URLParam(r, "ruc")
	if company.RUC != "" && company.RUC != ruc {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "body ruc does not match path"))
		return
	}
	company.RUC = ruc

	replaced, err := h.service.Replace(ctx, company)
	if err != nil {
		h.logger.WarnContext(ctx, "company replace rejected",
			"request_id", requestID,
			"ruc", ruc,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, replaced)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	company, err := h.service.Get(r.Context(), chi.URLParam(r, "ruc"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, company)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	companies, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"companies": companies})
}
