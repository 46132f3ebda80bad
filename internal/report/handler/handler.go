package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	authmodels "sesaco/internal/auth/models"
	"sesaco/internal/catalog"
	"sesaco/internal/report"
	"sesaco/internal/report/service"
	"sesaco/pkg/platform/httputil"
	"sesaco/pkg/requestcontext"
)

// Service defines the interface for report generation.
type Service interface {
	Generate(ctx context.Context, ruc, format string) (service.Result, error)
}

// InspectorDirectory resolves the authenticated inspector for the PDF
// signature page.
type InspectorDirectory interface {
	FindByCedula(ctx context.Context, cedula string) (authmodels.Inspector, error)
}

// Handler wires the report endpoints to the service and the export writers.
type Handler struct {
	service    Service
	inspectors InspectorDirectory
	catalog    *catalog.Catalog
	logger     *slog.Logger
}

func New(service Service, inspectors InspectorDirectory, cat *catalog.Catalog, logger *slog.Logger) *Handler {
	return &Handler{service: service, inspectors: inspectors, catalog: cat, logger: logger}
}

// Register mounts the report endpoints. All of them require auth.
func (h *Handler) Register(r chi.Router) {
	r.Get("/companies/{ruc}/report", h.handleJSON)
	r.Get("/companies/{ruc}/report/pdf", h.handlePDF)
	r.Get("/companies/{ruc}/report/xlsx", h.handleXLSX)
}

func (h *Handler) handleJSON(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Generate(r.Context(), chi.URLParam(r, "ruc"), "json")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handlePDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ruc := chi.URLParam(r, "ruc")

	result, err := h.service.Generate(ctx, ruc, "pdf")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	inspectorName := requestcontext.InspectorID(ctx)
	if inspector, err := h.inspectors.FindByCedula(ctx, inspectorName); err == nil {
		inspectorName = inspector.Name
	}

	now := requestcontext.Now(ctx)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=reporte_%s_%s.pdf", ruc, now.Format("20060102")))
	if err := report.WritePDF(w, result.Company, result.AggregateReport, h.catalog, inspectorName, now); err != nil {
		// Headers are already out; all that is left is to log.
		h.logger.ErrorContext(ctx, "pdf rendering failed", "ruc", ruc, "error", err)
	}
}

func (h *Handler) handleXLSX(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ruc := chi.URLParam(r, "ruc")

	result, err := h.service.Generate(ctx, ruc, "xlsx")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=reporte_%s_%s.xlsx", ruc, requestcontext.Now(ctx).Format("20060102")))
	if err := report.WriteXLSX(w, result.Company, result.AggregateReport, h.catalog); err != nil {
		h.logger.ErrorContext(ctx, "xlsx rendering failed", "ruc", ruc, "error", err)
	}
}
