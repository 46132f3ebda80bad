package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode"

	"sesaco/internal/audit"
	"sesaco/internal/company/models"
	"sesaco/internal/platform/metrics"
	dErrors "sesaco/pkg/domain-errors"
	"sesaco/pkg/platform/sentinel"
	"sesaco/pkg/requestcontext"
)

// Store persists companies.
type Store interface {
	Create(ctx context.Context, company models.Company) error
	Replace(ctx context.Context, company models.Company) error
	FindByRUC(ctx context.Context, ruc string) (models.Company, error)
	List(ctx context.Context) ([]models.Company, error)
}

// Service orchestrates company registration and lookup.
type Service struct {
	store     Store
	logger    *slog.Logger
	metrics   *metrics.Metrics
	publisher audit.Publisher
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditPublisher(p audit.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// New constructs the company service.
func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register stores a new company. Duplicate RUCs are rejected with a conflict.
func (s *Service) Register(ctx context.Context, company models.Company) (models.Company, error) {
	company.RUC = strings.TrimSpace(company.RUC)
	if err := validate(company); err != nil {
		return models.Company{}, err
	}
	if company.RegisteredAt.IsZero() {
		company.RegisteredAt = requestcontext.Now(ctx)
	}

	if err := s.store.Create(ctx, company); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return models.Company{}, dErrors.New(dErrors.CodeConflict, "company with this RUC is already registered")
		}
		return models.Company{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register company")
	}

	s.metrics.IncrementCompaniesRegistered()
	s.emit(ctx, audit.ActionCompanyRegistered, company.RUC)
	s.logger.InfoContext(ctx, "company registered", "ruc", company.RUC)
	return company, nil
}

// Replace overwrites every field of an existing company. There is no partial
// update; callers send the complete record.
func (s *Service) Replace(ctx context.Context, company models.Company) (models.Company, error) {
	company.RUC = strings.TrimSpace(company.RUC)
	if err := validate(company); err != nil {
		return models.Company{}, err
	}

	existing, err := s.store.FindByRUC(ctx, company.RUC)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Company{}, dErrors.New(dErrors.CodeNotFound, "company not found")
		}
		return models.Company{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up company")
	}
	if company.RegisteredAt.IsZero() {
		company.RegisteredAt = existing.RegisteredAt
	}

	if err := s.store.Replace(ctx, company); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Company{}, dErrors.New(dErrors.CodeNotFound, "company not found")
		}
		return models.Company{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to replace company")
	}

	s.emit(ctx, audit.ActionCompanyReplaced, company.RUC)
	s.logger.InfoContext(ctx, "company replaced", "ruc", company.RUC)
	return company, nil
}

// Get returns the company registered under the given RUC.
func (s *Service) Get(ctx context.Context, ruc string) (models.Company, error) {
	company, err := s.store.FindByRUC(ctx, strings.TrimSpace(ruc))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Company{}, dErrors.New(dErrors.CodeNotFound, "company not found")
		}
		return models.Company{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up company")
	}
	return company, nil
}

// List returns all registered companies ordered by RUC.
func (s *Service) List(ctx context.Context) ([]models.Company, error) {
	companies, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list companies")
	}
	if companies == nil {
		companies = []models.Company{}
	}
	return companies, nil
}

func (s *Service) emit(ctx context.Context, action audit.Action, ruc string) {
	err := audit.Emit(ctx, s.publisher, audit.Event{
		Action:      action,
		InspectorID: requestcontext.InspectorID(ctx),
		CompanyRUC:  ruc,
		Device:      requestcontext.Device(ctx),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", action, "error", err)
	}
}

func validate(company models.Company) error {
	if !validRUC(company.RUC) {
		return dErrors.New(dErrors.CodeBadRequest, "ruc must be exactly 13 digits")
	}
	if strings.TrimSpace(company.BusinessName) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "business_name is required")
	}
	switch company.Type {
	case models.CompanyTypePublic, models.CompanyTypePrivate:
	default:
		return dErrors.New(dErrors.CodeBadRequest, "type must be publica or privada")
	}
	switch company.WorkplaceType {
	case models.WorkplaceMatriz, models.WorkplaceSucursal:
	default:
		return dErrors.New(dErrors.CodeBadRequest, "workplace_type must be matriz or sucursal")
	}
	if company.TotalWorkers < 0 {
		return dErrors.New(dErrors.CodeBadRequest, "total_workers must not be negative")
	}
	return nil
}

func validRUC(ruc string) bool {
	if len(ruc) != 13 {
		return false
	}
	for _, r := range ruc {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
