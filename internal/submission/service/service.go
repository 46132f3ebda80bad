package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"sesaco/internal/audit"
	"sesaco/internal/catalog"
	companymodels "sesaco/internal/company/models"
	"sesaco/internal/platform/metrics"
	"sesaco/internal/submission/models"
	dErrors "sesaco/pkg/domain-errors"
	"sesaco/pkg/platform/sentinel"
	"sesaco/pkg/requestcontext"
)

// Store persists submissions.
type Store interface {
	Save(ctx context.Context, submission models.Submission) error
	ListByCompany(ctx context.Context, ruc string) ([]models.Submission, error)
}

// CompanyStore is the slice of the company registry the intake needs.
type CompanyStore interface {
	FindByRUC(ctx context.Context, ruc string) (companymodels.Company, error)
}

// Service validates and persists checklist submissions.
type Service struct {
	store     Store
	companies CompanyStore
	catalog   *catalog.Catalog
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

// New constructs the submission service.
func New(store Store, companies CompanyStore, cat *catalog.Catalog, opts ...Option) *Service {
	s := &Service{
		store:     store,
		companies: companies,
		catalog:   cat,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AnswerInput is one raw answer as submitted by the inspector's client.
type AnswerInput struct {
	QuestionID string `json:"question_id"`
	Response   string `json:"response"`
	Notes      string `json:"notes,omitempty"`
}

// Input is a complete checklist submission for one company.
type Input struct {
	CompanyRUC string        `json:"company_ruc"`
	Answers    []AnswerInput `json:"answers"`
}

// Save validates the submission against the catalog and persists it. Every
// answered question ID must exist in the catalog; the section is stamped
// from the catalog, never trusted from the client. Unrecognized response
// tokens degrade to unanswered and are counted, not rejected.
func (s *Service) Save(ctx context.Context, input Input) (models.Submission, error) {
	if input.CompanyRUC == "" {
		return models.Submission{}, dErrors.New(dErrors.CodeBadRequest, "company_ruc is required")
	}
	if len(input.Answers) == 0 {
		return models.Submission{}, dErrors.New(dErrors.CodeBadRequest, "answers must not be empty")
	}

	if _, err := s.companies.FindByRUC(ctx, input.CompanyRUC); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Submission{}, dErrors.New(dErrors.CodeNotFound, "company not found")
		}
		return models.Submission{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up company")
	}

	answers := make([]models.Answer, 0, len(input.Answers))
	malformed := 0
	for _, in := range input.Answers {
		entry, ok := s.catalog.Lookup(in.QuestionID)
		if !ok {
			return models.Submission{}, dErrors.New(dErrors.CodeBadRequest, "unknown question id: "+in.QuestionID)
		}
		response, recognized := models.ParseAnswer(in.Response)
		if !recognized {
			malformed++
			s.logger.WarnContext(ctx, "malformed answer token",
				"question_id", in.QuestionID,
				"token", in.Response,
			)
		}
		answers = append(answers, models.Answer{
			QuestionID: in.QuestionID,
			Section:    entry.SectionKey,
			Response:   response,
			Notes:      in.Notes,
		})
	}
	s.metrics.AddMalformedAnswers(malformed)

	submission := models.Submission{
		ID:              uuid.New(),
		CompanyRUC:      input.CompanyRUC,
		InspectorCedula: requestcontext.InspectorID(ctx),
		SubmittedAt:     requestcontext.Now(ctx),
		Answers:         answers,
	}
	if err := s.store.Save(ctx, submission); err != nil {
		return models.Submission{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save submission")
	}

	s.metrics.IncrementSubmissionsSaved()
	err := audit.Emit(ctx, s.publisher, audit.Event{
		Action:      audit.ActionSubmissionSaved,
		InspectorID: submission.InspectorCedula,
		CompanyRUC:  submission.CompanyRUC,
		Device:      requestcontext.Device(ctx),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", audit.ActionSubmissionSaved, "error", err)
	}
	s.logger.InfoContext(ctx, "submission saved",
		"submission_id", submission.ID,
		"ruc", submission.CompanyRUC,
		"answers", len(answers),
		"malformed", malformed,
	)
	return submission, nil
}

// ListByCompany returns the company's submissions in the order they were
// saved. An unknown company is an error; a known company with no
// submissions is an empty list.
func (s *Service) ListByCompany(ctx context.Context, ruc string) ([]models.Submission, error) {
	if _, err := s.companies.FindByRUC(ctx, ruc); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "company not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up company")
	}
	submissions, err := s.store.ListByCompany(ctx, ruc)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list submissions")
	}
	if submissions == nil {
		submissions = []models.Submission{}
	}
	return submissions, nil
}
