package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"sesaco/internal/audit"
	companymodels "sesaco/internal/company/models"
	"sesaco/internal/platform/metrics"
	"sesaco/internal/report"
	submissionmodels "sesaco/internal/submission/models"
	dErrors "sesaco/pkg/domain-errors"
	"sesaco/pkg/platform/sentinel"
	"sesaco/pkg/requestcontext"
)

var tracer = otel.Tracer("sesaco/report")

// CompanyStore is the slice of the company registry reporting needs.
type CompanyStore interface {
	FindByRUC(ctx context.Context, ruc string) (companymodels.Company, error)
}

// SubmissionStore supplies a company's submission history in insertion order.
type SubmissionStore interface {
	ListByCompany(ctx context.Context, ruc string) ([]submissionmodels.Submission, error)
}

// Result pairs the computed statistics with the company they describe.
type Result struct {
	Company companymodels.Company `json:"company"`
	report.AggregateReport
}

// Service assembles compliance reports for one company at a time.
type Service struct {
	companies   CompanyStore
	submissions SubmissionStore
	logger      *slog.Logger
	metrics     *metrics.Metrics
	publisher   audit.Publisher
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

// New constructs the report service.
func New(companies CompanyStore, submissions SubmissionStore, opts ...Option) *Service {
	s := &Service{
		companies:   companies,
		submissions: submissions,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate fetches the company and its submission history concurrently, then
// aggregates the history into a report.
//
// An unknown company is a not-found error. A known company with an empty
// history is a distinct no_data condition so the caller can say "complete at
// least one verification" instead of rendering zeros.
func (s *Service) Generate(ctx context.Context, ruc, format string) (Result, error) {
	ctx, span := tracer.Start(ctx, "report.generate")
	span.SetAttributes(
		attribute.String("company.ruc", ruc),
		attribute.String("report.format", format),
	)
	defer span.End()

	var (
		company     companymodels.Company
		submissions []submissionmodels.Submission
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		company, err = s.companies.FindByRUC(gctx, ruc)
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "company not found")
		}
		return err
	})
	g.Go(func() error {
		var err error
		submissions, err = s.submissions.ListByCompany(gctx, ruc)
		return err
	})
	if err := g.Wait(); err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return Result{}, err
		}
		return Result{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load report inputs")
	}

	aggregate, err := report.Compute(submissions)
	if err != nil {
		return Result{}, err
	}
	span.SetAttributes(attribute.Int("report.submissions", aggregate.TotalVerifications))

	if aggregate.MalformedAnswers > 0 {
		s.metrics.AddMalformedAnswers(aggregate.MalformedAnswers)
		s.logger.WarnContext(ctx, "malformed answers in report",
			"ruc", ruc,
			"count", aggregate.MalformedAnswers,
		)
	}

	s.metrics.IncrementReportsGenerated(format)
	emitErr := audit.Emit(ctx, s.publisher, audit.Event{
		Action:      audit.ActionReportGenerated,
		InspectorID: requestcontext.InspectorID(ctx),
		CompanyRUC:  ruc,
		Device:      requestcontext.Device(ctx),
		Detail:      format,
	})
	if emitErr != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", audit.ActionReportGenerated, "error", emitErr)
	}
	return Result{Company: company, AggregateReport: aggregate}, nil
}
