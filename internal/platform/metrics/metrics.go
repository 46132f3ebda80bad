package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	Logins              *prometheus.CounterVec
	CompaniesRegistered prometheus.Counter
	SubmissionsSaved    prometheus.Counter
	ReportsGenerated    *prometheus.CounterVec
	MalformedAnswers    prometheus.Counter
	RequestDuration     *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		Logins: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sesaco_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		CompaniesRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sesaco_companies_registered_total",
			Help: "Total number of companies registered",
		}),
		SubmissionsSaved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sesaco_submissions_saved_total",
			Help: "Total number of verification checklists submitted",
		}),
		ReportsGenerated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sesaco_reports_generated_total",
			Help: "Compliance reports generated by format",
		}, []string{"format"}),
		MalformedAnswers: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sesaco_malformed_answers_total",
			Help: "Answer tokens outside the closed set encountered during aggregation",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sesaco_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route", "status"}),
	}
}

// ObserveRequest records one request observation.
func (m *Metrics) ObserveRequest(route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(route, status).Observe(d.Seconds())
}

// IncrementLogin records a login attempt outcome ("success" or "failure").
func (m *Metrics) IncrementLogin(outcome string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(outcome).Inc()
}

// IncrementCompaniesRegistered increments the companies counter by 1.
func (m *Metrics) IncrementCompaniesRegistered() {
	if m == nil {
		return
	}
	m.CompaniesRegistered.Inc()
}

// IncrementSubmissionsSaved increments the submissions counter by 1.
func (m *Metrics) IncrementSubmissionsSaved() {
	if m == nil {
		return
	}
	m.SubmissionsSaved.Inc()
}

// IncrementReportsGenerated records a generated report by format
// ("json", "pdf", "xlsx").
func (m *Metrics) IncrementReportsGenerated(format string) {
	if m == nil {
		return
	}
	m.ReportsGenerated.WithLabelValues(format).Inc()
}

// AddMalformedAnswers records n malformed answer tokens.
func (m *Metrics) AddMalformedAnswers(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.MalformedAnswers.Add(float64(n))
}
