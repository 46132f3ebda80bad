package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sesaco/internal/audit"
	companymodels "sesaco/internal/company/models"
	companystore "sesaco/internal/company/store"
	submissionmodels "sesaco/internal/submission/models"
	submissionstore "sesaco/internal/submission/store"
	dErrors "sesaco/pkg/domain-errors"
)

func seed(t *testing.T) (*companystore.InMemory, *submissionstore.InMemory) {
	t.Helper()
	companies := companystore.NewInMemory()
	err := companies.Create(context.Background(), companymodels.Company{
		RUC:           "1790012345001",
		Type:          companymodels.CompanyTypePrivate,
		BusinessName:  "Constructora Andina S.A.",
		WorkplaceType: companymodels.WorkplaceMatriz,
	})
	require.NoError(t, err)
	return companies, submissionstore.NewInMemory()
}

func saveSubmission(t *testing.T, store *submissionstore.InMemory, answers ...submissionmodels.Answer) {
	t.Helper()
	err := store.Save(context.Background(), submissionmodels.Submission{
		ID:          uuid.New(),
		CompanyRUC:  "1790012345001",
		SubmittedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Answers:     answers,
	})
	require.NoError(t, err)
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("combines company and history", func(t *testing.T) {
		companies, submissions := seed(t)
		saveSubmission(t, submissions,
			submissionmodels.Answer{QuestionID: "ga1", Section: "gestion_administrativa", Response: submissionmodels.AnswerCompliant},
			submissionmodels.Answer{QuestionID: "ga2", Section: "gestion_administrativa", Response: submissionmodels.AnswerNonCompliant},
		)
		svc := New(companies, submissions)

		result, err := svc.Generate(ctx, "1790012345001", "json")
		require.NoError(t, err)
		assert.Equal(t, "Constructora Andina S.A.", result.Company.BusinessName)
		assert.Equal(t, 1, result.TotalVerifications)
		assert.Equal(t, 50.0, result.OverallCompliancePercentage)
	})

	t.Run("unknown company is not found", func(t *testing.T) {
		companies, submissions := seed(t)
		svc := New(companies, submissions)

		_, err := svc.Generate(ctx, "9999999999001", "json")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("known company with no history is no_data, not not_found", func(t *testing.T) {
		companies, submissions := seed(t)
		svc := New(companies, submissions)

		_, err := svc.Generate(ctx, "1790012345001", "json")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNoData))
	})

	t.Run("emits an audit event with the format", func(t *testing.T) {
		companies, submissions := seed(t)
		saveSubmission(t, submissions,
			submissionmodels.Answer{QuestionID: "ga1", Section: "gestion_administrativa", Response: submissionmodels.AnswerCompliant},
		)
		recorder := audit.NewMemoryRecorder()
		svc := New(companies, submissions, WithAuditPublisher(recorder))

		_, err := svc.Generate(ctx, "1790012345001", "pdf")
		require.NoError(t, err)

		events := recorder.Events()
		require.Len(t, events, 1)
		assert.Equal(t, audit.ActionReportGenerated, events[0].Action)
		assert.Equal(t, "pdf", events[0].Detail)
	})
}
