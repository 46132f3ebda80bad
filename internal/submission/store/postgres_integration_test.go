//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	companymodels "sesaco/internal/company/models"
	companystore "sesaco/internal/company/store"
	"sesaco/internal/submission/models"
	"sesaco/internal/submission/store"
	"sesaco/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateTables(ctx, "submissions", "companies"))

	companies := companystore.NewPostgres(s.postgres.DB)
	s.Require().NoError(companies.Create(ctx, companymodels.Company{
		RUC:           "1790012345001",
		Type:          companymodels.CompanyTypePrivate,
		BusinessName:  "Constructora Andina S.A.",
		WorkplaceType: companymodels.WorkplaceMatriz,
		RegisteredAt:  time.Now().UTC(),
	}))
}

func (s *PostgresStoreSuite) newSubmission(at time.Time) models.Submission {
	return models.Submission{
		ID:              uuid.New(),
		CompanyRUC:      "1790012345001",
		InspectorCedula: "1722212253",
		SubmittedAt:     at,
		Answers: []models.Answer{
			{QuestionID: "ga1", Section: "gestion_administrativa", Response: models.AnswerCompliant},
			{QuestionID: "gt1", Section: "gestion_tecnica", Response: models.AnswerNonCompliant, Notes: "sin registro"},
		},
	}
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	submission := s.newSubmission(at)
	s.Require().NoError(s.store.Save(ctx, submission))

	found, err := s.store.ListByCompany(ctx, "1790012345001")
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal(submission.ID, found[0].ID)
	s.Equal(submission.Answers, found[0].Answers)
	s.True(found[0].SubmittedAt.Equal(at))
}

func (s *PostgresStoreSuite) TestListKeepsInsertionOrder() {
	ctx := context.Background()
	// Identical timestamps: only the seq column can preserve order.
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	first := s.newSubmission(at)
	second := s.newSubmission(at)
	s.Require().NoError(s.store.Save(ctx, first))
	s.Require().NoError(s.store.Save(ctx, second))

	found, err := s.store.ListByCompany(ctx, "1790012345001")
	s.Require().NoError(err)
	s.Require().Len(found, 2)
	s.Equal(first.ID, found[0].ID)
	s.Equal(second.ID, found[1].ID)
}

func (s *PostgresStoreSuite) TestListUnknownCompanyIsEmpty() {
	found, err := s.store.ListByCompany(context.Background(), "9999999999001")
	s.Require().NoError(err)
	s.Empty(found)
}
