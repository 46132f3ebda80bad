//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"sesaco/internal/company/models"
	"sesaco/internal/company/store"
	"sesaco/pkg/platform/sentinel"
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
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "companies"))
}

func newTestCompany(ruc string) models.Company {
	return models.Company{
		RUC:                 ruc,
		Type:                models.CompanyTypePrivate,
		Employer:            "Juan Pérez",
		BusinessName:        "Constructora Andina S.A.",
		Phone:               "022345678",
		Email:               "info@andina.ec",
		EconomicActivity:    "Construcción",
		WorkplaceType:       models.WorkplaceMatriz,
		Address:             "Av. Amazonas N34-120, Quito",
		TotalWorkers:        42,
		PayrollConsolidated: true,
		Workforce: models.Workforce{
			Men: 30, Women: 12, Pregnant: 1, Disabled: 2, Teleworkers: 5,
		},
		WorkSchedule: "08:00-17:00",
		Interviewees: []models.Interviewee{
			{Name: "María Gómez", Position: "Jefa de RRHH"},
		},
		RegisteredAt: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	company := newTestCompany("1790012345001")
	s.Require().NoError(s.store.Create(ctx, company))

	found, err := s.store.FindByRUC(ctx, "1790012345001")
	s.Require().NoError(err)
	s.Equal(company.BusinessName, found.BusinessName)
	s.Equal(company.Workforce, found.Workforce)
	s.Equal(company.Interviewees, found.Interviewees)
	s.True(found.RegisteredAt.Equal(company.RegisteredAt))
}

func (s *PostgresStoreSuite) TestDuplicateRUCConflicts() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, newTestCompany("1790012345001")))
	s.Require().ErrorIs(s.store.Create(ctx, newTestCompany("1790012345001")), sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestReplace() {
	ctx := context.Background()
	company := newTestCompany("1790012345001")
	s.Require().NoError(s.store.Create(ctx, company))

	company.BusinessName = "Constructora Andina Renovada S.A."
	company.Workforce.Women = 20
	s.Require().NoError(s.store.Replace(ctx, company))

	found, err := s.store.FindByRUC(ctx, "1790012345001")
	s.Require().NoError(err)
	s.Equal("Constructora Andina Renovada S.A.", found.BusinessName)
	s.Equal(20, found.Workforce.Women)

	s.Require().ErrorIs(s.store.Replace(ctx, newTestCompany("9999999999001")), sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListOrdersByRUC() {
	ctx := context.Background()
	for _, ruc := range []string{"1790099999001", "0990011111001"} {
		s.Require().NoError(s.store.Create(ctx, newTestCompany(ruc)))
	}

	companies, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(companies, 2)
	s.Equal("0990011111001", companies[0].RUC)
	s.Equal("1790099999001", companies[1].RUC)
}

func (s *PostgresStoreSuite) TestFindUnknownRUC() {
	_, err := s.store.FindByRUC(context.Background(), "0000000000000")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}
