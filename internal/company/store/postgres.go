package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"sesaco/internal/company/models"
	"sesaco/pkg/platform/sentinel"
)

// Postgres persists companies in PostgreSQL. Workforce statistics and
// interviewees are stored as JSONB.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const companyColumns = `ruc, company_type, employer, business_name, phone, email,
	economic_activity, workplace_type, address, total_workers,
	payroll_consolidated, workforce, work_schedule, interviewees, registered_at`

func (s *Postgres) Create(ctx context.Context, company models.Company) error {
	workforce, interviewees, err := marshalJSONFields(company)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err = s.db.ExecContext(ctx, query,
		normalizeRUC(company.RUC), company.Type, company.Employer, company.BusinessName,
		company.Phone, company.Email, company.EconomicActivity, company.WorkplaceType,
		company.Address, company.TotalWorkers, company.PayrollConsolidated,
		workforce, company.WorkSchedule, interviewees, company.RegisteredAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create company: %w", err)
	}
	return nil
}

func (s *Postgres) Replace(ctx context.Context, company models.Company) error {
	workforce, interviewees, err := marshalJSONFields(company)
	if err != nil {
		return err
	}
	query := `
		UPDATE companies SET
			company_type = $2, employer = $3, business_name = $4, phone = $5,
			email = $6, economic_activity = $7, workplace_type = $8, address = $9,
			total_workers = $10, payroll_consolidated = $11, workforce = $12,
			work_schedule = $13, interviewees = $14, registered_at = $15
		WHERE ruc = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		normalizeRUC(company.RUC), company.Type, company.Employer, company.BusinessName,
		company.Phone, company.Email, company.EconomicActivity, company.WorkplaceType,
		company.Address, company.TotalWorkers, company.PayrollConsolidated,
		workforce, company.WorkSchedule, interviewees, company.RegisteredAt,
	)
	if err != nil {
		return fmt.Errorf("replace company: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("replace company: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) FindByRUC(ctx context.Context, ruc string) (models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE ruc = $1`
	row := s.db.QueryRowContext(ctx, query, normalizeRUC(ruc))
	company, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Company{}, sentinel.ErrNotFound
		}
		return models.Company{}, fmt.Errorf("find company: %w", err)
	}
	return company, nil
}

func (s *Postgres) List(ctx context.Context) ([]models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY ruc`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var companies []models.Company
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("list companies: %w", err)
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCompany(row scanner) (models.Company, error) {
	var (
		company      models.Company
		workforce    []byte
		interviewees []byte
	)
	err := row.Scan(
		&company.RUC, &company.Type, &company.Employer, &company.BusinessName,
		&company.Phone, &company.Email, &company.EconomicActivity, &company.WorkplaceType,
		&company.Address, &company.TotalWorkers, &company.PayrollConsolidated,
		&workforce, &company.WorkSchedule, &interviewees, &company.RegisteredAt,
	)
	if err != nil {
		return models.Company{}, err
	}
	if err := json.Unmarshal(workforce, &company.Workforce); err != nil {
		return models.Company{}, fmt.Errorf("decode workforce: %w", err)
	}
	if err := json.Unmarshal(interviewees, &company.Interviewees); err != nil {
		return models.Company{}, fmt.Errorf("decode interviewees: %w", err)
	}
	return company, nil
}

func marshalJSONFields(company models.Company) (workforce, interviewees []byte, err error) {
	workforce, err = json.Marshal(company.Workforce)
	if err != nil {
		return nil, nil, fmt.Errorf("encode workforce: %w", err)
	}
	if company.Interviewees == nil {
		interviewees = []byte("[]")
	} else {
		interviewees, err = json.Marshal(company.Interviewees)
		if err != nil {
			return nil, nil, fmt.Errorf("encode interviewees: %w", err)
		}
	}
	return workforce, interviewees, nil
}
