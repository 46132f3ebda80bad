package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"sesaco/internal/submission/models"
)

// Postgres persists submissions with answers as a JSONB document. The seq
// column preserves insertion order independently of submitted_at, which is
// what the tie-break between equal timestamps needs.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Save(ctx context.Context, submission models.Submission) error {
	answers, err := json.Marshal(submission.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	query := `
		INSERT INTO submissions (id, company_ruc, inspector_cedula, submitted_at, answers)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = s.db.ExecContext(ctx, query,
		submission.ID, submission.CompanyRUC, submission.InspectorCedula,
		submission.SubmittedAt, answers,
	)
	if err != nil {
		return fmt.Errorf("save submission: %w", err)
	}
	return nil
}

func (s *Postgres) ListByCompany(ctx context.Context, ruc string) ([]models.Submission, error) {
	query := `
		SELECT id, company_ruc, inspector_cedula, submitted_at, answers
		FROM submissions
		WHERE company_ruc = $1
		ORDER BY seq
	`
	rows, err := s.db.QueryContext(ctx, query, strings.TrimSpace(ruc))
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var submissions []models.Submission
	for rows.Next() {
		var (
			submission models.Submission
			answers    []byte
		)
		err := rows.Scan(&submission.ID, &submission.CompanyRUC,
			&submission.InspectorCedula, &submission.SubmittedAt, &answers)
		if err != nil {
			return nil, fmt.Errorf("list submissions: %w", err)
		}
		if err := json.Unmarshal(answers, &submission.Answers); err != nil {
			return nil, fmt.Errorf("decode answers: %w", err)
		}
		submissions = append(submissions, submission)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return submissions, nil
}
