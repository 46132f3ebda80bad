package inspector

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sesaco/internal/auth/models"
	"sesaco/pkg/platform/sentinel"
)

// Postgres persists inspectors in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Save(ctx context.Context, inspector models.Inspector) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO inspectors (cedula, name, role, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (cedula) DO UPDATE
		SET name = EXCLUDED.name, role = EXCLUDED.role, password_hash = EXCLUDED.password_hash`,
		normalize(inspector.Cedula), inspector.Name, string(inspector.Role), inspector.PasswordHash, inspector.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save inspector: %w", err)
	}
	return nil
}

func (s *Postgres) FindByCedula(ctx context.Context, cedula string) (models.Inspector, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT cedula, name, role, password_hash, created_at
		FROM inspectors WHERE cedula = $1`,
		normalize(cedula),
	)

	var inspector models.Inspector
	var role string
	err := row.Scan(&inspector.Cedula, &inspector.Name, &role, &inspector.PasswordHash, &inspector.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Inspector{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.Inspector{}, fmt.Errorf("find inspector: %w", err)
	}
	inspector.Role = models.Role(role)
	return inspector, nil
}
