package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/srgjo27/club_membership/internal/core/domain"
)

type ServiceRepository struct {
	db *sql.DB
}

func NewServiceRepository(db *sql.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) GetByName(ctx context.Context, name string) (*domain.Service, error) {
	query := `
	SELECT id, name, type, description, cost
	FROM services
	WHERE name = $1
	`

	var s domain.Service
	err := r.db.QueryRowContext(ctx, query, name).Scan(&s.ID, &s.Name, &s.Type, &s.Description, &s.Cost)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("service %q: %w", name, domain.ErrNotFound)
		}
		return nil, err
	}

	return &s, nil
}

func (r *ServiceRepository) List(ctx context.Context) ([]domain.Service, error) {
	query := `
	SELECT id, name, type, description, cost
	FROM services
	ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var services []domain.Service
	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Type, &s.Description, &s.Cost); err != nil {
			return nil, err
		}

		services = append(services, s)
	}

	return services, rows.Err()
}

// EnsureDefaults seeds the catalog on an empty table.
func (r *ServiceRepository) EnsureDefaults(ctx context.Context, services []domain.Service) error {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM services`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO services (id, name, type, description, cost) VALUES ($1, $2, $3, $4, $5)`)
	if err != nil {
		return fmt.Errorf("failed to prepare service statement: %w", err)
	}

	defer stmt.Close()

	for _, s := range services {
		id := s.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		if _, err := stmt.ExecContext(ctx, id, s.Name, s.Type, s.Description, s.Cost); err != nil {
			return fmt.Errorf("failed to seed service %s: %w", s.Name, err)
		}
	}

	return tx.Commit()
}
