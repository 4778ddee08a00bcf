package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/centavo-app/centavo/internal/category"
	"github.com/centavo-app/centavo/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListCategories(ctx context.Context) ([]category.Category, error) {
	query := `
		SELECT id, name, type, COALESCE(monthly_ceiling_cents, 0)
		FROM categories
		ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var cats []category.Category

	for rows.Next() {
		var c category.Category

		var typeStr string

		if err := rows.Scan(&c.ID, &c.Name, &typeStr, &c.MonthlyCeilingCents); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		c.Type = ledger.Type(typeStr)

		cats = append(cats, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	return cats, nil
}

// EnsureCeilingColumn adds monthly_ceiling_cents to categories unless it is
// already there. The information_schema check is what makes the migration
// re-runnable rather than failing on the second invocation.
func (s *Store) EnsureCeilingColumn(ctx context.Context) (bool, error) {
	const existsQuery = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.columns
			WHERE table_name = 'categories' AND column_name = 'monthly_ceiling_cents'
		)
	`

	var present bool
	if err := s.db.QueryRowContext(ctx, existsQuery).Scan(&present); err != nil {
		return false, fmt.Errorf("checking ceiling column: %w", err)
	}

	if present {
		return false, nil
	}

	const alterQuery = `
		ALTER TABLE categories
		ADD COLUMN monthly_ceiling_cents BIGINT NOT NULL DEFAULT 0
	`

	if _, err := s.db.ExecContext(ctx, alterQuery); err != nil {
		return false, fmt.Errorf("adding ceiling column: %w", err)
	}

	return true, nil
}

func (s *Store) SetCeilingByName(ctx context.Context, name string, cents int64) error {
	query := `
		UPDATE categories
		SET monthly_ceiling_cents = $1
		WHERE name = $2
	`

	if _, err := s.db.ExecContext(ctx, query, cents, name); err != nil {
		return fmt.Errorf("setting ceiling for %q: %w", name, err)
	}

	return nil
}
