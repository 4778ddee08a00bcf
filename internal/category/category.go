// Package category manages spending categories and the one-time monthly
// budget ceiling backfill.
package category

import (
	"context"

	"github.com/google/uuid"

	"github.com/centavo-app/centavo/internal/ledger"
)

// Category is a spending or income category. MonthlyCeilingCents is the
// budget ceiling used by the dashboard; 0 means no ceiling configured.
type Category struct {
	ID                  uuid.UUID
	Name                string
	Type                ledger.Type
	MonthlyCeilingCents int64
}

type Repository interface {
	ListCategories(ctx context.Context) ([]Category, error)

	// EnsureCeilingColumn adds the monthly_ceiling_cents column with a safe
	// zero default. It reports whether the column was added on this call, so
	// the backfill runs exactly once across re-runs.
	EnsureCeilingColumn(ctx context.Context) (added bool, err error)
	SetCeilingByName(ctx context.Context, name string, cents int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.repo.ListCategories(ctx)
}

// BackfillCeilings performs the schema evolution adding monthly budget
// ceilings to categories: add the column with default 0, then seed existing
// categories by name from the static defaults table. The operation is
// idempotent and re-runnable — when the column is already present it does
// nothing and reports applied=false.
func (s *Service) BackfillCeilings(ctx context.Context) (applied bool, err error) {
	added, err := s.repo.EnsureCeilingColumn(ctx)
	if err != nil {
		return false, err
	}

	if !added {
		return false, nil
	}

	for _, def := range DefaultCeilings {
		for _, name := range def.Names {
			if err := s.repo.SetCeilingByName(ctx, name, def.CeilingCents); err != nil {
				return false, err
			}
		}
	}

	return true, nil
}
