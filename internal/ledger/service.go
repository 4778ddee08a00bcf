package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	UpdateClassification(ctx context.Context, id uuid.UUID, category string, tags []string) error
	ClassificationHistory(ctx context.Context) ([]Classification, error)

	BeginImport(ctx context.Context, minDate, maxDate time.Time) (ImportTx, error)
}

// ImportTx is a store transaction covering one import batch. FindExisting and
// CreateTransactions observe a consistent snapshot of the ledger; nothing is
// visible to other runs until Commit.
type ImportTx interface {
	FindExisting(ctx context.Context, fps []Fingerprint) (map[Fingerprint]struct{}, error)
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ListFilter struct {
	Type          *Type
	StartDate     *time.Time
	EndDate       *time.Time
	IncludeFuture bool
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

// Reclassify updates category and tags of a persisted transaction, typically
// after the user edits a row in the preview grid.
func (s *Service) Reclassify(ctx context.Context, id uuid.UUID, category string, tags []string) error {
	if category == "" {
		category = CategoryUncategorized
	}

	return s.repo.UpdateClassification(ctx, id, category, tags)
}

// History returns the remembered classifications of previously persisted
// transactions, most recent first.
func (s *Service) History(ctx context.Context) ([]Classification, error) {
	return s.repo.ClassificationHistory(ctx)
}

// PersistOutcome is the accepted/rejected partition of one persisted batch.
type PersistOutcome struct {
	Inserted   []*Transaction
	Duplicates []Candidate
}

// PersistBatch deduplicates candidates against the existing ledger and inserts
// the remainder, all inside one store transaction. A candidate is a duplicate
// when a persisted transaction already carries the same (date, amount,
// normalized description) fingerprint. Skipped candidates must not be passed
// in; they are rejected as invalid.
func (s *Service) PersistBatch(ctx context.Context, candidates []Candidate) (*PersistOutcome, error) {
	if len(candidates) == 0 {
		return &PersistOutcome{}, nil
	}

	for i := range candidates {
		if candidates[i].Skipped {
			return nil, fmt.Errorf("%w: line %d: skipped candidate submitted for persistence", ErrInvalidCandidate, candidates[i].Line)
		}

		if err := candidates[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCandidate, err)
		}
	}

	minDate, maxDate := dateRange(candidates)

	itx, err := s.repo.BeginImport(ctx, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	fps := make([]Fingerprint, len(candidates))
	for i := range candidates {
		fps[i] = candidates[i].Fingerprint()
	}

	existing, err := itx.FindExisting(ctx, fps)
	if err != nil {
		return nil, fmt.Errorf("find existing: %w", err)
	}

	outcome := &PersistOutcome{}

	// Fingerprints inserted earlier in this same batch also count as seen, so a
	// file containing the same row twice imports it once.
	seen := make(map[Fingerprint]struct{}, len(existing))
	for fp := range existing {
		seen[fp] = struct{}{}
	}

	var txs []*Transaction

	for _, c := range candidates {
		fp := c.Fingerprint()
		if _, dup := seen[fp]; dup {
			outcome.Duplicates = append(outcome.Duplicates, c)
			continue
		}

		seen[fp] = struct{}{}

		txs = append(txs, candidateToTransaction(c))
	}

	if len(txs) > 0 {
		if err := itx.CreateTransactions(ctx, txs); err != nil {
			return nil, fmt.Errorf("create transactions: %w", err)
		}
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	outcome.Inserted = txs

	return outcome, nil
}

func dateRange(candidates []Candidate) (time.Time, time.Time) {
	minDate := candidates[0].Date
	maxDate := candidates[0].Date

	for _, c := range candidates[1:] {
		if c.Date.Before(minDate) {
			minDate = c.Date
		}

		if c.Date.After(maxDate) {
			maxDate = c.Date
		}
	}

	return minDate, maxDate
}

func candidateToTransaction(c Candidate) *Transaction {
	return &Transaction{
		Date:              c.Date,
		Description:       c.Description,
		AmountCents:       c.AmountCents,
		Category:          c.Category,
		Tags:              c.Tags,
		Type:              c.Type,
		FutureInstallment: c.FutureInstallment,
	}
}
