package store

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/centavo-app/centavo/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectTransactionColumns = `
	t.id, t.date, t.description, t.amount_cents, t.category, t.tags, t.type,
	t.future_installment, t.created_at, t.updated_at
`

// scanTransaction reads a transaction row in selectTransactionColumns order.
func scanTransaction(s scanner) (*ledger.Transaction, error) {
	var tx ledger.Transaction

	var typeStr string

	var tags sql.NullString

	if err := s.Scan(
		&tx.ID, &tx.Date, &tx.Description, &tx.AmountCents, &tx.Category, &tags,
		&typeStr, &tx.FutureInstallment, &tx.CreatedAt, &tx.UpdatedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = ledger.Type(typeStr)
	tx.Tags = splitTags(tags.String)

	return &tx, nil
}

// Tags travel as one comma-joined column; order is preserved.
func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}

	return strings.Split(s, ",")
}

func (s *Store) ListTransactions(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.Type != nil {
		query += fmt.Sprintf(" AND t.type = $%d", argIdx)

		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND t.date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND t.date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	if !filter.IncludeFuture {
		query += " AND NOT t.future_installment"
	}

	query += " ORDER BY t.date ASC, t.created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*ledger.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

func (s *Store) UpdateClassification(ctx context.Context, id uuid.UUID, category string, tags []string) error {
	query := `
		UPDATE transactions
		SET category = $1, tags = $2, updated_at = NOW()
		WHERE id = $3
	`

	res, err := s.db.ExecContext(ctx, query, category, joinTags(tags), id)
	if err != nil {
		return fmt.Errorf("updating classification: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ledger.ErrNotFound
	}

	return nil
}

// ClassificationHistory returns the latest (category, tags) pair per distinct
// description among classified transactions, most recently classified first.
func (s *Store) ClassificationHistory(ctx context.Context) ([]ledger.Classification, error) {
	query := `
		SELECT DISTINCT ON (t.description) t.description, t.category, t.tags
		FROM transactions t
		WHERE t.category <> $1
		ORDER BY t.description, COALESCE(t.updated_at, t.created_at) DESC
	`

	rows, err := s.db.QueryContext(ctx, query, ledger.CategoryUncategorized)
	if err != nil {
		return nil, fmt.Errorf("loading classification history: %w", err)
	}
	defer rows.Close()

	var history []ledger.Classification

	for rows.Next() {
		var h ledger.Classification

		var tags sql.NullString

		if err := rows.Scan(&h.Description, &h.Category, &tags); err != nil {
			return nil, fmt.Errorf("scanning classification: %w", err)
		}

		h.Tags = splitTags(tags.String)

		history = append(history, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating classifications: %w", err)
	}

	return history, nil
}

// importLockKey derives the advisory lock key serializing concurrent imports
// over overlapping date ranges.
func importLockKey(minDate, maxDate time.Time) int64 {
	h := fnv.New64a()
	h.Write([]byte(minDate.Format(time.DateOnly)))
	h.Write([]byte{0})
	h.Write([]byte(maxDate.Format(time.DateOnly)))

	return int64(h.Sum64())
}

type importTx struct {
	tx *sql.Tx
}

// BeginImport opens the store transaction covering one import batch and takes
// an advisory lock on the batch's date range, so two uploads of the same
// statement cannot race past each other's duplicate checks.
func (s *Store) BeginImport(ctx context.Context, minDate, maxDate time.Time) (ledger.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", importLockKey(minDate, maxDate)); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

// FindExisting returns the subset of fingerprints already present in the
// ledger. It queries the batch's date range once and matches in memory, since
// statement files are small.
func (itx *importTx) FindExisting(ctx context.Context, fps []ledger.Fingerprint) (map[ledger.Fingerprint]struct{}, error) {
	if len(fps) == 0 {
		return nil, nil
	}

	minDate := fps[0].Date
	maxDate := fps[0].Date
	wanted := make(map[ledger.Fingerprint]struct{}, len(fps))

	for _, fp := range fps {
		if fp.Date < minDate {
			minDate = fp.Date
		}

		if fp.Date > maxDate {
			maxDate = fp.Date
		}

		wanted[fp] = struct{}{}
	}

	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.date >= $1 AND t.date <= $2`

	rows, err := itx.tx.QueryContext(ctx, query, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("finding existing transactions: %w", err)
	}
	defer rows.Close()

	existing := make(map[ledger.Fingerprint]struct{})

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		fp := tx.Fingerprint()
		if _, ok := wanted[fp]; ok {
			existing[fp] = struct{}{}
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating existing transactions: %w", err)
	}

	return existing, nil
}

func (itx *importTx) CreateTransactions(ctx context.Context, txs []*ledger.Transaction) error {
	query := `
		INSERT INTO transactions (date, description, amount_cents, category, tags, type, future_installment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	for _, tx := range txs {
		err := itx.tx.QueryRowContext(ctx, query,
			tx.Date,
			tx.Description,
			tx.AmountCents,
			tx.Category,
			joinTags(tx.Tags),
			tx.Type,
			tx.FutureInstallment,
		).Scan(&tx.ID, &tx.CreatedAt)
		if err != nil {
			return fmt.Errorf("creating transaction: %w", err)
		}
	}

	return nil
}
