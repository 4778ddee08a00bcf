// Package importer drives one statement upload through the pipeline: parse,
// classify, expand installments, deduplicate, persist. One run per file, no
// state shared across runs.
package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/centavo-app/centavo/internal/classify"
	"github.com/centavo-app/centavo/internal/installment"
	"github.com/centavo-app/centavo/internal/ledger"
	"github.com/centavo-app/centavo/internal/statement"
)

type Service struct {
	parser *statement.Parser
	ledger *ledger.Service
}

func NewService(ledgerSvc *ledger.Service) *Service {
	return &Service{
		parser: statement.NewParser(),
		ledger: ledgerSvc,
	}
}

// Preview is the non-persisting first phase of an import: parsed, classified
// and expanded candidates ready for the user to review and edit.
type Preview struct {
	Format     statement.Format
	Candidates []ledger.Candidate
	Errors     []statement.RowError
}

// Result is the aggregate of one completed import run. It is created fresh
// per invocation and not modified after being returned.
type Result struct {
	Imported           int
	Duplicates         int
	FutureInstallments int
	Errors             []statement.RowError
	Candidates         []ledger.Candidate // full preview set, including skipped and duplicate rows
}

// Preview parses and classifies a statement without touching the ledger
// beyond reading the classification history. Row-level failures land in
// Errors with their origin line; they never abort the run.
func (s *Service) Preview(ctx context.Context, format statement.Format, r io.Reader) (*Preview, error) {
	file, err := s.parser.Parse(r, format)
	if err != nil {
		return nil, err
	}

	history, err := s.ledger.History(ctx)
	if err != nil {
		return nil, fmt.Errorf("load classification history: %w", err)
	}

	classifier := classify.New(classify.WithHistory(history))

	preview := &Preview{
		Format: file.Format,
		Errors: file.Errors,
	}

	for _, row := range file.Rows {
		cand, err := statement.Normalize(row)
		if err != nil {
			preview.Errors = append(preview.Errors, statement.RowError{Line: row.Line, Err: err})
			continue
		}

		classifier.Apply(file.Format, &cand)

		preview.Candidates = append(preview.Candidates, cand)

		// Only rows that survive the skip filter project future installments:
		// a skipped bill payment carrying something marker-shaped (a card
		// expiry like "12/26") must not seed phantom entries.
		if cand.Skipped {
			continue
		}

		if current, total, ok := installment.Extract(cand.Description); ok {
			preview.Candidates = append(preview.Candidates, installment.Expand(cand, current, total)...)
		}
	}

	return preview, nil
}

// Commit persists the candidates of a reviewed preview. Skipped rows are
// filtered out here — they are surfaced to the user but must never reach the
// ledger — and everything else is deduplicated and inserted in one store
// transaction. A storage fault aborts the whole run with no partial commit.
func (s *Service) Commit(ctx context.Context, preview *Preview) (*Result, error) {
	result := &Result{
		Errors:     preview.Errors,
		Candidates: preview.Candidates,
	}

	var submit []ledger.Candidate

	for _, c := range preview.Candidates {
		if c.FutureInstallment {
			result.FutureInstallments++
		}

		if c.Skipped {
			continue
		}

		submit = append(submit, c)
	}

	outcome, err := s.ledger.PersistBatch(ctx, submit)
	if err != nil {
		return nil, fmt.Errorf("persist batch: %w", err)
	}

	result.Imported = len(outcome.Inserted)
	result.Duplicates = len(outcome.Duplicates)

	return result, nil
}

// Import is the one-shot run: Preview immediately followed by Commit, with no
// user edits in between.
func (s *Service) Import(ctx context.Context, format statement.Format, r io.Reader) (*Result, error) {
	preview, err := s.Preview(ctx, format, r)
	if err != nil {
		return nil, err
	}

	return s.Commit(ctx, preview)
}
