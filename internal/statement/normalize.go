package statement

import (
	"fmt"
	"time"

	"github.com/centavo-app/centavo/internal/ledger"
)

// descriptionFallback replaces blank descriptions so every candidate remains
// identifiable in the preview grid.
const descriptionFallback = "Sem descrição"

// Normalize converts a raw row into an unclassified ledger candidate,
// applying the format's date layout and amount sign convention. The returned
// candidate carries the sentinel category and no tags; classification happens
// downstream.
//
// The sign convention is fixed here and nowhere else: credit card charges
// arrive positive and are flipped to negative cents, checking account debits
// already arrive negative.
func Normalize(row Row) (ledger.Candidate, error) {
	prof := profileFor(row.Format)
	if prof == nil {
		return ledger.Candidate{}, fmt.Errorf("unknown statement format %q", row.Format)
	}

	if row.Date == "" {
		return ledger.Candidate{}, fmt.Errorf("missing date")
	}

	if row.Amount == "" {
		return ledger.Candidate{}, fmt.Errorf("missing amount")
	}

	date, err := time.Parse(prof.DateLayout, row.Date)
	if err != nil {
		return ledger.Candidate{}, fmt.Errorf("bad date %q: expected %s", row.Date, prof.DateLayout)
	}

	cents, err := parseAmountCents(row.Amount)
	if err != nil {
		return ledger.Candidate{}, fmt.Errorf("bad amount %q", row.Amount)
	}

	if cents == 0 {
		return ledger.Candidate{}, fmt.Errorf("zero amount")
	}

	if prof.Sign == signInverted {
		cents = -cents
	}

	txType := ledger.TypeIncome
	if cents < 0 {
		txType = ledger.TypeExpense
	}

	desc := row.Description
	if desc == "" {
		desc = descriptionFallback
	}

	return ledger.Candidate{
		Date:        date,
		Description: desc,
		AmountCents: cents,
		Category:    ledger.CategoryUncategorized,
		Type:        txType,
		Line:        row.Line,
	}, nil
}
