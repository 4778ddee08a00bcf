package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("transaction not found")

	// ErrInvalidCandidate marks persistence rejections caused by the submitted
	// candidates themselves, as opposed to storage faults.
	ErrInvalidCandidate = errors.New("invalid candidate")
)

// Type represents the economic direction of a transaction.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// CategoryUncategorized is the sentinel category assigned to rows the
// classifier could not resolve. Candidates never carry an empty category.
const CategoryUncategorized = "Uncategorized"

// Candidate is a parsed, classified, not-yet-persisted ledger entry. Instances
// belong to the import run that produced them and are handed off to the store
// exactly once.
type Candidate struct {
	Date              time.Time
	Description       string
	AmountCents       int64 // negative = expense, positive = income
	Category          string
	Tags              []string
	Type              Type
	Skipped           bool // excluded from persistence, still shown to the user
	DisableEdit       bool // rendered non-editable in the preview grid
	FutureInstallment bool
	Line              int // 1-based line in the source file
}

// Validate checks the invariants every candidate must hold before it may be
// submitted to the store.
func (c *Candidate) Validate() error {
	if c.Category == "" {
		return fmt.Errorf("line %d: empty category", c.Line)
	}

	if c.Skipped && !c.DisableEdit {
		return fmt.Errorf("line %d: skipped candidate must be display-locked", c.Line)
	}

	switch c.Type {
	case TypeExpense:
		if c.AmountCents >= 0 {
			return fmt.Errorf("line %d: expense with non-negative amount %d", c.Line, c.AmountCents)
		}
	case TypeIncome:
		if c.AmountCents <= 0 {
			return fmt.Errorf("line %d: income with non-positive amount %d", c.Line, c.AmountCents)
		}
	default:
		return fmt.Errorf("line %d: unknown type %q", c.Line, c.Type)
	}

	return nil
}

// Transaction is a persisted ledger entry.
type Transaction struct {
	ID                uuid.UUID
	Date              time.Time
	Description       string
	AmountCents       int64
	Category          string
	Tags              []string
	Type              Type
	FutureInstallment bool
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

// Fingerprint identifies a transaction for duplicate comparison. It is derived
// on demand and never cached across import runs.
type Fingerprint struct {
	Date        string // YYYY-MM-DD
	AmountCents int64
	Description string // normalized
}

// Fingerprint returns the candidate's duplicate-comparison key.
func (c *Candidate) Fingerprint() Fingerprint {
	return Fingerprint{
		Date:        c.Date.Format(time.DateOnly),
		AmountCents: c.AmountCents,
		Description: NormalizeDescription(c.Description),
	}
}

// Fingerprint returns the transaction's duplicate-comparison key.
func (t *Transaction) Fingerprint() Fingerprint {
	return Fingerprint{
		Date:        t.Date.Format(time.DateOnly),
		AmountCents: t.AmountCents,
		Description: NormalizeDescription(t.Description),
	}
}

// NormalizeDescription lowercases and collapses internal whitespace. No fuzzy
// matching beyond that: two identical purchases on the same day will collide,
// which is preferred over suppressing legitimate repeated charges.
func NormalizeDescription(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Classification is one remembered (description, category, tags) triple from
// previously persisted transactions, used to suggest classifications for
// similar rows in later imports.
type Classification struct {
	Description string
	Category    string
	Tags        []string
}
