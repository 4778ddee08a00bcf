// Package installment detects "X/M" installment markers in transaction
// descriptions and synthesizes the future entries they imply.
package installment

import (
	"regexp"
	"strconv"
	"time"

	"github.com/centavo-app/centavo/internal/ledger"
)

// markerPattern matches installment markers like "01/10", "1/12" or "03-06".
var markerPattern = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})`)

// Extract finds an installment marker in a description and returns the
// current and total counts. The last match in the description wins, and a
// match only counts when 0 < current <= total — that guard is what keeps
// dates like "10/12/2025" from being a false positive most of the time.
func Extract(description string) (current, total int, ok bool) {
	matches := markerPattern.FindAllStringSubmatch(description, -1)
	if len(matches) == 0 {
		return 0, 0, false
	}

	last := matches[len(matches)-1]

	current, _ = strconv.Atoi(last[1])
	total, _ = strconv.Atoi(last[2])

	if current <= 0 || current > total {
		return 0, 0, false
	}

	return current, total, true
}

// Expand synthesizes the total-current future candidates implied by an
// installment row: one per calendar month after the origin, identical in
// description, category, amount and type, flagged as future installments and
// never skipped. Already-final installments expand to nothing.
func Expand(origin ledger.Candidate, current, total int) []ledger.Candidate {
	remaining := total - current
	if remaining <= 0 {
		return nil
	}

	future := make([]ledger.Candidate, 0, remaining)

	for step := 1; step <= remaining; step++ {
		next := origin
		next.Date = addMonths(origin.Date, step)
		next.Tags = append([]string(nil), origin.Tags...)
		next.FutureInstallment = true
		next.Skipped = false
		next.DisableEdit = origin.DisableEdit

		future = append(future, next)
	}

	return future
}

// addMonths advances t by n calendar months, clamping to the last valid day
// when the origin day does not exist in the target month (Jan 31 + 1 month is
// Feb 28, or Feb 29 in leap years). time.AddDate alone would roll over into
// the following month instead.
func addMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()

	first := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, t.Location())

	lastDay := first.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}

	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}
