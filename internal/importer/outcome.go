package importer

import (
	"fmt"
	"strings"
)

// Tier is the top-level classification of one import run. It is deliberately
// three-valued: "nothing new, already present" is not an error, and
// collapsing it into one would tell users their known-good files are broken.
type Tier string

const (
	TierSuccess Tier = "success"
	TierInfo    Tier = "info"
	TierError   Tier = "danger"
)

// Outcome is the user-facing verdict of an import run.
type Outcome struct {
	Tier               Tier
	Imported           int
	Duplicates         int
	FutureInstallments int
	Messages           []string
}

// Outcome classifies the result:
//
//   - anything imported → success
//   - nothing imported but duplicates found → informational, the file is
//     recognized and already present
//   - otherwise → error, carrying the accumulated row errors, or the generic
//     no-transactions message for an empty file
func (r *Result) Outcome() Outcome {
	o := Outcome{
		Imported:           r.Imported,
		Duplicates:         r.Duplicates,
		FutureInstallments: r.FutureInstallments,
	}

	for _, e := range r.Errors {
		o.Messages = append(o.Messages, e.Error())
	}

	switch {
	case r.Imported > 0:
		o.Tier = TierSuccess
	case r.Duplicates > 0:
		o.Tier = TierInfo
	default:
		o.Tier = TierError

		if len(o.Messages) == 0 {
			o.Messages = []string{"no transactions found"}
		}
	}

	return o
}

// Message renders the outcome as one human-readable string.
func (o Outcome) Message() string {
	switch o.Tier {
	case TierSuccess:
		msg := "imported " + plural(o.Imported, "transaction")
		if o.FutureInstallments > 0 {
			msg += fmt.Sprintf(" (%s generated)", plural(o.FutureInstallments, "future installment"))
		}

		if o.Duplicates > 0 {
			msg += fmt.Sprintf(", %d already present", o.Duplicates)
		}

		return msg
	case TierInfo:
		return fmt.Sprintf("nothing new to import: %s already present", plural(o.Duplicates, "transaction"))
	default:
		return strings.Join(o.Messages, "; ")
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}

	return fmt.Sprintf("%d %ss", n, noun)
}
