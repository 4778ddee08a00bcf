package statement

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmountCents parses a statement amount into cents. Exports write the
// decimal separator either way ("150.00" and "150,00" both occur), never with
// thousand separators.
func parseAmountCents(s string) (int64, error) {
	clean := strings.ReplaceAll(s, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
