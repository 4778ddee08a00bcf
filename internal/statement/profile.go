package statement

import "strings"

// signConvention maps the sign carried in the file to the ledger convention
// (negative cents = expense).
type signConvention int

const (
	// signAsIs keeps the file's sign: debits already arrive negative.
	signAsIs signConvention = iota
	// signInverted flips the file's sign: charges arrive positive.
	signInverted
)

// Profile describes the column layout and conventions of one export format.
// Supporting a new bank export is adding a Profile here.
type Profile struct {
	Format     Format
	DateCol    string
	AmountCol  string
	DescCols   []string // accepted description headers, first present wins
	DateLayout string
	Sign       signConvention
}

// requiredCols returns the headers that must all be present for this profile
// to match. Description headers are checked separately because some exports
// spell them with and without accents.
func (p Profile) requiredCols() []string {
	return []string{p.DateCol, p.AmountCol}
}

// profiles is the ordered list of formats tried during auto-detection.
var profiles = []Profile{
	{
		Format:     FormatCreditCard,
		DateCol:    "date",
		AmountCol:  "amount",
		DescCols:   []string{"title"},
		DateLayout: "2006-01-02",
		Sign:       signInverted,
	},
	{
		Format:     FormatChecking,
		DateCol:    "data",
		AmountCol:  "valor",
		DescCols:   []string{"descrição", "descricao"},
		DateLayout: "02/01/2006",
		Sign:       signAsIs,
	},
}

func profileFor(format Format) *Profile {
	for i := range profiles {
		if profiles[i].Format == format {
			return &profiles[i]
		}
	}

	return nil
}

// colIndex maps normalized header names to their column position.
type colIndex map[string]int

// normalizeHeader lowercases and trims a header cell so layouts match
// regardless of the export's casing.
func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// matchesProfile checks that all required columns plus at least one accepted
// description column are present.
func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	for _, name := range p.DescCols {
		if _, ok := cols[name]; ok {
			return true
		}
	}

	return false
}

// descIndex returns the column position of the first accepted description
// header, or -1 when none is present.
func (p *Profile) descIndex(cols colIndex) int {
	for _, name := range p.DescCols {
		if idx, ok := cols[name]; ok {
			return idx
		}
	}

	return -1
}
