// Package statement reads bank statement exports and turns them into ledger
// candidates. Each supported format declares its column layout, date layout
// and amount sign convention as a profile; parsing recovers from bad lines
// instead of aborting the file.
package statement

import "fmt"

// Format identifies a statement export format.
type Format string

const (
	// FormatCreditCard is the credit card export: date,title,amount columns,
	// ISO dates, positive amounts are charges.
	FormatCreditCard Format = "credit_card"
	// FormatChecking is the checking account export: Data,Valor,Descrição
	// columns, DD/MM/YYYY dates, negative amounts are debits.
	FormatChecking Format = "checking_account"
	// FormatAuto lets the parser detect the format from the header row.
	FormatAuto Format = ""
)

// Row is one data line of a statement file before normalization. Rows are
// transient; they are discarded once classified.
type Row struct {
	Line        int // 1-based line number in the source file
	Date        string
	Description string
	Amount      string
	Format      Format
}

// RowError records a line that could not be normalized. It never aborts the
// run; rows after it are processed independently.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// File is the parsed form of one statement upload: the rows that could be
// read plus the per-line failures encountered along the way.
type File struct {
	Format Format
	Rows   []Row
	Errors []RowError
}
