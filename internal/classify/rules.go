package classify

import "github.com/centavo-app/centavo/internal/statement"

// CategoryRule maps a case-insensitive description keyword to a category.
// Rules are evaluated in declaration order and the first match wins, so the
// order of this table is part of the classification contract — reordering it
// changes outcomes for descriptions matching more than one keyword.
type CategoryRule struct {
	Keyword  string
	Category string
}

// DefaultCategoryRules is the static keyword table applied when neither the
// user's history nor an earlier rule resolved a category.
var DefaultCategoryRules = []CategoryRule{
	{Keyword: "Transferência", Category: "Transferência Interna"},
	{Keyword: "Resgate", Category: "Transferência Interna"},
	{Keyword: "Rendimento", Category: "Investimentos"},
	{Keyword: "Pagamento de fatura", Category: "Transferência Interna"},
	{Keyword: "Pagamento recebido", Category: "Transferência Interna"},
}

// SkipRule flags rows that are statement housekeeping rather than economic
// activity: a matching row is excluded from persistence and display-locked,
// but stays visible so the user can see why it was excluded.
type SkipRule struct {
	Format statement.Format
	Prefix string // case-insensitive description prefix
}

// DefaultSkipRules marks bill payments. On a credit card statement a payment
// received is the checking account paying the bill; on the checking side the
// same money shows up as the bill payment itself. Counting either would
// double-book the underlying expenses.
var DefaultSkipRules = []SkipRule{
	{Format: statement.FormatCreditCard, Prefix: "pagamento recebido"},
	{Format: statement.FormatCreditCard, Prefix: "payment received"},
	{Format: statement.FormatChecking, Prefix: "pagamento de fatura"},
	{Format: statement.FormatChecking, Prefix: "pagamento recebido"},
}
