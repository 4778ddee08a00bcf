package category

// CeilingDefault seeds a monthly budget ceiling for categories matching any
// of the listed names. Names cover the Portuguese and English spellings that
// appear in existing databases.
type CeilingDefault struct {
	Names        []string
	CeilingCents int64
}

// DefaultCeilings is static configuration for the one-time ceiling backfill.
// It is data, not behavior: nothing mutates it at runtime.
var DefaultCeilings = []CeilingDefault{
	// Income categories.
	{Names: []string{"Salario", "Salary"}, CeilingCents: 500000},
	{Names: []string{"Mesada"}, CeilingCents: 50000},
	{Names: []string{"Vendas", "Sales"}, CeilingCents: 200000},
	{Names: []string{"Investimentos", "Investments"}, CeilingCents: 100000},

	// Expense categories.
	{Names: []string{"Alimentacao", "Food"}, CeilingCents: 100000},
	{Names: []string{"Moradia", "Housing", "Rent"}, CeilingCents: 200000},
	{Names: []string{"Transporte", "Transport", "Uber"}, CeilingCents: 50000},
	{Names: []string{"Lazer", "Entertainment"}, CeilingCents: 50000},
	{Names: []string{"Saude", "Health", "Medical"}, CeilingCents: 30000},
	{Names: []string{"Educacao", "Education"}, CeilingCents: 80000},
}
