package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centavo-app/centavo/internal/classify"
	"github.com/centavo-app/centavo/internal/ledger"
	"github.com/centavo-app/centavo/internal/statement"
)

func candidate(desc string) ledger.Candidate {
	return ledger.Candidate{
		Description: desc,
		Category:    ledger.CategoryUncategorized,
		AmountCents: -1000,
		Type:        ledger.TypeExpense,
		Line:        2,
	}
}

func TestClassifier_SkipDetection(t *testing.T) {
	tests := []struct {
		name     string
		format   statement.Format
		desc     string
		wantSkip bool
	}{
		{
			name:     "PaymentReceivedOnCreditCard",
			format:   statement.FormatCreditCard,
			desc:     "Payment received 500.00",
			wantSkip: true,
		},
		{
			name:     "PagamentoRecebidoOnCreditCard",
			format:   statement.FormatCreditCard,
			desc:     "Pagamento recebido",
			wantSkip: true,
		},
		{
			name:     "PagamentoDeFaturaOnChecking",
			format:   statement.FormatChecking,
			desc:     "Pagamento de fatura - Cartão Nubank",
			wantSkip: true,
		},
		{
			name:     "PrefixOnlyNotSubstring",
			format:   statement.FormatCreditCard,
			desc:     "Estorno de pagamento recebido",
			wantSkip: false,
		},
		{
			name:     "FormatScoped",
			format:   statement.FormatCreditCard,
			desc:     "Pagamento de fatura",
			wantSkip: false,
		},
		{
			name:     "RegularPurchase",
			format:   statement.FormatCreditCard,
			desc:     "Grocery Store",
			wantSkip: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := candidate(tt.desc)
			classify.New().Apply(tt.format, &c)

			assert.Equal(t, tt.wantSkip, c.Skipped)

			if tt.wantSkip {
				// A skipped row is always display-locked.
				assert.True(t, c.DisableEdit)
				assert.NoError(t, c.Validate())
			}
		})
	}
}

func TestClassifier_KeywordCategories(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want string
	}{
		{
			name: "PixTransfer",
			desc: "PIX Transferência Interna",
			want: "Transferência Interna",
		},
		{
			name: "Resgate",
			desc: "Resgate RDB",
			want: "Transferência Interna",
		},
		{
			name: "Rendimento",
			desc: "Rendimento da poupança",
			want: "Investimentos",
		},
		{
			name: "CaseInsensitive",
			desc: "TRANSFERÊNCIA enviada pelo Pix",
			want: "Transferência Interna",
		},
		{
			name: "NoMatchKeepsSentinel",
			desc: "Grocery Store",
			want: ledger.CategoryUncategorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := candidate(tt.desc)
			classify.New().Apply(statement.FormatCreditCard, &c)

			assert.Equal(t, tt.want, c.Category)
		})
	}
}

// Rule order is the tie-break: when several keywords match one description,
// the earliest rule in the table wins. Reordering the table is a behavior
// change, which is why this is pinned down here.
func TestClassifier_FirstMatchWins(t *testing.T) {
	rules := []classify.CategoryRule{
		{Keyword: "mercado", Category: "Alimentação"},
		{Keyword: "mercado pago", Category: "Serviços"},
	}

	c := candidate("Mercado Pago * Assinatura")
	classify.New(classify.WithRules(nil, rules)).Apply(statement.FormatCreditCard, &c)

	assert.Equal(t, "Alimentação", c.Category)

	// Declaration order decides, not match length or position.
	reversed := []classify.CategoryRule{rules[1], rules[0]}

	c2 := candidate("Mercado Pago * Assinatura")
	classify.New(classify.WithRules(nil, reversed)).Apply(statement.FormatCreditCard, &c2)

	assert.Equal(t, "Serviços", c2.Category)
}

func TestClassifier_SkippedRowsStillCategorized(t *testing.T) {
	c := candidate("Pagamento recebido")
	classify.New().Apply(statement.FormatCreditCard, &c)

	require.True(t, c.Skipped)
	assert.Equal(t, "Transferência Interna", c.Category)
}

func TestClassifier_HistoryBeforeKeywords(t *testing.T) {
	history := []ledger.Classification{
		{Description: "padaria do joão", Category: "Alimentação", Tags: []string{"Padaria"}},
		{Description: "transferência enviada", Category: "Aluguel"},
	}

	classifier := classify.New(classify.WithHistory(history))

	// Bidirectional substring match fills category and tags.
	c := candidate("PADARIA DO JOÃO 03/06")
	classifier.Apply(statement.FormatCreditCard, &c)
	assert.Equal(t, "Alimentação", c.Category)
	assert.Equal(t, []string{"Padaria"}, c.Tags)

	// History outranks the static keyword table.
	c2 := candidate("Transferência enviada pelo Pix")
	classifier.Apply(statement.FormatCreditCard, &c2)
	assert.Equal(t, "Aluguel", c2.Category)

	// No history match falls through to keywords.
	c3 := candidate("Resgate RDB")
	classifier.Apply(statement.FormatCreditCard, &c3)
	assert.Equal(t, "Transferência Interna", c3.Category)
}

func TestClassifier_HistoryDoesNotOverwrite(t *testing.T) {
	history := []ledger.Classification{
		{Description: "grocery store", Category: "Alimentação", Tags: []string{"Mercado"}},
	}

	c := candidate("Grocery Store")
	c.Category = "Presentes"
	c.Tags = []string{"Aniversário"}

	classify.New(classify.WithHistory(history)).Apply(statement.FormatCreditCard, &c)

	assert.Equal(t, "Presentes", c.Category)
	assert.Equal(t, []string{"Aniversário"}, c.Tags)
}
