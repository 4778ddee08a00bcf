package importer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/centavo-app/centavo/internal/importer"
	"github.com/centavo-app/centavo/internal/ledger"
	"github.com/centavo-app/centavo/internal/statement"
)

func newService(t *testing.T) (*importer.Service, *ledger.MockRepository, *ledger.MockImportTx) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := ledger.NewMockRepository(ctrl)
	itx := ledger.NewMockImportTx(ctrl)

	return importer.NewService(ledger.NewService(repo)), repo, itx
}

// expectInsertAll wires the import transaction so that nothing is a duplicate
// and every submitted candidate is inserted.
func expectInsertAll(repo *ledger.MockRepository, itx *ledger.MockImportTx) {
	repo.EXPECT().BeginImport(gomock.Any(), gomock.Any(), gomock.Any()).Return(itx, nil)
	itx.EXPECT().FindExisting(gomock.Any(), gomock.Any()).Return(nil, nil)
	itx.EXPECT().CreateTransactions(gomock.Any(), gomock.Any()).Return(nil)
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)
}

func TestService_Import_EmptyFile(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().ClassificationHistory(gomock.Any()).Return(nil, nil)

	result, err := svc.Import(context.Background(), statement.FormatCreditCard, strings.NewReader(""))
	require.NoError(t, err)

	outcome := result.Outcome()
	assert.Equal(t, importer.TierError, outcome.Tier)
	assert.Equal(t, []string{"no transactions found"}, outcome.Messages)
	assert.Equal(t, "no transactions found", outcome.Message())
}

func TestService_Import_NewTransactions(t *testing.T) {
	svc, repo, itx := newService(t)

	repo.EXPECT().ClassificationHistory(gomock.Any()).Return(nil, nil)
	expectInsertAll(repo, itx)

	input := "date,title,amount\n" +
		"2026-01-05,Grocery Store,150.00\n" +
		"2026-01-06,Uber,23.50\n"

	result, err := svc.Import(context.Background(), statement.FormatCreditCard, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Zero(t, result.Duplicates)

	outcome := result.Outcome()
	assert.Equal(t, importer.TierSuccess, outcome.Tier)
	assert.Equal(t, "imported 2 transactions", outcome.Message())
}

// Re-importing a file whose rows are all already in the ledger is not an
// error: the run reports an informational outcome and inserts nothing.
func TestService_Import_AllDuplicates(t *testing.T) {
	svc, repo, itx := newService(t)

	repo.EXPECT().ClassificationHistory(gomock.Any()).Return(nil, nil)
	repo.EXPECT().BeginImport(gomock.Any(), gomock.Any(), gomock.Any()).Return(itx, nil)
	itx.EXPECT().
		FindExisting(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fps []ledger.Fingerprint) (map[ledger.Fingerprint]struct{}, error) {
			existing := make(map[ledger.Fingerprint]struct{}, len(fps))
			for _, fp := range fps {
				existing[fp] = struct{}{}
			}
			return existing, nil
		})
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)

	input := "date,title,amount\n2026-01-05,Grocery Store,150.00\n"

	result, err := svc.Import(context.Background(), statement.FormatCreditCard, strings.NewReader(input))
	require.NoError(t, err)
	assert.Zero(t, result.Imported)
	assert.Equal(t, 1, result.Duplicates)

	outcome := result.Outcome()
	assert.Equal(t, importer.TierInfo, outcome.Tier)
	assert.Equal(t, "nothing new to import: 1 transaction already present", outcome.Message())
}

// Skipped rows show up in the preview but must never reach the store.
func TestService_Import_SkippedRowNotPersisted(t *testing.T) {
	svc, repo, itx := newService(t)

	repo.EXPECT().ClassificationHistory(gomock.Any()).Return(nil, nil)
	repo.EXPECT().BeginImport(gomock.Any(), gomock.Any(), gomock.Any()).Return(itx, nil)
	itx.EXPECT().FindExisting(gomock.Any(), gomock.Any()).Return(nil, nil)
	itx.EXPECT().
		CreateTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, txs []*ledger.Transaction) error {
			require.Len(t, txs, 1)
			assert.Equal(t, "Mercado Central", txs[0].Description)
			return nil
		})
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)

	input := "data,valor,descrição\n" +
		"05/01/2026,-150.00,Mercado Central\n" +
		"06/01/2026,-2000.00,Pagamento de fatura cartão final 1234\n"

	result, err := svc.Import(context.Background(), statement.FormatChecking, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)

	require.Len(t, result.Candidates, 2)
	assert.True(t, result.Candidates[1].Skipped)
	assert.True(t, result.Candidates[1].DisableEdit)
}

// A skipped row whose description happens to contain an N/M marker (here a
// card expiry) must not expand into future installments: nothing from it may
// be persisted.
func TestService_Import_SkippedRowWithMarkerNotExpanded(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().ClassificationHistory(gomock.Any()).Return(nil, nil)

	input := "data,valor,descrição\n" +
		"05/01/2026,-2000.00,Pagamento de fatura cartão 12/26\n"

	result, err := svc.Import(context.Background(), statement.FormatChecking, strings.NewReader(input))
	require.NoError(t, err)

	assert.Zero(t, result.Imported)
	assert.Zero(t, result.FutureInstallments)

	require.Len(t, result.Candidates, 1)
	assert.True(t, result.Candidates[0].Skipped)

	assert.Equal(t, importer.TierError, result.Outcome().Tier)
}

func TestService_Import_RowErrorsSurfaceInOutcome(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().ClassificationHistory(gomock.Any()).Return(nil, nil)

	input := "date,title,amount\n" +
		"not-a-date,Grocery Store,150.00\n" +
		"2026-01-06,Uber,abc\n"

	result, err := svc.Import(context.Background(), statement.FormatCreditCard, strings.NewReader(input))
	require.NoError(t, err)
	assert.Zero(t, result.Imported)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 2, result.Errors[0].Line)
	assert.Equal(t, 3, result.Errors[1].Line)

	outcome := result.Outcome()
	assert.Equal(t, importer.TierError, outcome.Tier)
	assert.Len(t, outcome.Messages, 2)
}

// A damaged row never aborts the run: the good rows still import and the bad
// one is reported alongside them.
func TestService_Import_PartialFailureStillImports(t *testing.T) {
	svc, repo, itx := newService(t)

	repo.EXPECT().ClassificationHistory(gomock.Any()).Return(nil, nil)
	expectInsertAll(repo, itx)

	input := "date,title,amount\n" +
		"2026-01-05,Grocery Store,150.00\n" +
		"not-a-date,Broken,1.00\n"

	result, err := svc.Import(context.Background(), statement.FormatCreditCard, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	require.Len(t, result.Errors, 1)

	assert.Equal(t, importer.TierSuccess, result.Outcome().Tier)
}

func TestService_Import_ExpandsInstallments(t *testing.T) {
	svc, repo, itx := newService(t)

	repo.EXPECT().ClassificationHistory(gomock.Any()).Return(nil, nil)
	repo.EXPECT().BeginImport(gomock.Any(), gomock.Any(), gomock.Any()).Return(itx, nil)
	itx.EXPECT().FindExisting(gomock.Any(), gomock.Any()).Return(nil, nil)
	itx.EXPECT().CreateTransactions(gomock.Any(), gomock.Len(3)).Return(nil)
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)

	input := "date,title,amount\n2026-01-10,Notebook Dell 1/3,900.00\n"

	result, err := svc.Import(context.Background(), statement.FormatCreditCard, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 3, result.Imported)
	assert.Equal(t, 2, result.FutureInstallments)

	outcome := result.Outcome()
	assert.Equal(t, importer.TierSuccess, outcome.Tier)
	assert.Equal(t, "imported 3 transactions (2 future installments generated)", outcome.Message())
}

func TestService_Preview_AppliesHistory(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().ClassificationHistory(gomock.Any()).Return([]ledger.Classification{
		{Description: "grocery store", Category: "Alimentacao", Tags: []string{"mercado"}},
	}, nil)

	input := "date,title,amount\n2026-01-05,Grocery Store Midtown,150.00\n"

	preview, err := svc.Preview(context.Background(), statement.FormatCreditCard, strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, preview.Candidates, 1)
	assert.Equal(t, "Alimentacao", preview.Candidates[0].Category)
	assert.Equal(t, []string{"mercado"}, preview.Candidates[0].Tags)
}

func TestService_Preview_AutoDetectsFormat(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().ClassificationHistory(gomock.Any()).Return(nil, nil)

	input := "data,valor,descrição\n05/01/2026,-150.00,Mercado Central\n"

	preview, err := svc.Preview(context.Background(), statement.FormatAuto, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, statement.FormatChecking, preview.Format)
	require.Len(t, preview.Candidates, 1)
	assert.Equal(t, int64(-15000), preview.Candidates[0].AmountCents)
	assert.Equal(t, ledger.TypeExpense, preview.Candidates[0].Type)
}

func TestService_Commit_StorageFaultAbortsRun(t *testing.T) {
	svc, repo, itx := newService(t)

	repo.EXPECT().ClassificationHistory(gomock.Any()).Return(nil, nil)
	repo.EXPECT().BeginImport(gomock.Any(), gomock.Any(), gomock.Any()).Return(itx, nil)
	itx.EXPECT().FindExisting(gomock.Any(), gomock.Any()).Return(nil, assert.AnError)
	itx.EXPECT().Rollback().Return(nil)

	input := "date,title,amount\n2026-01-05,Grocery Store,150.00\n"

	preview, err := svc.Preview(context.Background(), statement.FormatCreditCard, strings.NewReader(input))
	require.NoError(t, err)

	_, err = svc.Commit(context.Background(), preview)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
