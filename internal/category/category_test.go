package category_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centavo-app/centavo/internal/category"
)

type fakeRepository struct {
	category.Repository

	columnAdded bool
	ensureErr   error

	ceilings map[string]int64
}

func (f *fakeRepository) EnsureCeilingColumn(context.Context) (bool, error) {
	return f.columnAdded, f.ensureErr
}

func (f *fakeRepository) SetCeilingByName(_ context.Context, name string, cents int64) error {
	if f.ceilings == nil {
		f.ceilings = make(map[string]int64)
	}
	f.ceilings[name] = cents

	return nil
}

func TestService_BackfillCeilings_SeedsDefaults(t *testing.T) {
	repo := &fakeRepository{columnAdded: true}

	svc := category.NewService(repo)

	applied, err := svc.BackfillCeilings(context.Background())
	require.NoError(t, err)
	assert.True(t, applied)

	// Both language variants of a default get seeded with the same ceiling.
	assert.Equal(t, int64(500000), repo.ceilings["Salario"])
	assert.Equal(t, int64(500000), repo.ceilings["Salary"])
	assert.Equal(t, int64(100000), repo.ceilings["Alimentacao"])
	assert.Equal(t, int64(100000), repo.ceilings["Food"])
}

func TestService_BackfillCeilings_NoOpWhenColumnPresent(t *testing.T) {
	repo := &fakeRepository{columnAdded: false}

	svc := category.NewService(repo)

	applied, err := svc.BackfillCeilings(context.Background())
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Empty(t, repo.ceilings)
}

func TestService_BackfillCeilings_PropagatesError(t *testing.T) {
	repo := &fakeRepository{ensureErr: assert.AnError}

	_, err := category.NewService(repo).BackfillCeilings(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
