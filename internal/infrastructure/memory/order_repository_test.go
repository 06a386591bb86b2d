package memory

import (
	"context"
	"testing"

	domain "github.com/Zhima-Mochi/ims/internal/domain/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, id int64) *domain.Order {
	t.Helper()
	o, err := domain.New(id, 1, []domain.Line{{ItemID: 101, Quantity: 2, UnitPrice: 99.9}})
	require.NoError(t, err)
	return o
}

func TestOrderRepositoryInsertGet(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()

	o := newTestOrder(t, 1)
	require.NoError(t, repo.Insert(ctx, o))

	got, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCreated, got.Status)
	assert.InDelta(t, 199.80, got.Total, 1e-9)

	assert.ErrorIs(t, repo.Insert(ctx, o), domain.ErrConflict)
}

func TestOrderRepositoryInsertRequiresID(t *testing.T) {
	repo := NewOrderRepository()
	assert.Error(t, repo.Insert(context.Background(), &domain.Order{}))
}

func TestOrderRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()

	o := newTestOrder(t, 1)
	assert.ErrorIs(t, repo.Update(ctx, o), domain.ErrNotFound)

	require.NoError(t, repo.Insert(ctx, o))
	require.NoError(t, o.Cancel())
	require.NoError(t, repo.Update(ctx, o))

	got, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)
}

func TestOrderRepositoryListSorted(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()

	for _, id := range []int64{3, 1, 2} {
		require.NoError(t, repo.Insert(ctx, newTestOrder(t, id)))
	}

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	for i, o := range orders {
		assert.Equal(t, int64(i+1), o.ID)
	}
}
