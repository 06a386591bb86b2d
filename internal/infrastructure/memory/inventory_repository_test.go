package memory

import (
	"context"
	"testing"

	domain "github.com/Zhima-Mochi/ims/internal/domain/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryRepositoryCreateGet(t *testing.T) {
	ctx := context.Background()
	repo := NewInventoryRepository()

	item, err := domain.NewItem(101, "Classic White T-Shirt", 10)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, item))

	got, err := repo.Get(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, item.Name, got.Name)
	assert.Equal(t, 10, got.Quantity)
}

func TestInventoryRepositoryDuplicateCreate(t *testing.T) {
	ctx := context.Background()
	repo := NewInventoryRepository()

	item, err := domain.NewItem(101, "shirt", 0)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, item))
	assert.ErrorIs(t, repo.Create(ctx, item), domain.ErrDuplicate)
}

func TestInventoryRepositoryGetMissing(t *testing.T) {
	repo := NewInventoryRepository()
	_, err := repo.Get(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInventoryRepositorySaveRequiresExisting(t *testing.T) {
	ctx := context.Background()
	repo := NewInventoryRepository()

	item, err := domain.NewItem(101, "shirt", 0)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Save(ctx, item), domain.ErrNotFound)

	require.NoError(t, repo.Create(ctx, item))
	item.Quantity = 25
	require.NoError(t, repo.Save(ctx, item))

	got, err := repo.Get(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, 25, got.Quantity)
}

func TestInventoryRepositoryCloneIsolation(t *testing.T) {
	ctx := context.Background()
	repo := NewInventoryRepository()

	item, err := domain.NewItem(101, "shirt", 10)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, item))

	// mutating the caller's copy must not leak into the store
	item.Quantity = 0

	got, err := repo.Get(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)

	got.Quantity = 77
	again, err := repo.Get(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, 10, again.Quantity)
}

func TestInventoryRepositoryListSorted(t *testing.T) {
	ctx := context.Background()
	repo := NewInventoryRepository()

	for _, id := range []int64{300, 100, 200} {
		item, err := domain.NewItem(id, "item", 1)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, item))
	}

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, int64(100), items[0].ID)
	assert.Equal(t, int64(200), items[1].ID)
	assert.Equal(t, int64(300), items[2].ID)
}
