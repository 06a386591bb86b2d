package inventory

import (
	"context"
	"testing"

	dominv "github.com/Zhima-Mochi/ims/internal/domain/inventory"
	"github.com/Zhima-Mochi/ims/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(memory.NewInventoryRepository(), nil, nil)
}

func TestRegisterAndStock(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	item, err := svc.Register(ctx, 101, "Classic White T-Shirt", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(101), item.ID)

	stock, err := svc.Stock(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, 10, stock)
}

func TestRegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.Register(ctx, 101, "shirt", 0)
	require.NoError(t, err)

	_, err = svc.Register(ctx, 101, "shirt again", 5)
	assert.ErrorIs(t, err, dominv.ErrDuplicate)

	// the original registration is untouched
	stock, err := svc.Stock(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, 0, stock)
}

func TestAdjust(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.Register(ctx, 101, "shirt", 0)
	require.NoError(t, err)

	got, err := svc.Adjust(ctx, 101, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, got)

	got, err = svc.Adjust(ctx, 101, -2)
	require.NoError(t, err)
	assert.Equal(t, 98, got)
}

func TestAdjustInsufficientStock(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.Register(ctx, 101, "shirt", 2)
	require.NoError(t, err)

	_, err = svc.Adjust(ctx, 101, -5)
	require.ErrorIs(t, err, dominv.ErrInsufficientStock)

	stock, err := svc.Stock(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, 2, stock)
}

func TestAdjustUnknownItem(t *testing.T) {
	svc := newTestService()
	_, err := svc.Adjust(context.Background(), 999, 1)
	assert.ErrorIs(t, err, dominv.ErrNotFound)
}
