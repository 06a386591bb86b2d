package memory

import (
	"context"
	"testing"

	domain "github.com/Zhima-Mochi/ims/internal/domain/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPayment(t *testing.T, id int64) *domain.Payment {
	t.Helper()
	p, err := domain.New(id, 1, 42, 199.8, "cash")
	require.NoError(t, err)
	return p
}

func TestPaymentRepositoryInsertGet(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentRepository()

	p := newTestPayment(t, 1)
	require.NoError(t, repo.Insert(ctx, p))

	got, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	assert.InDelta(t, 199.80, got.Amount, 1e-9)

	assert.ErrorIs(t, repo.Insert(ctx, p), domain.ErrConflict)
}

func TestPaymentRepositoryInsertRequiresID(t *testing.T) {
	repo := NewPaymentRepository()
	assert.Error(t, repo.Insert(context.Background(), &domain.Payment{}))
}

func TestPaymentRepositoryGetMissing(t *testing.T) {
	_, err := NewPaymentRepository().Get(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPaymentRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentRepository()

	p := newTestPayment(t, 1)
	assert.ErrorIs(t, repo.Update(ctx, p), domain.ErrNotFound)

	require.NoError(t, repo.Insert(ctx, p))
	require.NoError(t, p.Refund())
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRefunded, got.Status)
}

func TestPaymentRepositoryCloneIsolation(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentRepository()

	p := newTestPayment(t, 1)
	require.NoError(t, repo.Insert(ctx, p))

	p.Amount = 0

	got, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.InDelta(t, 199.80, got.Amount, 1e-9)
}

func TestPaymentRepositoryListSorted(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentRepository()

	for _, id := range []int64{3, 1, 2} {
		require.NoError(t, repo.Insert(ctx, newTestPayment(t, id)))
	}

	payments, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 3)
	for i, p := range payments {
		assert.Equal(t, int64(i+1), p.ID)
	}
}
