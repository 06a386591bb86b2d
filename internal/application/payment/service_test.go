package payment

import (
	"context"
	"testing"

	domain "github.com/Zhima-Mochi/ims/internal/domain/payment"
	"github.com/Zhima-Mochi/ims/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(memory.NewPaymentRepository(), nil, nil)
}

func TestPay(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	p, err := svc.Pay(ctx, 1, 42, 199.8, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, domain.StatusCompleted, p.Status)
	assert.Equal(t, domain.DefaultMethod, p.Method)
	assert.InDelta(t, 199.80, p.Amount, 1e-9)
}

func TestPayAgainstUnknownOrderSucceeds(t *testing.T) {
	// order linkage is not validated here; any positive amount against any
	// order id is recorded
	p, err := newTestService().Pay(context.Background(), 1, 999999, 10, "card")
	require.NoError(t, err)
	assert.Equal(t, int64(999999), p.OrderID)
}

func TestPayInvalidAmount(t *testing.T) {
	svc := newTestService()
	for _, amount := range []float64{0, -5} {
		_, err := svc.Pay(context.Background(), 1, 42, amount, "cash")
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	}
}

func TestRefund(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	p, err := svc.Pay(ctx, 1, 42, 50, "cash")
	require.NoError(t, err)

	refunded, err := svc.Refund(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRefunded, refunded.Status)

	_, err = svc.Refund(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestRefundUnknownPayment(t *testing.T) {
	_, err := newTestService().Refund(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPaymentIDsAreSequential(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	for want := int64(1); want <= 3; want++ {
		p, err := svc.Pay(ctx, 1, 42, 5, "cash")
		require.NoError(t, err)
		assert.Equal(t, want, p.ID)
	}
}
