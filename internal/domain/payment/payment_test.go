package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	p, err := New(1, 1, 42, 199.8, "card")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, p.Status)
	assert.Equal(t, int64(42), p.OrderID)
	assert.InDelta(t, 199.80, p.Amount, 1e-9)
	assert.Equal(t, "card", p.Method)
}

func TestNewPaymentDefaults(t *testing.T) {
	p, err := New(1, 1, 42, 10.005, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultMethod, p.Method)
	// amount is stored rounded to two decimals
	assert.InDelta(t, 10.01, p.Amount, 1e-9)
}

func TestNewPaymentInvalidAmount(t *testing.T) {
	for _, amount := range []float64{0, -1, -0.01} {
		_, err := New(1, 1, 42, amount, "cash")
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
}

func TestRefund(t *testing.T) {
	p, err := New(1, 1, 42, 50, "cash")
	require.NoError(t, err)

	require.NoError(t, p.Refund())
	assert.Equal(t, StatusRefunded, p.Status)

	// REFUNDED is terminal
	assert.ErrorIs(t, p.Refund(), ErrInvalidState)
}
