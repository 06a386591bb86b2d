package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLineValidation(t *testing.T) {
	_, err := NewLine(101, 0, 10)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewLine(101, 1, -0.01)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	line, err := NewLine(101, 2, 99.9)
	require.NoError(t, err)
	assert.InDelta(t, 199.80, line.Subtotal(), 1e-9)
}

func TestNewOrderTotal(t *testing.T) {
	tests := []struct {
		name  string
		lines []Line
		want  float64
	}{
		{
			name:  "single line",
			lines: []Line{{ItemID: 101, Quantity: 2, UnitPrice: 99.9}},
			want:  199.80,
		},
		{
			name: "multiple lines",
			lines: []Line{
				{ItemID: 101, Quantity: 3, UnitPrice: 10.0},
				{ItemID: 102, Quantity: 1, UnitPrice: 0.99},
			},
			want: 30.99,
		},
		{
			name:  "rounding to two decimals",
			lines: []Line{{ItemID: 101, Quantity: 3, UnitPrice: 0.333}},
			want:  1.00,
		},
		{
			name:  "free item",
			lines: []Line{{ItemID: 101, Quantity: 5, UnitPrice: 0}},
			want:  0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o, err := New(1, 1, tc.lines)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, o.Total, 1e-9)
			assert.Equal(t, StatusCreated, o.Status)
		})
	}
}

func TestNewOrderRequiresLines(t *testing.T) {
	_, err := New(1, 1, nil)
	assert.ErrorIs(t, err, ErrNoLines)
}

func TestCancel(t *testing.T) {
	o, err := New(1, 1, []Line{{ItemID: 101, Quantity: 1, UnitPrice: 5}})
	require.NoError(t, err)

	require.NoError(t, o.Cancel())
	assert.Equal(t, StatusCancelled, o.Status)

	// cancelling twice is an invalid transition
	assert.ErrorIs(t, o.Cancel(), ErrInvalidState)
}

func TestCloneIsolation(t *testing.T) {
	o, err := New(1, 1, []Line{{ItemID: 101, Quantity: 1, UnitPrice: 5}})
	require.NoError(t, err)

	clone := o.Clone()
	clone.Lines[0].Quantity = 99
	clone.Status = StatusCancelled

	assert.Equal(t, 1, o.Lines[0].Quantity)
	assert.Equal(t, StatusCreated, o.Status)
}
