package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	item, err := NewItem(101, "Classic White T-Shirt", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(101), item.ID)
	assert.Equal(t, 5, item.Quantity)
	assert.False(t, item.UpdatedAt.IsZero())
}

func TestNewItemNegativeQuantity(t *testing.T) {
	_, err := NewItem(101, "bad", -1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestAdjust(t *testing.T) {
	tests := []struct {
		name    string
		initial int
		delta   int
		want    int
		wantErr error
	}{
		{name: "add stock", initial: 0, delta: 100, want: 100},
		{name: "deduct stock", initial: 100, delta: -2, want: 98},
		{name: "deduct to zero", initial: 3, delta: -3, want: 0},
		{name: "zero delta", initial: 7, delta: 0, want: 7},
		{name: "would go negative", initial: 2, delta: -5, wantErr: ErrInsufficientStock},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			item, err := NewItem(1, "item", tc.initial)
			require.NoError(t, err)

			got, err := item.Adjust(tc.delta)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				// a failed adjustment leaves the quantity unchanged
				assert.Equal(t, tc.initial, item.Quantity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want, item.Quantity)
		})
	}
}
