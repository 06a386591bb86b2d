package inventory

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("inventory: item not found")
	ErrDuplicate         = errors.New("inventory: item already registered")
	ErrInvalidQuantity   = errors.New("inventory: quantity must be zero or greater")
	ErrInsufficientStock = errors.New("inventory: insufficient stock")
)

// Item is one stocked product variant in the ledger.
type Item struct {
	ID        int64
	Name      string
	Quantity  int
	UpdatedAt time.Time
}

func NewItem(id int64, name string, quantity int) (*Item, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	return &Item{
		ID:        id,
		Name:      name,
		Quantity:  quantity,
		UpdatedAt: time.Now().UTC(),
	}, nil
}

// Adjust applies a signed delta to the quantity. The quantity never drops
// below zero; an adjustment that would do so fails and leaves the item
// unchanged.
func (i *Item) Adjust(delta int) (int, error) {
	if i.Quantity+delta < 0 {
		return i.Quantity, ErrInsufficientStock
	}
	i.Quantity += delta
	i.touch()
	return i.Quantity, nil
}

func (i *Item) touch() {
	i.UpdatedAt = time.Now().UTC()
}
