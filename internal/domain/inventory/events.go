package inventory

import "time"

// ItemRegisteredEvent is emitted when a new item enters the ledger.
type ItemRegisteredEvent struct {
	ItemID     int64
	Name       string
	Quantity   int
	OccurredAt time.Time
}

func (ItemRegisteredEvent) EventName() string { return "inventory.item_registered" }

func NewItemRegisteredEvent(item *Item) ItemRegisteredEvent {
	return ItemRegisteredEvent{
		ItemID:     item.ID,
		Name:       item.Name,
		Quantity:   item.Quantity,
		OccurredAt: time.Now().UTC(),
	}
}

// StockAdjustedEvent is emitted after a successful quantity adjustment.
type StockAdjustedEvent struct {
	ItemID      int64
	Delta       int
	NewQuantity int
	OccurredAt  time.Time
}

func (StockAdjustedEvent) EventName() string { return "inventory.stock_adjusted" }

func NewStockAdjustedEvent(itemID int64, delta, newQuantity int) StockAdjustedEvent {
	return StockAdjustedEvent{
		ItemID:      itemID,
		Delta:       delta,
		NewQuantity: newQuantity,
		OccurredAt:  time.Now().UTC(),
	}
}
