package order

import "time"

// OrderCreatedEvent is emitted after stock has been deducted and the
// order persisted.
type OrderCreatedEvent struct {
	OrderID    int64
	TenantID   int64
	Total      float64
	LineCount  int
	OccurredAt time.Time
}

func (OrderCreatedEvent) EventName() string { return "order.created" }

func NewOrderCreatedEvent(o *Order) OrderCreatedEvent {
	return OrderCreatedEvent{
		OrderID:    o.ID,
		TenantID:   o.TenantID,
		Total:      o.Total,
		LineCount:  len(o.Lines),
		OccurredAt: time.Now().UTC(),
	}
}

// OrderCancelledEvent is emitted after a cancellation restored the stock.
type OrderCancelledEvent struct {
	OrderID    int64
	TenantID   int64
	OccurredAt time.Time
}

func (OrderCancelledEvent) EventName() string { return "order.cancelled" }

func NewOrderCancelledEvent(o *Order) OrderCancelledEvent {
	return OrderCancelledEvent{
		OrderID:    o.ID,
		TenantID:   o.TenantID,
		OccurredAt: time.Now().UTC(),
	}
}
