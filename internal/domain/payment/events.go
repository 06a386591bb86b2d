package payment

import "time"

// PaymentRecordedEvent is emitted when a payment completes.
type PaymentRecordedEvent struct {
	PaymentID  int64
	TenantID   int64
	OrderID    int64
	Amount     float64
	Method     string
	OccurredAt time.Time
}

func (PaymentRecordedEvent) EventName() string { return "payment.recorded" }

func NewPaymentRecordedEvent(p *Payment) PaymentRecordedEvent {
	return PaymentRecordedEvent{
		PaymentID:  p.ID,
		TenantID:   p.TenantID,
		OrderID:    p.OrderID,
		Amount:     p.Amount,
		Method:     p.Method,
		OccurredAt: time.Now().UTC(),
	}
}

// PaymentRefundedEvent is emitted when a payment is refunded.
type PaymentRefundedEvent struct {
	PaymentID  int64
	OrderID    int64
	Amount     float64
	OccurredAt time.Time
}

func (PaymentRefundedEvent) EventName() string { return "payment.refunded" }

func NewPaymentRefundedEvent(p *Payment) PaymentRefundedEvent {
	return PaymentRefundedEvent{
		PaymentID:  p.ID,
		OrderID:    p.OrderID,
		Amount:     p.Amount,
		OccurredAt: time.Now().UTC(),
	}
}
