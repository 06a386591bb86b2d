package subscription

import "time"

// SubscriptionRenewedEvent is emitted after a renewal overwrote the record.
type SubscriptionRenewedEvent struct {
	TenantID   int64
	Plan       Plan
	EndAt      time.Time
	OccurredAt time.Time
}

func (SubscriptionRenewedEvent) EventName() string { return "subscription.renewed" }

func NewSubscriptionRenewedEvent(s *Subscription) SubscriptionRenewedEvent {
	return SubscriptionRenewedEvent{
		TenantID:   s.TenantID,
		Plan:       s.Plan,
		EndAt:      s.EndAt,
		OccurredAt: time.Now().UTC(),
	}
}
