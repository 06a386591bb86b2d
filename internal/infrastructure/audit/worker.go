package audit

import (
	"context"

	dominv "github.com/Zhima-Mochi/ims/internal/domain/inventory"
	domorder "github.com/Zhima-Mochi/ims/internal/domain/order"
	domoutbox "github.com/Zhima-Mochi/ims/internal/domain/outbox"
	dompay "github.com/Zhima-Mochi/ims/internal/domain/payment"
	domsub "github.com/Zhima-Mochi/ims/internal/domain/subscription"
	"github.com/Zhima-Mochi/ims/internal/observability"
)

const componentAudit = "audit_worker"

// Worker consumes every domain event from the bus and turns it into a
// structured audit log line plus a business counter. It never feeds back
// into the services, so a slow or failing audit trail cannot affect the
// synchronous core flows.
type Worker struct {
	subscriber domoutbox.Subscriber
	tel        observability.Observability
	log        observability.Logger
}

func New(subscriber domoutbox.Subscriber, tel observability.Observability) *Worker {
	if tel == nil {
		tel = observability.Nop()
	}
	return &Worker{
		subscriber: subscriber,
		tel:        tel,
		log:        tel.Logger().With(observability.F("component", componentAudit)),
	}
}

func (w *Worker) Start() {
	for _, name := range []string{
		dominv.ItemRegisteredEvent{}.EventName(),
		dominv.StockAdjustedEvent{}.EventName(),
		domorder.OrderCreatedEvent{}.EventName(),
		domorder.OrderCancelledEvent{}.EventName(),
		dompay.PaymentRecordedEvent{}.EventName(),
		dompay.PaymentRefundedEvent{}.EventName(),
		domsub.SubscriptionRenewedEvent{}.EventName(),
	} {
		w.subscriber.Subscribe(name, w.handle)
	}
}

func (w *Worker) handle(ctx context.Context, e domoutbox.Event) error {
	_ = ctx
	name := e.EventName()

	w.tel.Metrics().Counter(observability.MDomainEvents).Add(1,
		observability.L("event", name),
	)

	fields := []observability.Field{observability.F("event", name)}
	switch ev := e.(type) {
	case dominv.ItemRegisteredEvent:
		fields = append(fields,
			observability.F("item_id", ev.ItemID),
			observability.F("quantity", ev.Quantity),
		)
	case dominv.StockAdjustedEvent:
		fields = append(fields,
			observability.F("item_id", ev.ItemID),
			observability.F("delta", ev.Delta),
			observability.F("new_quantity", ev.NewQuantity),
		)
	case domorder.OrderCreatedEvent:
		fields = append(fields,
			observability.F("order_id", ev.OrderID),
			observability.F("tenant_id", ev.TenantID),
			observability.F("total", ev.Total),
		)
	case domorder.OrderCancelledEvent:
		fields = append(fields,
			observability.F("order_id", ev.OrderID),
			observability.F("tenant_id", ev.TenantID),
		)
	case dompay.PaymentRecordedEvent:
		fields = append(fields,
			observability.F("payment_id", ev.PaymentID),
			observability.F("order_id", ev.OrderID),
			observability.F("amount", ev.Amount),
		)
	case dompay.PaymentRefundedEvent:
		fields = append(fields,
			observability.F("payment_id", ev.PaymentID),
			observability.F("amount", ev.Amount),
		)
	case domsub.SubscriptionRenewedEvent:
		fields = append(fields,
			observability.F("tenant_id", ev.TenantID),
			observability.F("plan", string(ev.Plan)),
			observability.F("end_at", ev.EndAt),
		)
	}

	w.log.Info("audit_event", fields...)
	return nil
}
