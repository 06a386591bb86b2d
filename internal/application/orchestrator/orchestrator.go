package orchestrator

import (
	"context"
	"errors"
	"time"

	appinventory "github.com/Zhima-Mochi/ims/internal/application/inventory"
	apporder "github.com/Zhima-Mochi/ims/internal/application/order"
	apppayment "github.com/Zhima-Mochi/ims/internal/application/payment"
	appsubscription "github.com/Zhima-Mochi/ims/internal/application/subscription"
	dominv "github.com/Zhima-Mochi/ims/internal/domain/inventory"
	domorder "github.com/Zhima-Mochi/ims/internal/domain/order"
	domsub "github.com/Zhima-Mochi/ims/internal/domain/subscription"
	"github.com/Zhima-Mochi/ims/internal/observability"
	"github.com/Zhima-Mochi/ims/internal/observability/logctx"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	componentOrchestrator = "orchestrator"
	spanPrefix            = "WF."
)

// Exporter writes a named record set to a timestamped file and returns its path.
type Exporter interface {
	Export(name string, headers []string, records []map[string]any) (string, error)
}

// Orchestrator composes the four services into named workflows. It holds no
// state of its own and is the only layer allowed to catch-and-report errors
// for the demonstration path.
type Orchestrator struct {
	inventory    *appinventory.Service
	orders       *apporder.Service
	payments     *apppayment.Service
	subscription *appsubscription.Service
	exporter     Exporter
	planPrices   map[string]float64
	tel          observability.Observability
	log          observability.Logger
}

func New(
	inventory *appinventory.Service,
	orders *apporder.Service,
	payments *apppayment.Service,
	subscription *appsubscription.Service,
	exporter Exporter,
	planPrices map[string]float64,
	tel observability.Observability,
) *Orchestrator {
	if tel == nil {
		tel = observability.Nop()
	}
	return &Orchestrator{
		inventory:    inventory,
		orders:       orders,
		payments:     payments,
		subscription: subscription,
		exporter:     exporter,
		planPrices:   planPrices,
		tel:          tel,
		log:          tel.Logger().With(observability.F("component", componentOrchestrator)),
	}
}

type StockResult struct {
	ItemID      int64 `json:"item_id"`
	NewQuantity int   `json:"new_quantity"`
}

type OrderResult struct {
	OrderID  int64   `json:"order_id"`
	TenantID int64   `json:"tenant_id"`
	Status   string  `json:"status"`
	Total    float64 `json:"total"`
}

type PaymentResult struct {
	PaymentID int64   `json:"payment_id"`
	OrderID   int64   `json:"order_id"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	Status    string  `json:"status"`
}

type SubscriptionResult struct {
	TenantID   int64   `json:"tenant_id"`
	Plan       string  `json:"plan"`
	Price      float64 `json:"price"`
	ValidUntil string  `json:"valid_until"`
}

func (o *Orchestrator) RegisterItem(ctx context.Context, itemID int64, name string, initialStock int) (_ StockResult, err error) {
	ctx, done := o.instrument(ctx, "inventory.register")
	defer func() { done(err) }()

	item, err := o.inventory.Register(ctx, itemID, name, initialStock)
	if err != nil {
		return StockResult{}, err
	}
	return StockResult{ItemID: item.ID, NewQuantity: item.Quantity}, nil
}

func (o *Orchestrator) AdjustStock(ctx context.Context, itemID int64, delta int) (_ StockResult, err error) {
	ctx, done := o.instrument(ctx, "inventory.adjust")
	defer func() { done(err) }()

	qty, err := o.inventory.Adjust(ctx, itemID, delta)
	if err != nil {
		return StockResult{}, err
	}
	return StockResult{ItemID: itemID, NewQuantity: qty}, nil
}

func (o *Orchestrator) Stock(ctx context.Context, itemID int64) (_ StockResult, err error) {
	ctx, done := o.instrument(ctx, "inventory.stock")
	defer func() { done(err) }()

	qty, err := o.inventory.Stock(ctx, itemID)
	if err != nil {
		return StockResult{}, err
	}
	return StockResult{ItemID: itemID, NewQuantity: qty}, nil
}

func (o *Orchestrator) ListItems(ctx context.Context) ([]*dominv.Item, error) {
	return o.inventory.List(ctx)
}

func (o *Orchestrator) PlaceOrder(ctx context.Context, tenantID int64, lines []apporder.LineInput) (_ OrderResult, err error) {
	ctx, done := o.instrument(ctx, "order.place")
	defer func() { done(err) }()

	entity, err := o.orders.CreateOrder(ctx, tenantID, lines)
	if err != nil {
		return OrderResult{}, err
	}
	return orderResult(entity), nil
}

func (o *Orchestrator) CancelOrder(ctx context.Context, orderID int64) (_ OrderResult, err error) {
	ctx, done := o.instrument(ctx, "order.cancel")
	defer func() { done(err) }()

	entity, err := o.orders.CancelOrder(ctx, orderID)
	if err != nil {
		return OrderResult{}, err
	}
	return orderResult(entity), nil
}

func (o *Orchestrator) GetOrder(ctx context.Context, orderID int64) (_ OrderResult, err error) {
	entity, err := o.orders.Get(ctx, orderID)
	if err != nil {
		return OrderResult{}, err
	}
	return orderResult(entity), nil
}

func (o *Orchestrator) ListOrders(ctx context.Context) ([]OrderResult, error) {
	orders, err := o.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]OrderResult, 0, len(orders))
	for _, entity := range orders {
		out = append(out, orderResult(entity))
	}
	return out, nil
}

func (o *Orchestrator) PayOrder(ctx context.Context, tenantID, orderID int64, amount float64, method string) (_ PaymentResult, err error) {
	ctx, done := o.instrument(ctx, "payment.pay")
	defer func() { done(err) }()

	entity, err := o.payments.Pay(ctx, tenantID, orderID, amount, method)
	if err != nil {
		return PaymentResult{}, err
	}
	return PaymentResult{
		PaymentID: entity.ID,
		OrderID:   entity.OrderID,
		Amount:    entity.Amount,
		Method:    entity.Method,
		Status:    string(entity.Status),
	}, nil
}

func (o *Orchestrator) RefundPayment(ctx context.Context, paymentID int64) (_ PaymentResult, err error) {
	ctx, done := o.instrument(ctx, "payment.refund")
	defer func() { done(err) }()

	entity, err := o.payments.Refund(ctx, paymentID)
	if err != nil {
		return PaymentResult{}, err
	}
	return PaymentResult{
		PaymentID: entity.ID,
		OrderID:   entity.OrderID,
		Amount:    entity.Amount,
		Method:    entity.Method,
		Status:    string(entity.Status),
	}, nil
}

func (o *Orchestrator) ListPayments(ctx context.Context) ([]PaymentResult, error) {
	payments, err := o.payments.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentResult, 0, len(payments))
	for _, p := range payments {
		out = append(out, PaymentResult{
			PaymentID: p.ID,
			OrderID:   p.OrderID,
			Amount:    p.Amount,
			Method:    p.Method,
			Status:    string(p.Status),
		})
	}
	return out, nil
}

func (o *Orchestrator) RenewSubscription(ctx context.Context, tenantID int64, plan string) (_ SubscriptionResult, err error) {
	ctx, done := o.instrument(ctx, "subscription.renew")
	defer func() { done(err) }()

	sub, err := o.subscription.Renew(ctx, tenantID, domsub.Plan(plan))
	if err != nil {
		return SubscriptionResult{}, err
	}
	return SubscriptionResult{
		TenantID:   sub.TenantID,
		Plan:       string(sub.Plan),
		Price:      o.planPrices[string(sub.Plan)],
		ValidUntil: sub.EndAt.UTC().Format(time.RFC3339),
	}, nil
}

func (o *Orchestrator) SubscriptionStatus(ctx context.Context, tenantID int64) (string, error) {
	status, err := o.subscription.Status(ctx, tenantID)
	if err != nil {
		return "", err
	}
	return string(status), nil
}

var orderExportHeaders = []string{"id", "tenant_id", "status", "total", "lines", "created_at"}

// ExportOrders writes all orders to a timestamped CSV and returns the path.
func (o *Orchestrator) ExportOrders(ctx context.Context) (_ string, err error) {
	ctx, done := o.instrument(ctx, "export.orders")
	defer func() { done(err) }()

	if o.exporter == nil {
		return "", errors.New("orchestrator: no exporter configured")
	}
	orders, err := o.orders.List(ctx)
	if err != nil {
		return "", err
	}

	records := make([]map[string]any, 0, len(orders))
	for _, ord := range orders {
		records = append(records, map[string]any{
			"id":         ord.ID,
			"tenant_id":  ord.TenantID,
			"status":     string(ord.Status),
			"total":      ord.Total,
			"lines":      len(ord.Lines),
			"created_at": ord.CreatedAt,
		})
	}
	path, err := o.exporter.Export("orders", orderExportHeaders, records)
	if err != nil {
		return "", err
	}
	o.tel.Metrics().Counter(observability.MExportedRecords).Add(float64(len(records)),
		observability.L("set", "orders"),
	)
	return path, nil
}

var paymentExportHeaders = []string{"id", "tenant_id", "order_id", "amount", "method", "refunded", "created_at"}

// ExportPayments writes all payments to a timestamped CSV and returns the path.
func (o *Orchestrator) ExportPayments(ctx context.Context) (_ string, err error) {
	ctx, done := o.instrument(ctx, "export.payments")
	defer func() { done(err) }()

	if o.exporter == nil {
		return "", errors.New("orchestrator: no exporter configured")
	}
	payments, err := o.payments.List(ctx)
	if err != nil {
		return "", err
	}

	records := make([]map[string]any, 0, len(payments))
	for _, p := range payments {
		records = append(records, map[string]any{
			"id":         p.ID,
			"tenant_id":  p.TenantID,
			"order_id":   p.OrderID,
			"amount":     p.Amount,
			"method":     p.Method,
			"refunded":   p.Status != "COMPLETED",
			"created_at": p.CreatedAt,
		})
	}
	path, err := o.exporter.Export("payments", paymentExportHeaders, records)
	if err != nil {
		return "", err
	}
	o.tel.Metrics().Counter(observability.MExportedRecords).Add(float64(len(records)),
		observability.L("set", "payments"),
	)
	return path, nil
}

// instrument opens a workflow span and returns a completion hook recording
// RED metrics. Callers defer the hook with the workflow's final error.
func (o *Orchestrator) instrument(ctx context.Context, workflow string) (context.Context, func(error)) {
	ctx, span := o.tel.Tracer().Start(ctx, spanPrefix+workflow,
		attribute.String("workflow", workflow),
	)
	ctx = logctx.With(ctx, logctx.FromOr(ctx, o.log).With(observability.F("workflow", workflow)))
	start := time.Now()

	return ctx, func(err error) {
		outcome := "success"
		if err != nil {
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()

		o.tel.Metrics().Counter(observability.MWorkflowRequests).Add(1,
			observability.L("workflow", workflow),
			observability.L("outcome", outcome),
		)
		o.tel.Metrics().Histogram(observability.MWorkflowDuration).Observe(time.Since(start).Seconds(),
			observability.L("workflow", workflow),
		)
	}
}

func orderResult(o *domorder.Order) OrderResult {
	return OrderResult{
		OrderID:  o.ID,
		TenantID: o.TenantID,
		Status:   string(o.Status),
		Total:    o.Total,
	}
}
