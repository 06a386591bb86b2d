package httppresentation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	apporder "github.com/Zhima-Mochi/ims/internal/application/order"
	"github.com/Zhima-Mochi/ims/internal/application/orchestrator"
	dominv "github.com/Zhima-Mochi/ims/internal/domain/inventory"
	domorder "github.com/Zhima-Mochi/ims/internal/domain/order"
	dompay "github.com/Zhima-Mochi/ims/internal/domain/payment"
	domsub "github.com/Zhima-Mochi/ims/internal/domain/subscription"
	"github.com/Zhima-Mochi/ims/internal/observability"
	"github.com/Zhima-Mochi/ims/internal/observability/logctx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const componentHTTPHandler = "http_server"

// Handler exposes the orchestrator workflows as JSON endpoints. This is a
// demonstration surface; the service contracts live in the application layer.
type Handler struct {
	orch *orchestrator.Orchestrator
	log  observability.Logger
	tel  observability.Observability
}

func NewHandler(orch *orchestrator.Orchestrator, tel observability.Observability) *Handler {
	if tel == nil {
		tel = observability.Nop()
	}
	return &Handler{
		orch: orch,
		log:  tel.Logger().With(observability.F("component", componentHTTPHandler)),
		tel:  tel,
	}
}

func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	// Wire each route with middlewares:
	// Trace → HTTP metrics → Access log → Handler
	h.muxHandle(mux, http.MethodPost, "/inventory/register", h.handleRegisterItem)
	h.muxHandle(mux, http.MethodPost, "/inventory/adjust", h.handleAdjustStock)
	h.muxHandle(mux, http.MethodGet, "/inventory/stock", h.handleStock)
	h.muxHandle(mux, http.MethodGet, "/inventory/items", h.handleListItems)
	h.muxHandle(mux, http.MethodPost, "/order", h.handlePlaceOrder)
	h.muxHandle(mux, http.MethodPost, "/order/cancel", h.handleCancelOrder)
	h.muxHandle(mux, http.MethodGet, "/order", h.handleGetOrder)
	h.muxHandle(mux, http.MethodGet, "/orders", h.handleListOrders)
	h.muxHandle(mux, http.MethodPost, "/payment/pay", h.handlePay)
	h.muxHandle(mux, http.MethodPost, "/payment/refund", h.handleRefund)
	h.muxHandle(mux, http.MethodGet, "/payments", h.handleListPayments)
	h.muxHandle(mux, http.MethodPost, "/subscription/renew", h.handleRenewSubscription)
	h.muxHandle(mux, http.MethodGet, "/subscription/status", h.handleSubscriptionStatus)
	h.muxHandle(mux, http.MethodPost, "/export/orders", h.handleExportOrders)
	h.muxHandle(mux, http.MethodPost, "/export/payments", h.handleExportPayments)
	h.muxHandle(mux, http.MethodGet, "/health", h.handleHealth)

	return mux
}

// muxHandle registers a method-scoped pattern so one path can serve
// different verbs; the mux answers 405 for the rest.
func (h *Handler) muxHandle(mux *http.ServeMux, method, route string, handler http.HandlerFunc) {
	pattern := method + " " + route
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		ctx := contextWithRoute(r.Context(), pattern)
		wrapped := h.withTrace(h.withMetrics(h.withAccessLog(handler)))
		wrapped.ServeHTTP(w, r.WithContext(ctx))
	})
}

type registerItemRequest struct {
	ItemID       int64  `json:"item_id"`
	Name         string `json:"name"`
	InitialStock int    `json:"initial_stock"`
}

func (h *Handler) handleRegisterItem(w http.ResponseWriter, r *http.Request) {
	var req registerItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	result, err := h.orch.RegisterItem(r.Context(), req.ItemID, req.Name, req.InitialStock)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

type adjustStockRequest struct {
	ItemID int64 `json:"item_id"`
	Delta  int   `json:"delta"`
}

func (h *Handler) handleAdjustStock(w http.ResponseWriter, r *http.Request) {
	var req adjustStockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	result, err := h.orch.AdjustStock(r.Context(), req.ItemID, req.Delta)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleStock(w http.ResponseWriter, r *http.Request) {
	itemID, err := queryInt64(r, "item_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	result, err := h.orch.Stock(r.Context(), itemID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.orch.ListItems(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	type itemView struct {
		ItemID   int64  `json:"item_id"`
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
	}
	out := make([]itemView, 0, len(items))
	for _, it := range items {
		out = append(out, itemView{ItemID: it.ID, Name: it.Name, Quantity: it.Quantity})
	}
	writeJSON(w, http.StatusOK, out)
}

type orderLineRequest struct {
	ItemID    int64   `json:"item_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type placeOrderRequest struct {
	TenantID int64              `json:"tenant_id"`
	Lines    []orderLineRequest `json:"lines"`
}

func (h *Handler) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	lines := make([]apporder.LineInput, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, apporder.LineInput{ItemID: l.ItemID, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}
	result, err := h.orch.PlaceOrder(r.Context(), req.TenantID, lines)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

type cancelOrderRequest struct {
	OrderID int64 `json:"order_id"`
}

func (h *Handler) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	var req cancelOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	result, err := h.orch.CancelOrder(r.Context(), req.OrderID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := queryInt64(r, "order_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	result, err := h.orch.GetOrder(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orch.ListOrders(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) handleListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.orch.ListPayments(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

type payRequest struct {
	TenantID int64   `json:"tenant_id"`
	OrderID  int64   `json:"order_id"`
	Amount   float64 `json:"amount"`
	Method   string  `json:"method"`
}

func (h *Handler) handlePay(w http.ResponseWriter, r *http.Request) {
	var req payRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	result, err := h.orch.PayOrder(r.Context(), req.TenantID, req.OrderID, req.Amount, req.Method)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

type refundRequest struct {
	PaymentID int64 `json:"payment_id"`
}

func (h *Handler) handleRefund(w http.ResponseWriter, r *http.Request) {
	var req refundRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	result, err := h.orch.RefundPayment(r.Context(), req.PaymentID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type renewSubscriptionRequest struct {
	TenantID int64  `json:"tenant_id"`
	Plan     string `json:"plan"`
}

func (h *Handler) handleRenewSubscription(w http.ResponseWriter, r *http.Request) {
	var req renewSubscriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	result, err := h.orch.RenewSubscription(r.Context(), req.TenantID, req.Plan)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleSubscriptionStatus(w http.ResponseWriter, r *http.Request) {
	tenantID, err := queryInt64(r, "tenant_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	status, err := h.orch.SubscriptionStatus(r.Context(), tenantID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

func (h *Handler) handleExportOrders(w http.ResponseWriter, r *http.Request) {
	path, err := h.orch.ExportOrders(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"file": path})
}

func (h *Handler) handleExportPayments(w http.ResponseWriter, r *http.Request) {
	path, err := h.orch.ExportPayments(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"file": path})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// withAccessLog writes a single access log after the handler completes.
// It relies on the request-scoped logger already injected by ObservabilityMiddleware.
func (h *Handler) withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(lrw, r)

		logctx.FromOr(r.Context(), h.log).Info("http_access",
			observability.F("method", r.Method),
			observability.F("route", routeFromContext(r.Context())),
			observability.F("path", r.URL.Path),
			observability.F("status", lrw.status),
			observability.F("latency_ms", time.Since(start).Milliseconds()),
		)
	})
}

// withMetrics records the request counter and duration histogram with the
// low-cardinality route template set by muxHandle.
func (h *Handler) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(lrw, r)

		route := routeFromContext(r.Context())
		statusLabel := strconv.Itoa(lrw.status)
		h.tel.Metrics().Counter(observability.MHTTPRequests).Add(1,
			observability.L("method", r.Method),
			observability.L("route", route),
			observability.L("status", statusLabel),
		)
		h.tel.Metrics().Histogram(observability.MHTTPRequestDuration).Observe(time.Since(start).Seconds(),
			observability.L("method", r.Method),
			observability.L("route", route),
			observability.L("status", statusLabel),
		)
	})
}

// withTrace creates a server span for the request using OTel and W3C propagation.
func (h *Handler) withTrace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tracer := otel.Tracer("ims.http")
		parentCtx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		route := routeFromContext(parentCtx)
		spanName := route
		if spanName == "unknown" {
			spanName = r.Method + " " + r.URL.Path
		}
		template := route
		if idx := strings.Index(template, " "); idx >= 0 {
			template = template[idx+1:]
		}
		if template == "unknown" || template == "" {
			template = r.URL.Path
		}

		ctxWithSpan, span := tracer.Start(parentCtx,
			spanName,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.route", template),
				attribute.String("http.target", r.URL.Path),
			),
		)
		defer span.End()

		next.ServeHTTP(w, r.WithContext(ctxWithSpan))
	})
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func queryInt64(r *http.Request, key string) (int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, errors.New(key + " is required")
	}
	return strconv.ParseInt(raw, 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dominv.ErrNotFound),
		errors.Is(err, domorder.ErrNotFound),
		errors.Is(err, dompay.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, dominv.ErrDuplicate),
		errors.Is(err, dominv.ErrInsufficientStock),
		errors.Is(err, domorder.ErrInvalidState),
		errors.Is(err, dompay.ErrInvalidState):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, dominv.ErrInvalidQuantity),
		errors.Is(err, domorder.ErrNoLines),
		errors.Is(err, domorder.ErrInvalidQuantity),
		errors.Is(err, domorder.ErrInvalidPrice),
		errors.Is(err, dompay.ErrInvalidAmount),
		errors.Is(err, domsub.ErrInvalidPlan):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

type routeKey struct{}

// contextWithRoute stores the stable route template in the context so downstream
// metrics/logging can rely on low-cardinality values.
func contextWithRoute(ctx context.Context, route string) context.Context {
	if route == "" {
		return ctx
	}
	return context.WithValue(ctx, routeKey{}, route)
}

func routeFromContext(ctx context.Context) string {
	if ctx == nil {
		return "unknown"
	}
	if route, ok := ctx.Value(routeKey{}).(string); ok && route != "" {
		return route
	}
	return "unknown"
}
