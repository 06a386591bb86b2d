package order

import (
	"context"
	"fmt"

	dominv "github.com/Zhima-Mochi/ims/internal/domain/inventory"
	domain "github.com/Zhima-Mochi/ims/internal/domain/order"
	domoutbox "github.com/Zhima-Mochi/ims/internal/domain/outbox"
	"github.com/Zhima-Mochi/ims/internal/infrastructure/id"
	"github.com/Zhima-Mochi/ims/internal/observability"
	"github.com/Zhima-Mochi/ims/internal/observability/logctx"
)

const componentOrder = "order_service"

// Service converts requested line items into persisted orders, contingent
// on ledger approval, and owns the order lifecycle.
type Service struct {
	repo      domain.Repository
	inventory InventoryPort
	seq       *id.Sequence
	publisher domoutbox.Publisher
	log       observability.Logger
}

func NewService(repo domain.Repository, inventory InventoryPort, publisher domoutbox.Publisher, logger observability.Logger) *Service {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Service{
		repo:      repo,
		inventory: inventory,
		seq:       id.NewSequence(),
		publisher: publisher,
		log:       logger.With(observability.F("component", componentOrder)),
	}
}

type LineInput struct {
	ItemID    int64
	Quantity  int
	UnitPrice float64
}

// CreateOrder validates every line against the ledger before deducting
// anything, so a failing multi-line order deducts no stock at all. This
// two-pass validate-then-commit sequence is the one transaction-like
// guarantee in the system.
func (s *Service) CreateOrder(ctx context.Context, tenantID int64, inputs []LineInput) (*domain.Order, error) {
	logger := logctx.FromOr(ctx, s.log)

	lines := make([]domain.Line, 0, len(inputs))
	for _, in := range inputs {
		line, err := domain.NewLine(in.ItemID, in.Quantity, in.UnitPrice)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, domain.ErrNoLines
	}

	// Pass 1: every line must clear the ledger before any mutation.
	for _, line := range lines {
		stock, err := s.inventory.Stock(ctx, line.ItemID)
		if err != nil {
			return nil, err
		}
		if stock < line.Quantity {
			return nil, fmt.Errorf("%w: item %d has %d, order requires %d",
				dominv.ErrInsufficientStock, line.ItemID, stock, line.Quantity)
		}
	}

	// Pass 2: deduct. The pre-check validates lines one by one, so an order
	// repeating the same item can still fail here after earlier lines were
	// deducted.
	for _, line := range lines {
		if _, err := s.inventory.Adjust(ctx, line.ItemID, -line.Quantity); err != nil {
			return nil, fmt.Errorf("order: deduct item %d: %w", line.ItemID, err)
		}
	}

	entity, err := domain.New(s.seq.Next(), tenantID, lines)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, entity); err != nil {
		logger.Error("order_insert_failed",
			observability.F("order_id", entity.ID),
			observability.F("error", err),
		)
		return nil, fmt.Errorf("order: insert: %w", err)
	}

	logger.Info("order_created",
		observability.F("order_id", entity.ID),
		observability.F("tenant_id", tenantID),
		observability.F("total", entity.Total),
	)
	s.publish(ctx, domain.NewOrderCreatedEvent(entity))
	return entity, nil
}

// CancelOrder restores each line's quantity and marks the order CANCELLED.
// Restoration is unconditional: the ledger only grows here, so no bound
// re-validation is needed.
func (s *Service) CancelOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	logger := logctx.FromOr(ctx, s.log)

	entity, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := entity.Cancel(); err != nil {
		return nil, err
	}

	for _, line := range entity.Lines {
		if _, err := s.inventory.Adjust(ctx, line.ItemID, line.Quantity); err != nil {
			return nil, fmt.Errorf("order: restore item %d: %w", line.ItemID, err)
		}
	}
	if err := s.repo.Update(ctx, entity); err != nil {
		logger.Error("order_update_failed",
			observability.F("order_id", orderID),
			observability.F("error", err),
		)
		return nil, fmt.Errorf("order: update: %w", err)
	}

	logger.Info("order_cancelled",
		observability.F("order_id", orderID),
	)
	s.publish(ctx, domain.NewOrderCancelledEvent(entity))
	return entity, nil
}

func (s *Service) Get(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.repo.Get(ctx, orderID)
}

func (s *Service) List(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

func (s *Service) publish(ctx context.Context, e domoutbox.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, e); err != nil {
		logctx.FromOr(ctx, s.log).Warn("event_publish_failed",
			observability.F("event", e.EventName()),
			observability.F("error", err),
		)
	}
}
