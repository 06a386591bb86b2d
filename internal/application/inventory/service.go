package inventory

import (
	"context"
	"fmt"

	dominv "github.com/Zhima-Mochi/ims/internal/domain/inventory"
	domoutbox "github.com/Zhima-Mochi/ims/internal/domain/outbox"
	"github.com/Zhima-Mochi/ims/internal/observability"
	"github.com/Zhima-Mochi/ims/internal/observability/logctx"
)

const componentInventory = "inventory_service"

// Service owns the quantity-by-item ledger. All stock mutations go through
// Adjust so the floor-at-zero invariant is enforced in one place.
type Service struct {
	repo      dominv.Repository
	publisher domoutbox.Publisher
	log       observability.Logger
}

func NewService(repo dominv.Repository, publisher domoutbox.Publisher, logger observability.Logger) *Service {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Service{
		repo:      repo,
		publisher: publisher,
		log:       logger.With(observability.F("component", componentInventory)),
	}
}

// Register adds a new item to the ledger. Registering an existing id fails
// with dominv.ErrDuplicate.
func (s *Service) Register(ctx context.Context, id int64, name string, initialQuantity int) (*dominv.Item, error) {
	item, err := dominv.NewItem(id, name, initialQuantity)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	logctx.FromOr(ctx, s.log).Info("item_registered",
		observability.F("item_id", id),
		observability.F("quantity", initialQuantity),
	)
	s.publish(ctx, dominv.NewItemRegisteredEvent(item))
	return item, nil
}

// Adjust applies a signed delta to an item's quantity and returns the new
// quantity. A delta that would drive the quantity negative fails with
// dominv.ErrInsufficientStock and leaves the ledger unchanged.
func (s *Service) Adjust(ctx context.Context, id int64, delta int) (int, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return 0, err
	}

	newQuantity, err := item.Adjust(delta)
	if err != nil {
		return 0, fmt.Errorf("%w: item %d has %d, delta %d", dominv.ErrInsufficientStock, id, item.Quantity, delta)
	}
	if err := s.repo.Save(ctx, item); err != nil {
		return 0, fmt.Errorf("inventory: save: %w", err)
	}

	logctx.FromOr(ctx, s.log).Info("stock_adjusted",
		observability.F("item_id", id),
		observability.F("delta", delta),
		observability.F("new_quantity", newQuantity),
	)
	s.publish(ctx, dominv.NewStockAdjustedEvent(id, delta, newQuantity))
	return newQuantity, nil
}

// Stock returns the current quantity of an item.
func (s *Service) Stock(ctx context.Context, id int64) (int, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return item.Quantity, nil
}

func (s *Service) List(ctx context.Context) ([]*dominv.Item, error) {
	return s.repo.List(ctx)
}

// publish is fire-and-forget: event delivery never fails a ledger operation.
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
