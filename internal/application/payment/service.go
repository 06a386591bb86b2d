package payment

import (
	"context"
	"fmt"

	domoutbox "github.com/Zhima-Mochi/ims/internal/domain/outbox"
	domain "github.com/Zhima-Mochi/ims/internal/domain/payment"
	"github.com/Zhima-Mochi/ims/internal/infrastructure/id"
	"github.com/Zhima-Mochi/ims/internal/observability"
	"github.com/Zhima-Mochi/ims/internal/observability/logctx"
)

const componentPayment = "payment_service"

// Service records monetary transactions against order ids. It deliberately
// does not validate the order id or compare the amount against the order's
// total; that correspondence is the caller's responsibility.
type Service struct {
	repo      domain.Repository
	seq       *id.Sequence
	publisher domoutbox.Publisher
	log       observability.Logger
}

func NewService(repo domain.Repository, publisher domoutbox.Publisher, logger observability.Logger) *Service {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Service{
		repo:      repo,
		seq:       id.NewSequence(),
		publisher: publisher,
		log:       logger.With(observability.F("component", componentPayment)),
	}
}

// Pay records a COMPLETED payment. A non-positive amount fails with
// domain.ErrInvalidAmount. An empty method defaults to "cash".
func (s *Service) Pay(ctx context.Context, tenantID, orderID int64, amount float64, method string) (*domain.Payment, error) {
	entity, err := domain.New(s.seq.Next(), tenantID, orderID, amount, method)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, entity); err != nil {
		return nil, fmt.Errorf("payment: insert: %w", err)
	}

	logctx.FromOr(ctx, s.log).Info("payment_recorded",
		observability.F("payment_id", entity.ID),
		observability.F("order_id", orderID),
		observability.F("amount", entity.Amount),
		observability.F("method", entity.Method),
	)
	s.publish(ctx, domain.NewPaymentRecordedEvent(entity))
	return entity, nil
}

// Refund marks a COMPLETED payment REFUNDED. REFUNDED is terminal; there is
// no re-refund and no partial refund.
func (s *Service) Refund(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	entity, err := s.repo.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if err := entity.Refund(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, entity); err != nil {
		return nil, fmt.Errorf("payment: update: %w", err)
	}

	logctx.FromOr(ctx, s.log).Info("payment_refunded",
		observability.F("payment_id", paymentID),
	)
	s.publish(ctx, domain.NewPaymentRefundedEvent(entity))
	return entity, nil
}

func (s *Service) Get(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	return s.repo.Get(ctx, paymentID)
}

func (s *Service) List(ctx context.Context) ([]*domain.Payment, error) {
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
