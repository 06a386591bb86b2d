package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	domoutbox "github.com/Zhima-Mochi/ims/internal/domain/outbox"
	domain "github.com/Zhima-Mochi/ims/internal/domain/subscription"
	"github.com/Zhima-Mochi/ims/internal/observability"
	"github.com/Zhima-Mochi/ims/internal/observability/logctx"
)

const componentSubscription = "subscription_service"

// Service tracks one access window per tenant.
type Service struct {
	repo      domain.Repository
	publisher domoutbox.Publisher
	log       observability.Logger
	now       func() time.Time
}

func NewService(repo domain.Repository, publisher domoutbox.Publisher, logger observability.Logger) *Service {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Service{
		repo:      repo,
		publisher: publisher,
		log:       logger.With(observability.F("component", componentSubscription)),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the time source. Intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Renew creates or extends the tenant's subscription. Renewing before
// expiry extends from the previous end, so no paid time is lost; the stored
// record is overwritten and no history is retained.
func (s *Service) Renew(ctx context.Context, tenantID int64, plan domain.Plan) (*domain.Subscription, error) {
	prev, err := s.repo.Get(ctx, tenantID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("subscription: get: %w", err)
	}

	sub, err := domain.Renew(prev, tenantID, plan, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, sub); err != nil {
		return nil, fmt.Errorf("subscription: save: %w", err)
	}

	logctx.FromOr(ctx, s.log).Info("subscription_renewed",
		observability.F("tenant_id", tenantID),
		observability.F("plan", string(plan)),
		observability.F("end_at", sub.EndAt),
	)
	s.publish(ctx, domain.NewSubscriptionRenewedEvent(sub))
	return sub, nil
}

// Status reports the tenant's current standing. The check is lazy: it
// compares now against the stored end and writes the computed status back
// to the record, so the store reflects the last observation.
func (s *Service) Status(ctx context.Context, tenantID int64) (domain.Status, error) {
	sub, err := s.repo.Get(ctx, tenantID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.StatusNoSubscription, nil
	}
	if err != nil {
		return "", fmt.Errorf("subscription: get: %w", err)
	}

	status := sub.StatusAt(s.now())
	if sub.Status != status {
		sub.Status = status
		if err := s.repo.Save(ctx, sub); err != nil {
			return "", fmt.Errorf("subscription: save: %w", err)
		}
	}
	return status, nil
}

func (s *Service) Get(ctx context.Context, tenantID int64) (*domain.Subscription, error) {
	return s.repo.Get(ctx, tenantID)
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
