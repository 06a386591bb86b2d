package memory

import (
	"context"
	"sort"
	"sync"

	domain "github.com/Zhima-Mochi/ims/internal/domain/subscription"
)

// SubscriptionRepository holds one record per tenant; Save overwrites.
type SubscriptionRepository struct {
	mu   sync.RWMutex
	subs map[int64]*domain.Subscription
}

func NewSubscriptionRepository() *SubscriptionRepository {
	return &SubscriptionRepository{
		subs: make(map[int64]*domain.Subscription),
	}
}

func (r *SubscriptionRepository) Get(ctx context.Context, tenantID int64) (*domain.Subscription, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	sub, ok := r.subs[tenantID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return sub.Clone(), nil
}

func (r *SubscriptionRepository) Save(ctx context.Context, sub *domain.Subscription) error {
	_ = ctx
	if sub == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.subs[sub.TenantID] = sub.Clone()
	return nil
}

func (r *SubscriptionRepository) List(ctx context.Context) ([]*domain.Subscription, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Subscription, 0, len(r.subs))
	for _, sub := range r.subs {
		out = append(out, sub.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TenantID < out[j].TenantID })
	return out, nil
}
