package subscription

import "context"

type Repository interface {
	Get(ctx context.Context, tenantID int64) (*Subscription, error)
	Save(ctx context.Context, sub *Subscription) error
	List(ctx context.Context) ([]*Subscription, error)
}
