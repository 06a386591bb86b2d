package payment

import "context"

type Repository interface {
	Insert(ctx context.Context, payment *Payment) error
	Get(ctx context.Context, id int64) (*Payment, error)
	Update(ctx context.Context, payment *Payment) error
	List(ctx context.Context) ([]*Payment, error)
}
