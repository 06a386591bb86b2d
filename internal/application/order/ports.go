package order

import "context"

// InventoryPort is the ledger capability the order service holds: read
// stock for the pre-check pass, adjust it for deduction and restoration.
type InventoryPort interface {
	Stock(ctx context.Context, itemID int64) (int, error)
	Adjust(ctx context.Context, itemID int64, delta int) (int, error)
}
