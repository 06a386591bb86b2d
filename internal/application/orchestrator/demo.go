package orchestrator

import (
	"context"
	"errors"
	"fmt"

	apporder "github.com/Zhima-Mochi/ims/internal/application/order"
	dominv "github.com/Zhima-Mochi/ims/internal/domain/inventory"
)

const (
	demoItemID   = 101
	demoItemName = "Classic White T-Shirt"
	demoTenantID = 1
)

// RunDemo walks the fixed demonstration script: add stock, create an
// order, pay it, renew the tenant's subscription. It prints human-readable
// status lines and is not part of the testable contract.
func (o *Orchestrator) RunDemo(ctx context.Context) error {
	fmt.Println("======== IMS System Demonstration ========")

	if _, err := o.RegisterItem(ctx, demoItemID, demoItemName, 0); err != nil && !errors.Is(err, dominv.ErrDuplicate) {
		return fmt.Errorf("register item: %w", err)
	}

	fmt.Println("\n[STEP 1] Adding stock ...")
	stock, err := o.AdjustStock(ctx, demoItemID, 100)
	if err != nil {
		return fmt.Errorf("add stock: %w", err)
	}
	fmt.Printf("[Inventory] Item %d stock adjusted to %d\n", stock.ItemID, stock.NewQuantity)

	fmt.Println("\n[STEP 2] Creating order ...")
	order, err := o.PlaceOrder(ctx, demoTenantID, []apporder.LineInput{
		{ItemID: demoItemID, Quantity: 2, UnitPrice: 99.9},
	})
	if err != nil {
		return fmt.Errorf("place order: %w", err)
	}
	fmt.Printf("[Order Created] ID=%d total=%.2f status=%s\n", order.OrderID, order.Total, order.Status)

	fmt.Println("\n[STEP 3] Processing payment ...")
	payment, err := o.PayOrder(ctx, demoTenantID, order.OrderID, order.Total, "cash")
	if err != nil {
		return fmt.Errorf("pay order: %w", err)
	}
	fmt.Printf("[Payment Completed] Order %d paid %.2f via %s\n", payment.OrderID, payment.Amount, payment.Method)

	fmt.Println("\n[STEP 4] Renewing subscription ...")
	sub, err := o.RenewSubscription(ctx, demoTenantID, "monthly")
	if err != nil {
		return fmt.Errorf("renew subscription: %w", err)
	}
	fmt.Printf("[Subscription Renewed] Tenant %d renewed %s plan (%.2f), valid until %s\n",
		sub.TenantID, sub.Plan, sub.Price, sub.ValidUntil)

	fmt.Println("\n======== Demonstration Completed ========")
	return nil
}
