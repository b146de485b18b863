package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/shopkeep/internal/logging"
)

// Checkout turns a cart into an Order.
//
// The order is always recorded in the ledger and the cart always cleared
// once checkout starts; an order log failure is returned alongside the
// recorded order rather than undoing it.
type Checkout struct {
	Catalog        *Catalog
	Ledger         *OrderLedger
	Log            *OrderLog // nil disables the order log
	DecrementStock bool

	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

// Run checks out cart for customer. An empty cart fails with ErrEmptyCart
// and nothing changes.
func (c Checkout) Run(ctx context.Context, customer string, cart *Cart) (Order, error) {
	if cart.State() == CartEmpty {
		return Order{}, ErrEmptyCart
	}

	order := Order{
		ID:       c.newID(),
		Customer: customer,
		Items:    cart.Items(),
		PlacedAt: c.now(),
	}
	logger := logging.WithFields(ctx, "order_id", order.ID, "customer", customer)

	if c.DecrementStock && c.Catalog != nil {
		for _, it := range order.Items {
			// Only fails for names no longer in the catalog
			if _, err := c.Catalog.ReduceStock(ctx, it.Name); err != nil {
				logger.Warn("checked out product missing from catalog", "product", it.Name)
			}
		}
	}

	c.Ledger.Append(order)
	cart.Clear()

	logger.Info("order placed", "items", len(order.Items), "total", order.Total().StringFixed(2))

	if c.Log != nil {
		if err := c.Log.Append(order); err != nil {
			logger.Error("order not written to log", "path", c.Log.Path(), "error", err)
			return order, fmt.Errorf("order %s recorded but not logged: %w", order.ID, err)
		}
	}

	return order, nil
}

func (c Checkout) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c Checkout) newID() string {
	if c.NewID != nil {
		return c.NewID()
	}
	return uuid.NewString()
}
