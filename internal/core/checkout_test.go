package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedCheckout(t *testing.T, catalog *Catalog, log *OrderLog) Checkout {
	t.Helper()
	placed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return Checkout{
		Catalog:        catalog,
		Ledger:         NewOrderLedger(),
		Log:            log,
		DecrementStock: true,
		Now:            func() time.Time { return placed },
		NewID:          func() string { return "order-1" },
	}
}

func fillCart(c *Cart, names ...string) {
	for _, n := range names {
		c.Add(CartItem{Name: n, Price: decimal.NewFromInt(1)})
	}
}

func TestCheckout_EmptiesCart(t *testing.T) {
	ctx := context.Background()
	co := fixedCheckout(t, sampleCatalog(), nil)

	var cart Cart
	fillCart(&cart, "Laptop", "Phone", "Laptop")

	order, err := co.Run(ctx, "alice", &cart)
	require.NoError(t, err)

	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, "alice", order.Customer)
	assert.Len(t, order.Items, 3)
	assert.Equal(t, CartEmpty, cart.State())
	assert.Equal(t, 1, co.Ledger.Len())

	_, err = co.Run(ctx, "alice", &cart)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 1, co.Ledger.Len())
}

func TestCheckout_EmptyCartChangesNothing(t *testing.T) {
	catalog := sampleCatalog()
	co := fixedCheckout(t, catalog, NewOrderLog(filepath.Join(t.TempDir(), "orders.txt")))

	_, err := co.Run(context.Background(), "alice", &Cart{})
	require.ErrorIs(t, err, ErrEmptyCart)

	assert.Equal(t, 0, co.Ledger.Len())
	_, statErr := os.Stat(co.Log.Path())
	assert.True(t, os.IsNotExist(statErr))
}

func TestCheckout_DecrementsStock(t *testing.T) {
	catalog := sampleCatalog()
	co := fixedCheckout(t, catalog, nil)

	var cart Cart
	fillCart(&cart, "Laptop", "Laptop", "Phone")
	_, err := co.Run(context.Background(), "alice", &cart)
	require.NoError(t, err)

	laptops, _ := catalog.FindStock("Laptop")
	phones, _ := catalog.FindStock("Phone")
	assert.Equal(t, 8, laptops)
	assert.Equal(t, 19, phones)
}

func TestCheckout_StockDecrementDisabled(t *testing.T) {
	catalog := sampleCatalog()
	co := fixedCheckout(t, catalog, nil)
	co.DecrementStock = false

	var cart Cart
	fillCart(&cart, "Laptop")
	_, err := co.Run(context.Background(), "alice", &cart)
	require.NoError(t, err)

	laptops, _ := catalog.FindStock("Laptop")
	assert.Equal(t, 10, laptops)
}

func TestCheckout_WritesOrderLog(t *testing.T) {
	log := NewOrderLog(filepath.Join(t.TempDir(), "orders.txt"))
	co := fixedCheckout(t, sampleCatalog(), log)

	var cart Cart
	fillCart(&cart, "Laptop", "Phone")
	_, err := co.Run(context.Background(), "alice", &cart)
	require.NoError(t, err)

	data, err := os.ReadFile(log.Path())
	require.NoError(t, err)
	assert.Equal(t, "Order for alice:\n- Laptop\n- Phone\n", string(data))
}

func TestCheckout_LogFailureStillRecordsOrder(t *testing.T) {
	log := NewOrderLog(filepath.Join(t.TempDir(), "missing", "orders.txt"))
	co := fixedCheckout(t, sampleCatalog(), log)

	var cart Cart
	fillCart(&cart, "Laptop")
	order, err := co.Run(context.Background(), "alice", &cart)

	require.ErrorIs(t, err, ErrFileUnavailable)
	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, 1, co.Ledger.Len())
	assert.Equal(t, CartEmpty, cart.State())
}

func TestCheckout_DefaultIDAndClock(t *testing.T) {
	co := Checkout{Ledger: NewOrderLedger()}

	var cart Cart
	fillCart(&cart, "Anything")
	before := time.Now()
	order, err := co.Run(context.Background(), "alice", &cart)
	require.NoError(t, err)

	assert.Len(t, order.ID, 36)
	assert.False(t, order.PlacedAt.Before(before))
}
