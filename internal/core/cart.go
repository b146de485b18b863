package core

import "github.com/shopspring/decimal"

// CartState is Empty until the first Add and again after Clear.
type CartState int

const (
	CartEmpty CartState = iota
	CartPopulated
)

func (s CartState) String() string {
	if s == CartPopulated {
		return "populated"
	}
	return "empty"
}

// CartItem is a value copy of a product reference taken when it was added.
// There is no quantity; adding the same product twice means two units.
type CartItem struct {
	Name  string
	Price decimal.Decimal
}

// Cart is one customer's pending selection.
type Cart struct {
	items []CartItem
}

// Add appends item.
func (c *Cart) Add(item CartItem) {
	c.items = append(c.items, item)
}

// Items returns a copy of the cart contents in the order they were added.
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) State() CartState {
	if len(c.items) == 0 {
		return CartEmpty
	}
	return CartPopulated
}

// Total sums the captured prices.
func (c *Cart) Total() decimal.Decimal {
	return sumItems(c.items)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

func sumItems(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price)
	}
	return total
}
