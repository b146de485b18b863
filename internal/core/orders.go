package core

import (
	"bufio"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

// Order is a finalized cart. It is never modified after creation.
type Order struct {
	ID       string
	Customer string
	Items    []CartItem
	PlacedAt time.Time
}

// Total sums the item prices captured at checkout.
func (o Order) Total() decimal.Decimal {
	return sumItems(o.Items)
}

// OrderLedger is the append-only list of orders placed during this process.
// It is not reloaded from the order log on startup.
type OrderLedger struct {
	orders []Order
}

// NewOrderLedger returns an empty ledger.
func NewOrderLedger() *OrderLedger {
	return &OrderLedger{}
}

// Append records o.
func (l *OrderLedger) Append(o Order) {
	l.orders = append(l.orders, o)
}

// Orders returns a copy of all orders in placement order.
func (l *OrderLedger) Orders() []Order {
	out := make([]Order, len(l.orders))
	copy(out, l.orders)
	return out
}

// ForCustomer returns the orders placed by customer, oldest first.
func (l *OrderLedger) ForCustomer(customer string) []Order {
	var out []Order
	for _, o := range l.orders {
		if o.Customer == customer {
			out = append(out, o)
		}
	}
	return out
}

func (l *OrderLedger) Len() int {
	return len(l.orders)
}

// OrderLog appends a human-readable block per order to a text file. The
// system never parses it back.
type OrderLog struct {
	path string
}

// NewOrderLog returns a log appending to path.
func NewOrderLog(path string) *OrderLog {
	return &OrderLog{path: path}
}

func (l *OrderLog) Path() string {
	return l.path
}

// Append writes o to the end of the log, creating the file if needed.
func (l *OrderLog) Append(o Order) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fileUnavailable("open", l.path, err)
	}

	if err := WriteOrder(f, o); err != nil {
		f.Close()
		return fileUnavailable("write", l.path, err)
	}
	if err := f.Close(); err != nil {
		return fileUnavailable("write", l.path, err)
	}
	return nil
}

// WriteOrder renders the order block:
//
//	Order for alice:
//	- Laptop
//	- Phone
func WriteOrder(w io.Writer, o Order) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("Order for " + o.Customer + ":\n")
	for _, it := range o.Items {
		bw.WriteString("- " + it.Name + "\n")
	}
	return bw.Flush()
}
