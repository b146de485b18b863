package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JonMunkholm/shopkeep/internal/logging"
)

// ZeroStockPolicy decides what ReduceStock does when stock is already zero.
// Either way the stock stays at zero.
type ZeroStockPolicy int

const (
	ZeroStockIgnore ZeroStockPolicy = iota // silent no-op
	ZeroStockReport                        // no-op logged at info level
)

// ParseZeroStockPolicy accepts "ignore" or "report" (case-insensitive).
func ParseZeroStockPolicy(s string) (ZeroStockPolicy, error) {
	switch strings.ToLower(s) {
	case "ignore", "":
		return ZeroStockIgnore, nil
	case "report":
		return ZeroStockReport, nil
	default:
		return ZeroStockIgnore, fmt.Errorf("unknown zero stock policy %q", s)
	}
}

func (p ZeroStockPolicy) String() string {
	if p == ZeroStockReport {
		return "report"
	}
	return "ignore"
}

// Catalog is the ordered, in-memory product list. Lookups by name return the
// first match in insertion order.
type Catalog struct {
	products []Product
	policy   ZeroStockPolicy
	logger   *slog.Logger
}

// CatalogOption configures a Catalog.
type CatalogOption func(*Catalog)

// WithZeroStockPolicy sets the policy applied by ReduceStock.
func WithZeroStockPolicy(p ZeroStockPolicy) CatalogOption {
	return func(c *Catalog) {
		c.policy = p
	}
}

// WithLogger sets the logger used for stock events. Without it the logger
// comes from the context passed to ReduceStock.
func WithLogger(l *slog.Logger) CatalogOption {
	return func(c *Catalog) {
		c.logger = l
	}
}

// NewCatalog returns an empty catalog.
func NewCatalog(opts ...CatalogOption) *Catalog {
	c := &Catalog{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Add appends p. Duplicate names are allowed.
func (c *Catalog) Add(p Product) {
	c.products = append(c.products, p)
}

// Append adds every product of other, in order, and returns how many.
func (c *Catalog) Append(other *Catalog) int {
	c.products = append(c.products, other.products...)
	return len(other.products)
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Browse returns a copy of the products in catalog order.
func (c *Catalog) Browse() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Find returns the first product named name.
func (c *Catalog) Find(name string) (Product, bool) {
	i := c.index(name)
	if i < 0 {
		return Product{}, false
	}
	return c.products[i], true
}

// FindStock returns the stock of the first product named name.
func (c *Catalog) FindStock(name string) (int, bool) {
	p, ok := c.Find(name)
	return p.Stock, ok
}

// ReduceStock decrements the stock of the first product named name by one
// and reports whether it did. Stock never goes below zero.
func (c *Catalog) ReduceStock(ctx context.Context, name string) (bool, error) {
	i := c.index(name)
	if i < 0 {
		return false, fmt.Errorf("reduce stock of %q: %w", name, ErrProductNotFound)
	}

	if c.products[i].Stock <= 0 {
		if c.policy == ZeroStockReport {
			c.log(ctx).Info("stock already exhausted", "product", name)
		}
		return false, nil
	}

	c.products[i].Stock--
	return true, nil
}

func (c *Catalog) index(name string) int {
	for i := range c.products {
		if c.products[i].Name == name {
			return i
		}
	}
	return -1
}

func (c *Catalog) log(ctx context.Context) *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return logging.FromContext(ctx)
}
