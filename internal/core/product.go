package core

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Product is one catalog entry. Name is the de-facto key for cart references
// but is not enforced unique.
type Product struct {
	Name  string
	Price decimal.Decimal
	Stock int
}

// NewProduct returns a validated Product.
func NewProduct(name string, price decimal.Decimal, stock int) (Product, error) {
	p := Product{Name: name, Price: price, Stock: stock}
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

// Validate checks the field constraints. A comma or line break in the name
// would split the record when written to CSV, and invalid UTF-8 would not
// survive re-import, so all are rejected.
func (p Product) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidProduct)
	case strings.ContainsAny(p.Name, ",\r\n"):
		return fmt.Errorf("%w: name %q contains a comma or line break", ErrInvalidProduct, p.Name)
	case !utf8.ValidString(p.Name):
		return fmt.Errorf("%w: name %q is not valid UTF-8", ErrInvalidProduct, p.Name)
	case p.Price.IsNegative():
		return fmt.Errorf("%w: price %s is negative", ErrInvalidProduct, p.Price)
	case p.Stock < 0:
		return fmt.Errorf("%w: stock %d is negative", ErrInvalidProduct, p.Stock)
	}
	return nil
}

// String renders the product for catalog listings.
func (p Product) String() string {
	return fmt.Sprintf("Product: %s, Price: $%s, Stock: %d", p.Name, p.Price.StringFixed(2), p.Stock)
}
