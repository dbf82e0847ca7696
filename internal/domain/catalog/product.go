package catalog

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("catalog: product not found")
	ErrNoProductsFound   = errors.New("catalog: no products found")
	ErrInvalidQuantity   = errors.New("catalog: quantity must be greater than zero")
	ErrInvalidPrice      = errors.New("catalog: unit price must be zero or greater")
	ErrInvalidStock      = errors.New("catalog: available quantity must be zero or greater")
	ErrInsufficientStock = errors.New("catalog: insufficient stock")
)

// Product is the current sellable state of a product: its unit price and
// the quantity still available for ordering.
type Product struct {
	ID        string
	Name      string
	UnitPrice decimal.Decimal
	Available int
	UpdatedAt time.Time
}

func NewProduct(id, name string, unitPrice decimal.Decimal, available int) (*Product, error) {
	if unitPrice.IsNegative() {
		return nil, ErrInvalidPrice
	}
	if available < 0 {
		return nil, ErrInvalidStock
	}
	return &Product{
		ID:        id,
		Name:      name,
		UnitPrice: unitPrice,
		Available: available,
		UpdatedAt: time.Now().UTC(),
	}, nil
}

func (p *Product) Decrement(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if quantity > p.Available {
		return ErrInsufficientStock
	}
	p.Available -= quantity
	p.touch()
	return nil
}

func (p *Product) touch() {
	p.UpdatedAt = time.Now().UTC()
}
