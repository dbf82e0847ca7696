package order

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("order: not found")
	ErrConflict        = errors.New("order: already exists")
	ErrNoItems         = errors.New("order: at least one item is required")
	ErrInvalidQuantity = errors.New("order: quantity must be greater than zero")
	ErrInvalidPrice    = errors.New("order: unit price must be zero or greater")
)

// LineItem is a price snapshot: the unit price is frozen from the catalog at
// order-creation time and is never recomputed afterwards, even if the
// catalog price changes.
type LineItem struct {
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
}

func NewLineItem(productID string, quantity int, unitPrice decimal.Decimal) (LineItem, error) {
	if quantity <= 0 {
		return LineItem{}, ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return LineItem{}, ErrInvalidPrice
	}
	return LineItem{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}, nil
}

func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

type Order struct {
	ID         string
	CustomerID string
	LineItems  []LineItem
	Total      decimal.Decimal
	CreatedAt  time.Time
}

func New(id, customerID string, items []LineItem) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}

	return &Order{
		ID:         id,
		CustomerID: customerID,
		LineItems:  append([]LineItem(nil), items...),
		Total:      total,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.LineItems = append([]LineItem(nil), o.LineItems...)
	return &clone
}
