package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderPlacedEvent is a domain event emitted once an order has been
// persisted. It is intended for downstream consumers (stock watchers,
// notifications) and carries the snapshotted line items.
type OrderPlacedEvent struct {
	OrderID    string          `json:"order_id"`
	CustomerID string          `json:"customer_id"`
	Items      []PlacedItem    `json:"items"`
	Total      decimal.Decimal `json:"total"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type PlacedItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

func (OrderPlacedEvent) EventName() string { return "order.placed" }

func NewOrderPlacedEvent(o *Order) OrderPlacedEvent {
	items := make([]PlacedItem, 0, len(o.LineItems))
	for _, li := range o.LineItems {
		items = append(items, PlacedItem{
			ProductID: li.ProductID,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice,
		})
	}
	return OrderPlacedEvent{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		Items:      items,
		Total:      o.Total,
		OccurredAt: time.Now().UTC(),
	}
}
