package catalog

import "context"

// QuantityUpdate sets a product's available quantity to an absolute value
// computed by the caller from a previously read snapshot.
type QuantityUpdate struct {
	ProductID   string
	NewQuantity int
}

type Repository interface {
	// FindAllByID resolves the given ids in one batch. Ids with no matching
	// product are simply absent from the result (no error).
	FindAllByID(ctx context.Context, ids []string) ([]*Product, error)
	// UpdateQuantity applies the updates atomically: either every update is
	// applied, or none is. An unknown product id fails with ErrNotFound and
	// a negative new quantity fails with ErrInsufficientStock.
	UpdateQuantity(ctx context.Context, updates []QuantityUpdate) error
	List(ctx context.Context) ([]*Product, error)
}
