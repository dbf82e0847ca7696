package catalog

import "strings"

// ProductsNotFoundError reports every requested product id that the catalog
// could not resolve, preserving the order the ids appeared in the request.
type ProductsNotFoundError struct {
	IDs []string
}

func (e *ProductsNotFoundError) Error() string {
	return "catalog: could not find products: " + strings.Join(e.IDs, ", ")
}

func (e *ProductsNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InsufficientStockError reports every requested product id whose requested
// quantity exceeds the available quantity, in request order.
type InsufficientStockError struct {
	IDs []string
}

func (e *InsufficientStockError) Error() string {
	return "catalog: unavailable quantity for products: " + strings.Join(e.IDs, ", ")
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
