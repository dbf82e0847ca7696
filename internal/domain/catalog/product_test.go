package catalog

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct_Validation(t *testing.T) {
	_, err := NewProduct("p-1", "widget", decimal.RequireFromString("-0.01"), 1)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = NewProduct("p-1", "widget", decimal.Zero, -1)
	assert.ErrorIs(t, err, ErrInvalidStock)

	p, err := NewProduct("p-1", "widget", decimal.Zero, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Available)
}

func TestProductDecrement(t *testing.T) {
	p, err := NewProduct("p-1", "widget", decimal.RequireFromString("9.99"), 5)
	require.NoError(t, err)

	require.NoError(t, p.Decrement(3))
	assert.Equal(t, 2, p.Available)

	assert.ErrorIs(t, p.Decrement(3), ErrInsufficientStock)
	assert.ErrorIs(t, p.Decrement(0), ErrInvalidQuantity)
	assert.Equal(t, 2, p.Available)
}

func TestEnumerationErrors(t *testing.T) {
	nf := &ProductsNotFoundError{IDs: []string{"p-a", "p-b"}}
	assert.Equal(t, "catalog: could not find products: p-a, p-b", nf.Error())
	assert.True(t, errors.Is(nf, ErrNotFound))

	is := &InsufficientStockError{IDs: []string{"p-c"}}
	assert.Equal(t, "catalog: unavailable quantity for products: p-c", is.Error())
	assert.True(t, errors.Is(is, ErrInsufficientStock))
}
