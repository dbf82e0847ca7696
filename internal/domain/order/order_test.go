package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLineItem(t *testing.T) {
	li, err := NewLineItem("p-1", 3, decimal.RequireFromString("12.50"))
	require.NoError(t, err)
	assert.True(t, li.Subtotal().Equal(decimal.RequireFromString("37.50")))

	_, err = NewLineItem("p-1", 0, decimal.RequireFromString("12.50"))
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewLineItem("p-1", 1, decimal.RequireFromString("-1"))
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestNewOrder_ComputesTotal(t *testing.T) {
	a, err := NewLineItem("p-1", 2, decimal.RequireFromString("10.00"))
	require.NoError(t, err)
	b, err := NewLineItem("p-2", 1, decimal.RequireFromString("5.25"))
	require.NoError(t, err)

	o, err := New("o-1", "c-1", []LineItem{a, b})
	require.NoError(t, err)
	assert.True(t, o.Total.Equal(decimal.RequireFromString("25.25")))
	assert.Len(t, o.LineItems, 2)
}

func TestNewOrder_RequiresItems(t *testing.T) {
	_, err := New("o-1", "c-1", nil)
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestOrderClone_IsIndependent(t *testing.T) {
	li, err := NewLineItem("p-1", 1, decimal.RequireFromString("10.00"))
	require.NoError(t, err)
	o, err := New("o-1", "c-1", []LineItem{li})
	require.NoError(t, err)

	clone := o.Clone()
	clone.LineItems[0].Quantity = 99

	assert.Equal(t, 1, o.LineItems[0].Quantity)
}
