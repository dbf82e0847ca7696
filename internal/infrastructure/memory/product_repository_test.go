package memory

import (
	"context"
	"testing"

	domain "github.com/commercelab/orderflow/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProducts(t *testing.T, r *ProductRepository) {
	t.Helper()
	for _, s := range []struct {
		id    string
		stock int
	}{
		{"p-1", 5},
		{"p-2", 3},
	} {
		p, err := domain.NewProduct(s.id, s.id, decimal.RequireFromString("1.00"), s.stock)
		require.NoError(t, err)
		require.NoError(t, r.Save(context.Background(), p))
	}
}

func TestProductRepository_FindAllByID_SkipsUnknown(t *testing.T) {
	r := NewProductRepository()
	seedProducts(t, r)

	found, err := r.FindAllByID(context.Background(), []string{"p-1", "p-missing", "p-2"})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "p-1", found[0].ID)
	assert.Equal(t, "p-2", found[1].ID)
}

func TestProductRepository_UpdateQuantity_Applied(t *testing.T) {
	r := NewProductRepository()
	seedProducts(t, r)

	err := r.UpdateQuantity(context.Background(), []domain.QuantityUpdate{
		{ProductID: "p-1", NewQuantity: 2},
		{ProductID: "p-2", NewQuantity: 0},
	})
	require.NoError(t, err)

	found, err := r.FindAllByID(context.Background(), []string{"p-1", "p-2"})
	require.NoError(t, err)
	assert.Equal(t, 2, found[0].Available)
	assert.Equal(t, 0, found[1].Available)
}

func TestProductRepository_UpdateQuantity_AllOrNothing(t *testing.T) {
	r := NewProductRepository()
	seedProducts(t, r)

	err := r.UpdateQuantity(context.Background(), []domain.QuantityUpdate{
		{ProductID: "p-1", NewQuantity: 4},
		{ProductID: "p-2", NewQuantity: -1},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// First update must not have leaked through.
	found, err := r.FindAllByID(context.Background(), []string{"p-1"})
	require.NoError(t, err)
	assert.Equal(t, 5, found[0].Available)

	err = r.UpdateQuantity(context.Background(), []domain.QuantityUpdate{
		{ProductID: "p-ghost", NewQuantity: 1},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductRepository_ReturnsClones(t *testing.T) {
	r := NewProductRepository()
	seedProducts(t, r)

	found, err := r.FindAllByID(context.Background(), []string{"p-1"})
	require.NoError(t, err)
	found[0].Available = 0

	again, err := r.FindAllByID(context.Background(), []string{"p-1"})
	require.NoError(t, err)
	assert.Equal(t, 5, again[0].Available)
}
