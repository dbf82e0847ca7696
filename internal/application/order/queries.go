package order

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/commercelab/orderflow/internal/domain/order"
)

// GetOrderUseCase reads a single order by id.
type GetOrderUseCase struct {
	orders domain.Repository
}

func NewGetOrderUseCase(orders domain.Repository) *GetOrderUseCase {
	return &GetOrderUseCase{orders: orders}
}

func (uc *GetOrderUseCase) Execute(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, newValidation("order id is required")
	}
	order, err := uc.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrRepository, err)
	}
	return order, nil
}
