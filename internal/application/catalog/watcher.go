package catalog

import (
	"context"
	"fmt"

	domain "github.com/commercelab/orderflow/internal/domain/catalog"
	domorder "github.com/commercelab/orderflow/internal/domain/order"
	"github.com/commercelab/orderflow/internal/observability"
	"github.com/commercelab/orderflow/internal/observability/logctx"
)

// LowStockWatcher reacts to placed orders and flags products whose
// availability has dropped to or below the configured threshold. It is a
// read-only consumer; replenishment is an operator concern.
type LowStockWatcher struct {
	catalog   domain.Repository
	threshold int
	log       observability.Logger
}

func NewLowStockWatcher(catalog domain.Repository, threshold int, logger observability.Logger) *LowStockWatcher {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &LowStockWatcher{
		catalog:   catalog,
		threshold: threshold,
		log:       logger.With(observability.F("component", "low_stock_watcher")),
	}
}

func (w *LowStockWatcher) OnOrderPlaced(ctx context.Context, e domorder.OrderPlacedEvent) error {
	logger := logctx.FromOr(ctx, w.log)

	ids := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := w.catalog.FindAllByID(ctx, ids)
	if err != nil {
		return fmt.Errorf("catalog: low stock check: %w", err)
	}

	for _, p := range products {
		if p.Available <= w.threshold {
			logger.Warn("low_stock",
				observability.F("product_id", p.ID),
				observability.F("available", p.Available),
				observability.F("threshold", w.threshold),
				observability.F("order_id", e.OrderID),
			)
		}
	}
	return nil
}
