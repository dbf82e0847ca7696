package worker

import (
	"context"

	appCatalog "github.com/commercelab/orderflow/internal/application/catalog"
	domorder "github.com/commercelab/orderflow/internal/domain/order"
	domoutbox "github.com/commercelab/orderflow/internal/domain/outbox"
)

// Worker subscribes the low-stock watcher to order.placed events on the
// in-process bus.
type Worker struct {
	subscriber domoutbox.Subscriber
	watcher    *appCatalog.LowStockWatcher
}

func New(subscriber domoutbox.Subscriber, watcher *appCatalog.LowStockWatcher) *Worker {
	return &Worker{
		subscriber: subscriber,
		watcher:    watcher,
	}
}

func (w *Worker) Start() {
	w.subscriber.Subscribe(domorder.OrderPlacedEvent{}.EventName(), w.handleOrderPlaced)
}

func (w *Worker) handleOrderPlaced(ctx context.Context, e domoutbox.Event) error {
	evt, ok := e.(domorder.OrderPlacedEvent)
	if !ok {
		return nil
	}
	return w.watcher.OnOrderPlaced(ctx, evt)
}
