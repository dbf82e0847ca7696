package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/commercelab/orderflow/internal/application"
	domcatalog "github.com/commercelab/orderflow/internal/domain/catalog"
	domcustomer "github.com/commercelab/orderflow/internal/domain/customer"
	domain "github.com/commercelab/orderflow/internal/domain/order"
	domoutbox "github.com/commercelab/orderflow/internal/domain/outbox"
	"github.com/commercelab/orderflow/internal/observability"
	"github.com/commercelab/orderflow/internal/observability/logctx"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	orderService      = "order-service"
	useCasePlaceOrder = "order.place"
	spanPrefix        = "UC."
	publishPeer       = "outbox"
	endpointPlaced    = "order.placed"
	publishTimeout    = 300 * time.Millisecond
)

var (
	ErrNotFound   = domain.ErrNotFound
	ErrRepository = errors.New("order: repository failure")
	ErrValidation = errors.New("validation")
)

var _ application.UseCase[PlaceOrderInput, *domain.Order] = (*PlaceOrderUseCase)(nil)

// PlaceOrderUseCase orchestrates one order placement: customer resolution,
// batched product resolution, existence and stock reconciliation, price
// snapshotting, persistence, and the post-persistence stock decrement.
type PlaceOrderUseCase struct {
	orders      domain.Repository
	customers   domcustomer.Repository
	catalog     domcatalog.Repository
	idGenerator IDGenerator
	publisher   domoutbox.Publisher
	tracer      observability.Tracer

	log observability.Logger
	// RED metrics (supplied via DI; do not instantiate inside methods).
	reqCounter    observability.Counter
	durHistogram  observability.Histogram
	extCounter    observability.Counter
	extHistogram  observability.Histogram
	decrFailCount observability.Counter
}

// NewPlaceOrderUseCase wires the collaborators required to execute the use case.
func NewPlaceOrderUseCase(
	orders domain.Repository,
	customers domcustomer.Repository,
	catalog domcatalog.Repository,
	idGen IDGenerator,
	publisher domoutbox.Publisher,
	tel observability.Observability,
) *PlaceOrderUseCase {
	if tel == nil {
		tel = observability.Nop()
	}
	baseLog := tel.Logger().With(
		observability.F("service", orderService),
	)
	metrics := tel.Metrics()

	return &PlaceOrderUseCase{
		orders:        orders,
		customers:     customers,
		catalog:       catalog,
		idGenerator:   idGen,
		publisher:     publisher,
		tracer:        tel.Tracer(),
		log:           baseLog,
		reqCounter:    metrics.Counter(observability.MUsecaseRequests),
		durHistogram:  metrics.Histogram(observability.MUsecaseDuration),
		extCounter:    metrics.Counter(observability.MExternalRequests),
		extHistogram:  metrics.Histogram(observability.MExternalRequestDuration),
		decrFailCount: metrics.Counter(observability.MStockDecrementFailures),
	}
}

type ItemInput struct {
	ProductID string
	Quantity  int
}

type PlaceOrderInput struct {
	CustomerID string
	Items      []ItemInput
}

// Execute runs the placement workflow. Every gate failure aborts the flow
// with no mutation applied; once the order is persisted it is returned even
// if the subsequent stock decrement fails.
func (uc *PlaceOrderUseCase) Execute(ctx context.Context, cmd PlaceOrderInput) (_ *domain.Order, err error) {
	logger := logctx.FromOr(ctx, uc.log).With(observability.F("use_case", useCasePlaceOrder))

	ctx, span := uc.tracer.Start(ctx, spanPrefix+"PlaceOrder",
		attribute.String("use_case", useCasePlaceOrder),
		attribute.String("order.customer_id", cmd.CustomerID),
		attribute.Int("order.item_count", len(cmd.Items)),
	)
	start := time.Now()
	outcome, statusText := "success", "OK"

	var orderID string
	var publishErr error

	defer func() {
		lat := time.Since(start).Seconds()

		if span != nil {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, statusText)
			} else {
				span.SetStatus(codes.Ok, statusText)
			}
			span.End()
		}

		if uc.reqCounter != nil {
			uc.reqCounter.Add(1,
				observability.L("use_case", useCasePlaceOrder),
				observability.L("outcome", outcome),
			)
		}
		if uc.durHistogram != nil {
			uc.durHistogram.Observe(lat,
				observability.L("use_case", useCasePlaceOrder),
			)
		}

		fields := []observability.Field{
			observability.F("outcome", outcome),
			observability.F("status", statusText),
			observability.F("latency_seconds", lat),
		}
		if orderID != "" {
			fields = append(fields, observability.F("order_id", orderID))
		}
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			fields = append(fields,
				observability.F("trace_id", sc.TraceID().String()),
				observability.F("span_id", sc.SpanID().String()),
			)
		}
		if publishErr != nil {
			fields = append(fields, observability.F("event_publish_error", publishErr.Error()))
		}
		if err != nil {
			fields = append(fields, observability.F("error", err.Error()))
		}

		logger.Info("use_case_done", fields...)
	}()

	if cmd.CustomerID == "" {
		outcome, statusText = "error", "CUSTOMER_ID_REQUIRED"
		return nil, newValidation("customer id is required")
	}
	if len(cmd.Items) == 0 {
		outcome, statusText = "error", "ITEMS_REQUIRED"
		return nil, newValidation("at least one item is required")
	}
	for _, item := range cmd.Items {
		if item.ProductID == "" {
			outcome, statusText = "error", "PRODUCT_ID_REQUIRED"
			return nil, newValidation("product id is required")
		}
		if item.Quantity <= 0 {
			outcome, statusText = "error", "QUANTITY_INVALID"
			return nil, newValidation("quantity must be greater than zero")
		}
	}
	if err := ctx.Err(); err != nil {
		outcome, statusText = "error", "CONTEXT_CANCELED"
		return nil, err
	}

	// Step 1: customer resolution.
	cust, err := uc.customers.FindByID(ctx, cmd.CustomerID)
	if err != nil {
		if errors.Is(err, domcustomer.ErrNotFound) {
			outcome, statusText = "error", "CUSTOMER_NOT_FOUND"
			return nil, err
		}
		outcome, statusText = "error", "CUSTOMER_LOOKUP_FAILED"
		return nil, fmt.Errorf("%w: %w", ErrRepository, err)
	}

	// Step 2: one batched catalog lookup for all distinct product ids,
	// preserving the order the ids first appeared in the request.
	ids := distinctIDs(cmd.Items)
	products, err := uc.catalog.FindAllByID(ctx, ids)
	if err != nil {
		outcome, statusText = "error", "CATALOG_LOOKUP_FAILED"
		return nil, fmt.Errorf("%w: %w", ErrRepository, err)
	}
	if len(products) == 0 {
		outcome, statusText = "error", "NO_PRODUCTS_FOUND"
		return nil, domcatalog.ErrNoProductsFound
	}

	resolved := make(map[string]*domcatalog.Product, len(products))
	for _, p := range products {
		resolved[p.ID] = p
	}

	// Step 3: enumerate every missing id, not just the first.
	var missing []string
	for _, pid := range ids {
		if _, ok := resolved[pid]; !ok {
			missing = append(missing, pid)
		}
	}
	if len(missing) > 0 {
		outcome, statusText = "error", "PRODUCTS_NOT_FOUND"
		return nil, &domcatalog.ProductsNotFoundError{IDs: missing}
	}

	// Step 4: enumerate every item whose quantity exceeds available stock.
	var unavailable []string
	for _, item := range cmd.Items {
		if item.Quantity > resolved[item.ProductID].Available {
			unavailable = append(unavailable, item.ProductID)
		}
	}
	if len(unavailable) > 0 {
		outcome, statusText = "error", "INSUFFICIENT_STOCK"
		return nil, &domcatalog.InsufficientStockError{IDs: unavailable}
	}

	// Step 5: snapshot prices into line items. Every requested id is
	// guaranteed present in the resolved set at this point.
	lineItems := make([]domain.LineItem, 0, len(cmd.Items))
	for _, item := range cmd.Items {
		li, lerr := domain.NewLineItem(item.ProductID, item.Quantity, resolved[item.ProductID].UnitPrice)
		if lerr != nil {
			outcome, statusText = "error", "LINE_ITEM_INVALID"
			return nil, fmt.Errorf("order: line item: %w", lerr)
		}
		lineItems = append(lineItems, li)
	}

	orderID = uc.idGenerator.NewID()
	entity, derr := domain.New(orderID, cust.ID, lineItems)
	if derr != nil {
		outcome, statusText = "error", "DOMAIN_CONSTRUCTION_FAILED"
		return nil, fmt.Errorf("order: construct: %w", derr)
	}
	if err := ctx.Err(); err != nil {
		outcome, statusText = "error", "CONTEXT_CANCELED"
		return nil, err
	}

	// Step 6: persistence. This is the durability point.
	if err := uc.orders.Create(ctx, entity); err != nil {
		outcome, statusText = "error", "REPO_CREATE_FAILED"
		return nil, fmt.Errorf("%w: %w", ErrRepository, err)
	}

	span.AddEvent("order.placed",
		trace.WithAttributes(attribute.String("order.id", orderID)),
	)

	// Step 7: stock decrement, computed from the step-2 snapshot. A failure
	// here does not roll back the persisted order; it is surfaced as a
	// reconciliation error via logs and the failure counter.
	updates := make([]domcatalog.QuantityUpdate, 0, len(cmd.Items))
	for _, item := range cmd.Items {
		updates = append(updates, domcatalog.QuantityUpdate{
			ProductID:   item.ProductID,
			NewQuantity: resolved[item.ProductID].Available - item.Quantity,
		})
	}
	if decrErr := uc.catalog.UpdateQuantity(ctx, updates); decrErr != nil {
		statusText = "STOCK_DECREMENT_FAILED"
		if uc.decrFailCount != nil {
			uc.decrFailCount.Add(1, observability.L("use_case", useCasePlaceOrder))
		}
		logger.Error("stock_decrement_failed",
			observability.F("order_id", orderID),
			observability.F("error", decrErr.Error()),
		)
	}

	publishErr = uc.publishPlaced(ctx, entity)
	if publishErr != nil {
		statusText = "EVENT_PUBLISH_FAILED"
	}

	return entity, nil
}

func (uc *PlaceOrderUseCase) publishPlaced(ctx context.Context, entity *domain.Order) error {
	if uc.publisher == nil {
		return nil
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	start := time.Now()
	pubOutcome := "success"

	err := uc.publisher.Publish(pubCtx, domain.NewOrderPlacedEvent(entity))
	if err != nil {
		pubOutcome = "error"
	} else if pubCtx.Err() != nil {
		pubOutcome = "canceled"
		err = pubCtx.Err()
	}

	if uc.extCounter != nil {
		uc.extCounter.Add(1,
			observability.L("peer", publishPeer),
			observability.L("endpoint", endpointPlaced),
			observability.L("outcome", pubOutcome),
		)
	}
	if uc.extHistogram != nil {
		uc.extHistogram.Observe(time.Since(start).Seconds(),
			observability.L("peer", publishPeer),
			observability.L("endpoint", endpointPlaced),
		)
	}

	return err
}

func distinctIDs(items []ItemInput) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

func newValidation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
