package httppresentation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	appOrder "github.com/commercelab/orderflow/internal/application/order"
	domainCatalog "github.com/commercelab/orderflow/internal/domain/catalog"
	domainCustomer "github.com/commercelab/orderflow/internal/domain/customer"
	domainOrder "github.com/commercelab/orderflow/internal/domain/order"
	"github.com/commercelab/orderflow/internal/observability"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
)

const componentHTTPHandler = "http_server"

type Handler struct {
	placeOrder *appOrder.PlaceOrderUseCase
	getOrder   *appOrder.GetOrderUseCase
	catalog    domainCatalog.Repository
	log        observability.Logger
	tel        observability.Observability
}

func NewHandler(
	placeOrder *appOrder.PlaceOrderUseCase,
	getOrder *appOrder.GetOrderUseCase,
	catalog domainCatalog.Repository,
	logger observability.Logger,
	tel observability.Observability,
) *Handler {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Handler{
		placeOrder: placeOrder,
		getOrder:   getOrder,
		catalog:    catalog,
		log:        logger.With(observability.F("component", componentHTTPHandler)),
		tel:        tel,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(ObservabilityMiddleware(h.log, h.tel))

	r.Post("/orders", h.handlePlaceOrder)
	r.Get("/orders/{id}", h.handleGetOrder)
	r.Get("/products", h.handleListProducts)
	r.Get("/health", h.handleHealth)

	return r
}

type placeOrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type placeOrderRequest struct {
	CustomerID string           `json:"customer_id"`
	Items      []placeOrderItem `json:"items"`
}

type lineItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type orderResponse struct {
	OrderID    string             `json:"order_id"`
	CustomerID string             `json:"customer_id"`
	Items      []lineItemResponse `json:"items"`
	Total      decimal.Decimal    `json:"total"`
	CreatedAt  time.Time          `json:"created_at"`
}

func toOrderResponse(o *domainOrder.Order) orderResponse {
	items := make([]lineItemResponse, 0, len(o.LineItems))
	for _, li := range o.LineItems {
		items = append(items, lineItemResponse{
			ProductID: li.ProductID,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice,
		})
	}
	return orderResponse{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		Items:      items,
		Total:      o.Total,
		CreatedAt:  o.CreatedAt,
	}
}

func (h *Handler) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	items := make([]appOrder.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, appOrder.ItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.placeOrder.Execute(r.Context(), appOrder.PlaceOrderInput{
		CustomerID: req.CustomerID,
		Items:      items,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.getOrder.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

type productResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Available int             `json:"available"`
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, productResponse{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.UnitPrice,
			Available: p.Available,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func decodeJSON(ctx context.Context, r *http.Request, dst any) error {
	_ = ctx
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

type errorResponse struct {
	Error      string   `json:"error"`
	ProductIDs []string `json:"product_ids,omitempty"`
}

func writeDomainError(w http.ResponseWriter, err error) {
	var notFound *domainCatalog.ProductsNotFoundError
	var insufficient *domainCatalog.InsufficientStockError

	switch {
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), ProductIDs: notFound.IDs})
	case errors.As(err, &insufficient):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), ProductIDs: insufficient.IDs})
	case errors.Is(err, domainCustomer.ErrNotFound),
		errors.Is(err, domainOrder.ErrNotFound),
		errors.Is(err, domainCatalog.ErrNotFound),
		errors.Is(err, domainCatalog.ErrNoProductsFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, appOrder.ErrValidation),
		errors.Is(err, domainOrder.ErrInvalidQuantity),
		errors.Is(err, domainOrder.ErrNoItems),
		errors.Is(err, domainCatalog.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}
