package httppresentation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appOrder "github.com/commercelab/orderflow/internal/application/order"
	domainCatalog "github.com/commercelab/orderflow/internal/domain/catalog"
	domainCustomer "github.com/commercelab/orderflow/internal/domain/customer"
	"github.com/commercelab/orderflow/internal/infrastructure/id"
	"github.com/commercelab/orderflow/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()

	customers := memory.NewCustomerRepository()
	c, err := domainCustomer.New("c-1", "Ada", "ada@example.com")
	require.NoError(t, err)
	require.NoError(t, customers.Save(ctx, c))

	catalog := memory.NewProductRepository()
	for _, s := range []struct {
		id    string
		price string
		stock int
	}{
		{"p-1", "10.00", 5},
		{"p-2", "20.00", 0},
	} {
		p, err := domainCatalog.NewProduct(s.id, s.id, decimal.RequireFromString(s.price), s.stock)
		require.NoError(t, err)
		require.NoError(t, catalog.Save(ctx, p))
	}

	orders := memory.NewOrderRepository()
	placeOrder := appOrder.NewPlaceOrderUseCase(orders, customers, catalog, id.NewUUIDGenerator(), nil, nil)
	getOrder := appOrder.NewGetOrderUseCase(orders)

	return NewHandler(placeOrder, getOrder, catalog, nil, nil).Router()
}

func TestHandler_PlaceOrder_Created(t *testing.T) {
	router := newTestServer(t)

	body := `{"customer_id":"c-1","items":[{"product_id":"p-1","quantity":3}]}`
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		OrderID    string `json:"order_id"`
		CustomerID string `json:"customer_id"`
		Total      string `json:"total"`
		Items      []struct {
			ProductID string `json:"product_id"`
			Quantity  int    `json:"quantity"`
			UnitPrice string `json:"unit_price"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.OrderID)
	assert.Equal(t, "c-1", resp.CustomerID)
	assert.True(t, decimal.RequireFromString(resp.Total).Equal(decimal.RequireFromString("30.00")))
	require.Len(t, resp.Items, 1)
	assert.True(t, decimal.RequireFromString(resp.Items[0].UnitPrice).Equal(decimal.RequireFromString("10.00")))

	// The created order is retrievable.
	getReq := httptest.NewRequest(http.MethodGet, "/orders/"+resp.OrderID, nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)
	assert.Equal(t, http.StatusOK, getRec.Code)
}

func TestHandler_PlaceOrder_UnknownCustomer(t *testing.T) {
	router := newTestServer(t)

	body := `{"customer_id":"c-ghost","items":[{"product_id":"p-1","quantity":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_PlaceOrder_ProductsNotFound(t *testing.T) {
	router := newTestServer(t)

	body := `{"customer_id":"c-1","items":[{"product_id":"p-1","quantity":1},{"product_id":"p-ghost","quantity":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp struct {
		Error      string   `json:"error"`
		ProductIDs []string `json:"product_ids"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"p-ghost"}, resp.ProductIDs)
}

func TestHandler_PlaceOrder_InsufficientStock(t *testing.T) {
	router := newTestServer(t)

	body := `{"customer_id":"c-1","items":[{"product_id":"p-1","quantity":3},{"product_id":"p-2","quantity":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)

	var resp struct {
		Error      string   `json:"error"`
		ProductIDs []string `json:"product_ids"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"p-2"}, resp.ProductIDs)
}

func TestHandler_PlaceOrder_BadJSON(t *testing.T) {
	router := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"nope":`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_GetOrder_NotFound(t *testing.T) {
	router := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/orders/o-ghost", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_ListProducts(t *testing.T) {
	router := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []struct {
		ProductID string `json:"product_id"`
		Available int    `json:"available"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "p-1", resp[0].ProductID)
}

func TestHandler_Health(t *testing.T) {
	router := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
