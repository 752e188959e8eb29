package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"pharmapos/internal/domain"
	"pharmapos/internal/repository"
	"pharmapos/internal/service"
)

func setupServer(t *testing.T) *Server {
	t.Helper()
	store := repository.NewMemoryStore()
	cartRepo := repository.NewMemoryCart(store)
	salesRepo := repository.NewMemorySales(store)
	tx := repository.NewMemoryTx(store)
	notifier := service.NewNotifier(time.Minute)

	catalogSvc := service.NewCatalogService(store, tx, notifier, nil)
	cartSvc := service.NewCartService(store, cartRepo, tx, notifier)
	checkoutSvc := service.NewCheckoutService(store, cartRepo, salesRepo, tx, notifier)
	salesSvc := service.NewSalesService(salesRepo)
	overviewSvc := service.NewOverviewService(store, salesRepo)

	// store assigns ids sequentially from 1
	seed := []domain.Product{
		{Name: "Aspirin", SKU: "S1", Price: decimal.RequireFromString("10.00"), Stock: 5, ReorderPoint: 2, Category: domain.CategoryOTC},
		{Name: "Amoxicillin", SKU: "S2", Price: decimal.RequireFromString("12.99"), Stock: 8, ReorderPoint: 3, RequiresPrescription: true, Category: domain.CategoryPrescription},
	}
	if _, err := catalogSvc.Load(context.Background(), seed); err != nil {
		t.Fatal(err)
	}

	return NewServer(catalogSvc, cartSvc, checkoutSvc, salesSvc, overviewSvc, notifier, nil)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func TestSaleFlow(t *testing.T) {
	s := setupServer(t)

	// list products
	w := doJSON(t, s, http.MethodGet, "/api/v1/products", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list code %v", w.Code)
	}

	// get single product
	w = doJSON(t, s, http.MethodGet, "/api/v1/products/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get code %v", w.Code)
	}
	w = doJSON(t, s, http.MethodGet, "/api/v1/products/999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", w.Code)
	}

	// add to cart
	w = doJSON(t, s, http.MethodPost, "/api/v1/cart/items", map[string]any{
		"product_id": 1, "quantity": 3,
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("add code %v: %s", w.Code, w.Body.String())
	}

	// cart shows running totals
	w = doJSON(t, s, http.MethodGet, "/api/v1/cart", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("cart code %v", w.Code)
	}
	var cart struct {
		Items    []json.RawMessage `json:"items"`
		Subtotal string            `json:"subtotal"`
		Total    string            `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &cart); err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("cart items: %v", len(cart.Items))
	}
	if cart.Subtotal != "30" || cart.Total != "32.1" {
		t.Fatalf("totals: %q %q", cart.Subtotal, cart.Total)
	}

	// checkout
	w = doJSON(t, s, http.MethodPost, "/api/v1/checkout", map[string]any{
		"customer_name": "Jane Doe", "payment_method": "Cash",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("checkout code %v: %s", w.Code, w.Body.String())
	}

	// ledger has the sale
	w = doJSON(t, s, http.MethodGet, "/api/v1/sales", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("sales code %v", w.Code)
	}
	var sales []json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &sales); err != nil {
		t.Fatal(err)
	}
	if len(sales) != 1 {
		t.Fatalf("sales length %d", len(sales))
	}

	// notification slot is populated
	w = doJSON(t, s, http.MethodGet, "/api/v1/notification", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("notification code %v", w.Code)
	}
}

func TestCheckout_PrescriptionGate(t *testing.T) {
	s := setupServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/cart/items", map[string]any{
		"product_id": 2, "quantity": 1,
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("add code %v", w.Code)
	}

	w = doJSON(t, s, http.MethodPost, "/api/v1/checkout", map[string]any{
		"customer_name": "Jane Doe", "payment_method": "Insurance",
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, s, http.MethodPost, "/api/v1/checkout", map[string]any{
		"customer_name": "Jane Doe", "payment_method": "Insurance", "prescription_number": "RX-42",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %v: %s", w.Code, w.Body.String())
	}
}

func TestCheckout_EmptyCartNoContent(t *testing.T) {
	s := setupServer(t)
	w := doJSON(t, s, http.MethodPost, "/api/v1/checkout", map[string]any{
		"customer_name": "Jane Doe", "payment_method": "Cash",
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %v", w.Code)
	}
}

func TestRestockEndpoint(t *testing.T) {
	s := setupServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/products/1/restock", map[string]any{"quantity": 20})
	if w.Code != http.StatusOK {
		t.Fatalf("restock code %v", w.Code)
	}
	var p struct {
		Stock int64 `json:"stock"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	if p.Stock != 25 {
		t.Fatalf("stock expected 25, got %v", p.Stock)
	}

	// unknown product is a silent no-op
	w = doJSON(t, s, http.MethodPost, "/api/v1/products/999/restock", map[string]any{"quantity": 5})
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for unknown product, got %v", w.Code)
	}

	// invalid quantity rejected
	w = doJSON(t, s, http.MethodPost, "/api/v1/products/1/restock", map[string]any{"quantity": 0})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", w.Code)
	}
}

func TestHTTP_BadRequests(t *testing.T) {
	s := setupServer(t)

	// invalid id
	w := doJSON(t, s, http.MethodPut, "/api/v1/cart/items/abc", map[string]any{"quantity": 1})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", w.Code)
	}

	// unknown product in add-to-cart
	w = doJSON(t, s, http.MethodPost, "/api/v1/cart/items", map[string]any{"product_id": 999, "quantity": 1})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", w.Code)
	}

	// over-stock add reports 400
	w = doJSON(t, s, http.MethodPost, "/api/v1/cart/items", map[string]any{"product_id": 1, "quantity": 50})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", w.Code)
	}

	// unknown category filter
	w = doJSON(t, s, http.MethodGet, "/api/v1/products?category=Snacks", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", w.Code)
	}
}

func TestOverviewEndpoint(t *testing.T) {
	s := setupServer(t)
	w := doJSON(t, s, http.MethodGet, "/api/v1/overview", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("overview code %v", w.Code)
	}
	var ov struct {
		ProductsTracked int `json:"products_tracked"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &ov); err != nil {
		t.Fatal(err)
	}
	if ov.ProductsTracked != 2 {
		t.Fatalf("products tracked: %d", ov.ProductsTracked)
	}
}
