package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"pharmapos/internal/domain"
	"pharmapos/internal/repository"
)

func setupCatalog(t *testing.T) (*CatalogService, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	tx := repository.NewMemoryTx(store)
	notifier := NewNotifier(time.Minute)
	return NewCatalogService(store, tx, notifier, nil), store
}

func TestLoad_SkipsMalformedEntries(t *testing.T) {
	ctx := context.Background()
	cs, store := setupCatalog(t)

	entries := []domain.Product{
		{Name: "Aspirin", SKU: "S1", Price: decimal.NewFromInt(10), Stock: 5, Category: domain.CategoryOTC},
		{Name: "", SKU: "S2", Price: decimal.NewFromInt(1), Stock: 1, Category: domain.CategoryOTC},
		{Name: "Negative", SKU: "S3", Price: decimal.NewFromInt(-1), Stock: 1, Category: domain.CategoryOTC},
		{Name: "BadCat", SKU: "S4", Price: decimal.NewFromInt(1), Stock: 1, Category: "Snacks"},
		{Name: "Bandages", SKU: "S5", Price: decimal.NewFromInt(5), Stock: 10, Category: domain.CategoryMedicalSupplies},
	}
	loaded, err := cs.Load(ctx, entries)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != 2 {
		t.Fatalf("expected 2 loaded, got %d", loaded)
	}
	list, _ := store.List(ctx, repository.ProductFilter{})
	if len(list) != 2 {
		t.Fatalf("expected 2 products, got %d", len(list))
	}
}

func TestRestock_AddsToStock(t *testing.T) {
	ctx := context.Background()
	cs, store := setupCatalog(t)

	p := domain.Product{Name: "Aspirin", SKU: "S1", Price: decimal.NewFromInt(10), Stock: 2, Category: domain.CategoryOTC}
	if err := store.Create(ctx, &p); err != nil {
		t.Fatal(err)
	}

	updated, err := cs.Restock(ctx, p.ID, 20)
	if err != nil {
		t.Fatalf("restock: %v", err)
	}
	if updated.Stock != 22 {
		t.Fatalf("stock expected 22, got %v", updated.Stock)
	}
}

func TestRestock_InvalidQuantity(t *testing.T) {
	ctx := context.Background()
	cs, store := setupCatalog(t)

	p := domain.Product{Name: "Aspirin", SKU: "S1", Price: decimal.NewFromInt(10), Stock: 2, Category: domain.CategoryOTC}
	if err := store.Create(ctx, &p); err != nil {
		t.Fatal(err)
	}

	if _, err := cs.Restock(ctx, p.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity, got %v", err)
	}
	if _, err := cs.Restock(ctx, p.ID, -3); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity, got %v", err)
	}
	// stock untouched
	pp, _ := store.GetByID(ctx, p.ID)
	if pp.Stock != 2 {
		t.Fatalf("stock changed on rejected restock: %v", pp.Stock)
	}
}

func TestRestock_UnknownProductIsSilentNoop(t *testing.T) {
	ctx := context.Background()
	cs, _ := setupCatalog(t)

	p, err := cs.Restock(ctx, 999, 5)
	if err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil product, got %v", p)
	}
}
