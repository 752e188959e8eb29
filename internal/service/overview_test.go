package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"pharmapos/internal/domain"
)

func TestOverview_Aggregates(t *testing.T) {
	ctx := context.Background()
	f := setupPOS(t)

	f.addProduct(t, domain.Product{Name: "Aspirin", Price: decimal.RequireFromString("10.00"), Stock: 5, ReorderPoint: 2})
	f.addProduct(t, domain.Product{Name: "Bandages", Price: decimal.RequireFromString("4.00"), Stock: 3, ReorderPoint: 10})

	ov := NewOverviewService(f.store, f.salesRepo)
	got, err := ov.Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if got.ProductsTracked != 2 {
		t.Fatalf("products tracked: %d", got.ProductsTracked)
	}
	if got.LowStockCount != 1 {
		t.Fatalf("low stock count: %d", got.LowStockCount)
	}
	if !got.InventoryValue.Equal(decimal.RequireFromString("62")) {
		t.Fatalf("inventory value expected 62, got %v", got.InventoryValue)
	}

	// one sale today, one from yesterday
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	ov.now = func() time.Time { return now }
	if err := f.salesRepo.Prepend(ctx, &domain.SaleRecord{ID: "old", SoldAt: now.AddDate(0, 0, -1), Total: decimal.NewFromInt(100)}); err != nil {
		t.Fatal(err)
	}
	if err := f.salesRepo.Prepend(ctx, &domain.SaleRecord{ID: "today", SoldAt: now, Total: decimal.RequireFromString("32.1")}); err != nil {
		t.Fatal(err)
	}

	got, err = ov.Overview(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.TodaySalesCount != 1 {
		t.Fatalf("today sales count: %d", got.TodaySalesCount)
	}
	if !got.TodayRevenue.Equal(decimal.RequireFromString("32.1")) {
		t.Fatalf("today revenue: %v", got.TodayRevenue)
	}
}
