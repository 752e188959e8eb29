package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"pharmapos/internal/domain"
	"pharmapos/internal/repository"
)

// OverviewService сводка для дашборда: стоимость склада, выручка за день,
// товары на пороге дозаказа
type OverviewService struct {
	products repository.ProductRepository
	sales    repository.SaleRepository

	now func() time.Time
}

func NewOverviewService(products repository.ProductRepository, sales repository.SaleRepository) *OverviewService {
	return &OverviewService{products: products, sales: sales, now: time.Now}
}

func (s *OverviewService) Overview(ctx context.Context) (*domain.Overview, error) {
	products, err := s.products.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	sales, err := s.sales.List(ctx)
	if err != nil {
		return nil, err
	}

	ov := domain.Overview{
		InventoryValue:  decimal.Zero,
		TodayRevenue:    decimal.Zero,
		ProductsTracked: len(products),
	}
	for _, p := range products {
		ov.InventoryValue = ov.InventoryValue.Add(p.Price.Mul(decimal.NewFromInt(p.Stock)))
		if p.LowStock() {
			ov.LowStockCount++
		}
	}
	y, m, d := s.now().UTC().Date()
	for _, rec := range sales {
		ry, rm, rd := rec.SoldAt.UTC().Date()
		if ry == y && rm == m && rd == d {
			ov.TodayRevenue = ov.TodayRevenue.Add(rec.Total)
			ov.TodaySalesCount++
		}
	}
	return &ov, nil
}
